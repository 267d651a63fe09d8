package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names, the names editors see.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// structMessages turns validator tag failures into editor messages.
func structMessages(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("Campo %s é obrigatório", fe.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("Campo %s deve ter no mínimo %s", fe.Field(), fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("Campo %s deve ser um de: %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("Campo %s inválido (%s)", fe.Field(), fe.Tag()))
		}
	}

	return messages
}
