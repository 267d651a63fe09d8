package templates

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"github.com/dukex/fluxo/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

type builtinFile struct {
	models.WorkflowTemplate `yaml:",inline"`

	Definition map[string]any `yaml:"workflow_definition"`
}

// Builtin returns the templates shipped with the binary, sorted by file name.
func Builtin() ([]*models.WorkflowTemplate, error) {
	return loadBuiltin(builtinFS, "builtin")
}

func loadBuiltin(fsys fs.FS, dir string) ([]*models.WorkflowTemplate, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in templates: %w", err)
	}

	templates := make([]*models.WorkflowTemplate, 0, len(files))

	for _, file := range files {
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}

		var parsed builtinFile
		if err := yaml.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}

		if parsed.ID == "" {
			return nil, fmt.Errorf("template %s has no id", file)
		}

		definition, err := json.Marshal(parsed.Definition)
		if err != nil {
			return nil, fmt.Errorf("failed to encode definition of template %s: %w", file, err)
		}

		// The definition must be readable by the converter.
		if _, err := ToEditable(definition); err != nil {
			return nil, fmt.Errorf("template %s: %w", file, err)
		}

		template := parsed.WorkflowTemplate
		template.WorkflowDefinition = definition
		template.IsSystem = true
		templates = append(templates, &template)
	}

	return templates, nil
}
