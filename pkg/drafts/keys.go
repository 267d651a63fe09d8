// Package drafts keeps unsaved editor state between sessions.
package drafts

import (
	"strings"
)

// Key addresses a single draft slot.
type Key string

const (
	formBuilderPrefix     = "form-builder:"
	workflowBuilderPrefix = "workflow-builder:"
	managerModalPrefix    = "manager-modal:"
	userScopePrefix       = "user:"

	newSuffix  = "new"
	editPrefix = "edit:"
)

// FormKey is the draft slot of the form builder. An empty id is the slot of
// a form that has never been saved.
func FormKey(id string) Key {
	return builderKey(formBuilderPrefix, id)
}

// WorkflowKey is the draft slot of the workflow builder.
func WorkflowKey(id string) Key {
	return builderKey(workflowBuilderPrefix, id)
}

// ModalKey is the draft slot of a management dialog.
func ModalKey(name string) Key {
	return Key(managerModalPrefix + name)
}

func builderKey(prefix, id string) Key {
	if strings.TrimSpace(id) == "" {
		return Key(prefix + newSuffix)
	}

	return Key(prefix + editPrefix + id)
}

// ForUser scopes k to a single user. Blank users leave the key unscoped.
func (k Key) ForUser(userID string) Key {
	if strings.TrimSpace(userID) == "" {
		return k
	}

	return Key(userScopePrefix + userID + ":" + string(k))
}

// IsNew reports whether k is the slot of an unsaved entity.
func (k Key) IsNew() bool {
	return strings.HasSuffix(string(k), ":"+newSuffix)
}

// Valid reports whether k is one of the known draft slots.
func (k Key) Valid() bool {
	s := string(k)

	for _, prefix := range []string{formBuilderPrefix, workflowBuilderPrefix} {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok {
			continue
		}

		if rest == newSuffix {
			return true
		}

		id, ok := strings.CutPrefix(rest, editPrefix)

		return ok && id != ""
	}

	name, ok := strings.CutPrefix(s, managerModalPrefix)

	return ok && name != ""
}

func (k Key) String() string {
	return string(k)
}
