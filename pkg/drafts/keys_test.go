package drafts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, Key("form-builder:new"), FormKey(""))
	assert.Equal(t, Key("form-builder:edit:f-1"), FormKey("f-1"))
	assert.Equal(t, Key("workflow-builder:new"), WorkflowKey("  "))
	assert.Equal(t, Key("workflow-builder:edit:wf-9"), WorkflowKey("wf-9"))
	assert.Equal(t, Key("manager-modal:products"), ModalKey("products"))

	assert.Equal(t, Key("user:u1:form-builder:new"), FormKey("").ForUser("u1"))
	assert.Equal(t, FormKey(""), FormKey("").ForUser(""))

	assert.True(t, FormKey("").IsNew())
	assert.False(t, WorkflowKey("wf-1").IsNew())
}

func TestKeyValid(t *testing.T) {
	testCases := []struct {
		key   Key
		valid bool
	}{
		{"form-builder:new", true},
		{"form-builder:edit:abc", true},
		{"workflow-builder:new", true},
		{"workflow-builder:edit:wf-1", true},
		{"manager-modal:taxonomies", true},
		{"form-builder:edit:", false},
		{"form-builder:old", false},
		{"manager-modal:", false},
		{"something-else", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.key.Valid())
		})
	}
}
