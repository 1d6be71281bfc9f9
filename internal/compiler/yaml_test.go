package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lifecycleYAML = `
- new
- name: acknowledged
  conditions: [acked]
  overrides: [new]
- name: assigned
  conditions: [assignee]
  extends: [acknowledged]
- name: closed
  conditions: [closed]
  overrides: [new, acknowledged, assigned]
`

func TestParseYAML_Lifecycle(t *testing.T) {
	defs, err := ParseYAML([]byte(lifecycleYAML), "states.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 4)

	assert.Equal(t, "new", defs[0].Name)
	assert.Equal(t, 2, defs[0].Line)

	assert.Equal(t, Definition{
		Name:       "acknowledged",
		Conditions: []string{"acked"},
		Overrides:  []string{"new"},
		File:       "states.yaml",
		Line:       3,
		Column:     3,
	}, defs[1])

	assert.Equal(t, []string{"acknowledged"}, defs[2].Extends)
	assert.Equal(t, []string{"new", "acknowledged", "assigned"}, defs[3].Overrides)
}

func TestParseYAML_EmptyDocuments(t *testing.T) {
	for _, doc := range []string{"", "---\n...\n", "~\n", "# nothing\n"} {
		defs, err := ParseYAML([]byte(doc), "")
		require.NoError(t, err, "document %q", doc)
		assert.Empty(t, defs)
	}
}

func TestParseYAML_SingleState(t *testing.T) {
	for _, doc := range []string{"  - foobar", "---\n  - foobar\n..."} {
		defs, err := ParseYAML([]byte(doc), "")
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "foobar", defs[0].Name)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		line    int
	}{
		{"top-level mapping", "name: x\n", "expected a sequence", 1},
		{"nested sequence item", "- [a, b]\n", "expected a state name or mapping", 1},
		{"missing name", "- conditions: [a]\n", "name is required", 1},
		{"unknown field", "- name: a\n  colour: red\n", "unknown field", 2},
		{"conditions not a list", "- name: a\n  conditions: acked\n", "must be a sequence", 2},
		{"non-scalar condition", "- name: a\n  conditions: [{x: 1}]\n", "must be a string", 2},
		{"name not scalar", "- name: [a]\n", "must be a string", 1},
		{"syntax", "- a\n b: [\n", "yaml", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.input), "s.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.line, ce.Line)
		})
	}
}

func TestParseYAML_NullLists(t *testing.T) {
	defs, err := ParseYAML([]byte("- name: a\n  conditions:\n  extends: ~\n"), "")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Nil(t, defs[0].Conditions)
	assert.Nil(t, defs[0].Extends)
}
