package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/issuestate/internal/meta"
)

const minimalScenario = `
name: minimal
description: one case
catalog: states.yaml
cases:
  - name: empty
    issue: {}
    expect: ""
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, "states.yaml", s.Catalog)
	require.Len(t, s.Cases, 1)
	require.NotNil(t, s.Cases[0].Expect)
	assert.Equal(t, "", *s.Cases[0].Expect)
	assert.Equal(t, meta.Object{}, s.Cases[0].Issue)
}

func TestParseScenario_IssueValues(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: values
description: typed issue values
catalog: c.yaml
cases:
  - name: typed
    issue:
      acked: true
      priority: 4
      labels: [bug]
      assignee: null
    expect: x
`))
	require.NoError(t, err)
	assert.Equal(t, meta.Object{
		"acked":    meta.Bool(true),
		"priority": meta.Int(4),
		"labels":   meta.List{meta.String("bug")},
		"assignee": meta.Null{},
	}, s.Cases[0].Issue)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing name", "description: d\ncatalog: c\ncases: [{name: a, expect: x}]\n", "name is required"},
		{"missing description", "name: n\ncatalog: c\ncases: [{name: a, expect: x}]\n", "description is required"},
		{"missing catalog", "name: n\ndescription: d\ncases: [{name: a, expect: x}]\n", "catalog is required"},
		{"no cases", "name: n\ndescription: d\ncatalog: c\n", "cases list is required"},
		{"unnamed case", "name: n\ndescription: d\ncatalog: c\ncases: [{expect: x}]\n", "cases[0]: name is required"},
		{"duplicate case", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}, {name: a, expect: y}]\n", "duplicate case name"},
		{"missing expect", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a}]\n", "expect is required"},
		{"unknown field", "name: n\ndescription: d\ncatalog: c\ncase: []\n", "failed to parse YAML"},
		{"fractional issue value", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, issue: {w: 0.5}, expect: x}]\n", "fractional"},
		{"assertion without type", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}]\nassertions: [{state: x}]\n", "type is required"},
		{"unknown assertion", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}]\nassertions: [{type: winner}]\n", "unknown assertion type"},
		{"order without states", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}]\nassertions: [{type: catalog_order}]\n", "states list is required"},
		{"enabled unknown case", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}]\nassertions: [{type: enabled, case: b, state: x}]\n", `unknown case "b"`},
		{"disabled without state", "name: n\ndescription: d\ncatalog: c\ncases: [{name: a, expect: x}]\nassertions: [{type: disabled, case: a}]\n", "state is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_ResolvesCatalogRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "states.yaml"), []byte("- new\n"), 0o644))
	path := filepath.Join(dir, "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "states.yaml"), s.Catalog)
}

func TestLoadScenario_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")

	path := filepath.Join(dir, "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario), 0o644))
	_, err = LoadScenario(path)
	assert.ErrorContains(t, err, "catalog file not found")
}
