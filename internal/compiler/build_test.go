package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/issuestate/internal/meta"
	"github.com/roach88/issuestate/internal/resolution"
)

func resolveName(t *testing.T, c *Compiled, issue meta.Object) string {
	t.Helper()
	s, err := c.Catalog.IssueState(issue)
	require.NoError(t, err)
	if s == nil {
		return ""
	}
	return s.Name()
}

func TestCompileYAML_Lifecycle(t *testing.T) {
	c, err := CompileYAML([]byte(lifecycleYAML), "states.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "acknowledged", "assigned", "closed"}, c.Catalog.Names())

	assert.Equal(t, "new", resolveName(t, c, meta.Object{}))
	assert.Equal(t, "acknowledged", resolveName(t, c, meta.Object{"acked": meta.Bool(true)}))
	assert.Equal(t, "new", resolveName(t, c, meta.Object{"assignee": meta.String("kim")}))
	assert.Equal(t, "assigned", resolveName(t, c, meta.Object{"acked": meta.Bool(true), "assignee": meta.String("kim")}))
	assert.Equal(t, "closed", resolveName(t, c, meta.Object{"acked": meta.Bool(true), "closed": meta.Bool(true)}))
}

func TestCompileCUE_Lifecycle(t *testing.T) {
	v := cuecontext.New().CompileString(lifecycleCUE)
	require.NoError(t, v.Err())

	c, err := CompileCUE(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"new", "acknowledged", "assigned", "closed"}, c.Catalog.Names())
	require.Len(t, c.Definitions, 4)
	assert.Equal(t, "assigned", c.Definitions[2].Name)
	assert.Equal(t, []string{"acknowledged"}, c.Definitions[2].Extends)

	assert.Equal(t, "assigned", resolveName(t, c, meta.Object{"acked": meta.Bool(true), "assignee": meta.String("kim")}))
}

func TestCompileYAML_And_CUE_SameID(t *testing.T) {
	fromYAML, err := CompileYAML([]byte(lifecycleYAML), "")
	require.NoError(t, err)

	v := cuecontext.New().CompileString(lifecycleCUE)
	fromCUE, err := CompileCUE(v)
	require.NoError(t, err)

	a, err := fromYAML.ID()
	require.NoError(t, err)
	b, err := fromCUE.ID()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildOrdered_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"forward reference", "- name: a\n  extends: [b]\n- b\n", `unknown state "b"`},
		{"self reference", "- name: a\n  overrides: [a]\n", `unknown state "a"`},
		{"unknown", "- name: a\n  overrides: [zzz]\n", `unknown state "zzz"`},
		{"duplicate", "- a\n- a\n", "duplicate state name"},
		{"bad condition", "- name: a\n  conditions: ['=x']\n", "RESERVED_PREFIX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileYAML([]byte(tt.doc), "s.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "s.yaml:")
		})
	}
}

func TestBuild_ForwardReferencesAllowed(t *testing.T) {
	c, err := Build([]Definition{
		{Name: "a", Extends: []string{"b"}},
		{Name: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, c.Catalog.Names())
}

func TestBuild_Cycle(t *testing.T) {
	_, err := Build([]Definition{
		{Name: "a", Overrides: []string{"b"}},
		{Name: "b", Overrides: []string{"a"}},
	})
	require.Error(t, err)
	assert.True(t, resolution.IsCyclicDependency(err))
	assert.Contains(t, err.Error(), "a → b → a")
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build([]Definition{{Name: "a", Extends: []string{"nope"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown state "nope"`)

	_, err = Build([]Definition{{Name: "a"}, {Name: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate state name")
}

func TestCompiled_Describe(t *testing.T) {
	c, err := CompileYAML([]byte("- new\n- name: open\n  conditions: [x]\n  overrides: [new]\n"), "")
	require.NoError(t, err)

	data, err := meta.MarshalCanonical(c.Describe())
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"new"},{"conditions":["x"],"name":"open","overrides":["new"]}]`, string(data))
}
