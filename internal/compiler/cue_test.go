package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lifecycleCUE = `
state: {
	closed: {
		conditions: ["closed"]
		overrides: ["new", "acknowledged", "assigned"]
	}
	assigned: {
		conditions: ["assignee"]
		extends: ["acknowledged"]
	}
	acknowledged: {
		conditions: ["acked"]
		overrides: ["new"]
	}
	new: {}
}
`

func TestParseCUE_FieldOrder(t *testing.T) {
	v := cuecontext.New().CompileString(lifecycleCUE)
	require.NoError(t, v.Err())

	defs, err := ParseCUE(v)
	require.NoError(t, err)
	require.Len(t, defs, 4)

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"closed", "assigned", "acknowledged", "new"}, names)
	assert.Equal(t, []string{"acknowledged"}, defs[1].Extends)
	assert.Equal(t, []string{"acked"}, defs[2].Conditions)
	assert.Empty(t, defs[3].Conditions)
}

func TestParseCUE_NoStates(t *testing.T) {
	v := cuecontext.New().CompileString(`other: 1`)
	defs, err := ParseCUE(v)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParseCUE_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"unknown field", `state: a: {colour: "red"}`, "unknown field"},
		{"conditions not a list", `state: a: {conditions: "acked"}`, "must be a list of strings"},
		{"non-string condition", `state: a: {conditions: [1]}`, "cue"},
		{"state not a struct", `state: a: "x"`, "cue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := cuecontext.New().CompileString(tt.src)
			require.NoError(t, v.Err())

			_, err := ParseCUE(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseCUE_InvalidValue(t *testing.T) {
	v := cuecontext.New().CompileString(`state: a: {conditions: ["x"]} & {conditions: ["y"]}`)

	_, err := ParseCUE(v)
	require.Error(t, err)

	var ce *CompileError
	assert.ErrorAs(t, err, &ce)
}
