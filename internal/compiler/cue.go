package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
)

// ParseCUE reads state definitions from the "state" struct of a CUE value:
//
//	state: {
//		new: {}
//		acknowledged: {conditions: ["acked"], overrides: ["new"]}
//	}
//
// Definitions come back in field order. A missing "state" field yields no
// definitions.
func ParseCUE(v cue.Value) ([]Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	statesVal := v.LookupPath(cue.ParsePath("state"))
	if !statesVal.Exists() {
		return nil, nil
	}

	iter, err := statesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []Definition
	for iter.Next() {
		def, err := ParseCUEState(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ParseCUEState reads one state definition named name.
func ParseCUEState(name string, v cue.Value) (Definition, error) {
	def := Definition{Name: name}
	if pos := v.Pos(); pos.IsValid() {
		def.File, def.Line, def.Column = pos.Filename(), pos.Line(), pos.Column()
	}

	fields, err := v.Fields()
	if err != nil {
		return def, formatCUEError(err)
	}

	for fields.Next() {
		label := fields.Label()
		var err error
		switch label {
		case "conditions":
			def.Conditions, err = cueStrings(name, label, fields.Value())
		case "extends":
			def.Extends, err = cueStrings(name, label, fields.Value())
		case "overrides":
			def.Overrides, err = cueStrings(name, label, fields.Value())
		default:
			err = &CompileError{
				Field:   fmt.Sprintf("state.%s.%s", name, label),
				Message: "unknown field",
				Pos:     fields.Value().Pos(),
			}
		}
		if err != nil {
			return def, err
		}
	}
	return def, nil
}

func cueStrings(state, field string, v cue.Value) ([]string, error) {
	list, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   fmt.Sprintf("state.%s.%s", state, field),
			Message: "must be a list of strings",
			Pos:     v.Pos(),
			Err:     err,
		}
	}

	var out []string
	for list.Next() {
		s, err := list.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}
