package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/issuestate/internal/condition"
	"github.com/roach88/issuestate/internal/matcher"
	"github.com/roach88/issuestate/internal/meta"
	"github.com/roach88/issuestate/internal/resolution"
	"github.com/roach88/issuestate/internal/state"
)

type (
	metaState     = state.State[meta.Object]
	metaCondition = condition.Condition[meta.Object]
)

// CompileYAML parses a YAML catalog and builds it in document order.
func CompileYAML(data []byte, filename string) (*Compiled, error) {
	defs, err := ParseYAML(data, filename)
	if err != nil {
		return nil, err
	}
	return BuildOrdered(defs)
}

// CompileCUE parses a CUE catalog and orders it by dependency.
func CompileCUE(v cue.Value) (*Compiled, error) {
	defs, err := ParseCUE(v)
	if err != nil {
		return nil, err
	}
	return Build(defs)
}

// BuildOrdered builds a catalog whose order is the order of defs. Relations
// may only name states defined earlier.
func BuildOrdered(defs []Definition) (*Compiled, error) {
	b := state.NewBuilder[meta.Object]()

	for _, def := range defs {
		conds, err := parseConditions(def)
		if err != nil {
			return nil, err
		}
		extends, err := priorStates(b, def, "extends", def.Extends)
		if err != nil {
			return nil, err
		}
		overrides, err := priorStates(b, def, "overrides", def.Overrides)
		if err != nil {
			return nil, err
		}

		_, err = b.Declare(def.Name,
			state.WithConditions(conds...),
			state.ExtendsStates(extends...),
			state.OverridesStates(overrides...),
		)
		if err != nil {
			return nil, duplicateError(def)
		}
	}

	return &Compiled{
		Catalog:     resolution.FromOrderedList(b.Build()),
		Definitions: append([]Definition(nil), defs...),
	}, nil
}

// Build builds a catalog from definitions in any order. Relations may name
// any definition; the catalog is put in dependency order and a cycle fails
// the build.
func Build(defs []Definition) (*Compiled, error) {
	b := state.NewBuilder[meta.Object]()
	byName := make(map[string]Definition, len(defs))

	for _, def := range defs {
		conds, err := parseConditions(def)
		if err != nil {
			return nil, err
		}
		if _, err := b.Declare(def.Name, state.WithConditions(conds...)); err != nil {
			return nil, duplicateError(def)
		}
		byName[def.Name] = def
	}

	for _, def := range defs {
		if err := relateAll(b, def, "extends", def.Extends, state.Extends); err != nil {
			return nil, err
		}
		if err := relateAll(b, def, "overrides", def.Overrides, state.Overrides); err != nil {
			return nil, err
		}
	}

	catalog, err := resolution.FromSet(b.Build())
	if err != nil {
		return nil, &CompileError{Field: "state", Message: err.Error(), Err: err}
	}

	ordered := make([]Definition, 0, len(defs))
	for s := range catalog.All() {
		ordered = append(ordered, byName[s.Name()])
	}
	return &Compiled{Catalog: catalog, Definitions: ordered}, nil
}

func parseConditions(def Definition) ([]metaCondition, error) {
	conds, err := matcher.ParseAll(def.Conditions)
	if err != nil {
		return nil, (&CompileError{
			Field:   fmt.Sprintf("state.%s.conditions", def.Name),
			Message: err.Error(),
			Err:     err,
		}).at(def)
	}
	return conds, nil
}

func priorStates(b *state.Builder[meta.Object], def Definition, field string, names []string) ([]*metaState, error) {
	out := make([]*metaState, 0, len(names))
	for _, name := range names {
		s, ok := b.Lookup(name)
		if !ok {
			return nil, unknownStateError(def, field, name)
		}
		out = append(out, s)
	}
	return out, nil
}

func relateAll(b *state.Builder[meta.Object], def Definition, field string, names []string, kind state.RelationKind) error {
	for _, name := range names {
		if err := b.Relate(def.Name, name, kind); err != nil {
			return unknownStateError(def, field, name)
		}
	}
	return nil
}

func unknownStateError(def Definition, field, target string) *CompileError {
	return (&CompileError{
		Field:   fmt.Sprintf("state.%s.%s", def.Name, field),
		Message: fmt.Sprintf("unknown state %q", target),
	}).at(def)
}

func duplicateError(def Definition) *CompileError {
	return (&CompileError{
		Field:   fmt.Sprintf("state.%s", def.Name),
		Message: "duplicate state name",
	}).at(def)
}
