package compiler

import (
	"github.com/roach88/issuestate/internal/meta"
	"github.com/roach88/issuestate/internal/resolution"
)

// Definition is the source form of one state.
type Definition struct {
	Name       string   `json:"name"`
	Conditions []string `json:"conditions,omitempty"`
	Extends    []string `json:"extends,omitempty"`
	Overrides  []string `json:"overrides,omitempty"`

	// Source location of the definition, when known.
	File   string `json:"-"`
	Line   int    `json:"-"`
	Column int    `json:"-"`
}

// Compiled is a catalog together with the definitions it was built from.
type Compiled struct {
	Catalog *resolution.Catalog[meta.Object]

	// Definitions in catalog order.
	Definitions []Definition
}

// Describe returns the compiled catalog as a metadata value, one object per
// state in catalog order.
func (c *Compiled) Describe() meta.List {
	out := make(meta.List, len(c.Definitions))
	for i, def := range c.Definitions {
		obj := meta.Object{"name": meta.String(def.Name)}
		if len(def.Conditions) > 0 {
			obj["conditions"] = stringList(def.Conditions)
		}
		if len(def.Extends) > 0 {
			obj["extends"] = stringList(def.Extends)
		}
		if len(def.Overrides) > 0 {
			obj["overrides"] = stringList(def.Overrides)
		}
		out[i] = obj
	}
	return out
}

// ID is the content hash of Describe.
func (c *Compiled) ID() (string, error) {
	return meta.CatalogID(c.Describe())
}

func stringList(items []string) meta.List {
	out := make(meta.List, len(items))
	for i, s := range items {
		out[i] = meta.String(s)
	}
	return out
}
