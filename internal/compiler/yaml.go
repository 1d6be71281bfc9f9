package compiler

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads state definitions from a YAML document. filename is only
// used in error messages and may be empty.
//
// The document must hold a sequence; an empty document yields no
// definitions. Each item is either a scalar state name or a mapping with
// name, conditions, extends and overrides:
//
//	[new, {name: acknowledged, conditions: [acked], overrides: [new]}]
func ParseYAML(data []byte, filename string) ([]Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &CompileError{Field: "yaml", Message: err.Error(), File: filename, Err: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}

	switch {
	case root.Kind == 0:
		return nil, nil
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return nil, nil
	case root.Kind != yaml.SequenceNode:
		return nil, yamlError(filename, root, "states", "expected a sequence of issue states")
	}

	defs := make([]Definition, 0, len(root.Content))
	for _, item := range root.Content {
		def, err := parseYAMLState(filename, item)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func parseYAMLState(filename string, node *yaml.Node) (Definition, error) {
	def := Definition{File: filename, Line: node.Line, Column: node.Column}

	switch node.Kind {
	case yaml.ScalarNode:
		def.Name = node.Value
		return def, nil
	case yaml.MappingNode:
	default:
		return def, yamlError(filename, node, "state", "expected a state name or mapping")
	}

	hasName := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var err error
		switch key.Value {
		case "name":
			if value.Kind != yaml.ScalarNode {
				return def, yamlError(filename, value, "name", "must be a string")
			}
			def.Name = value.Value
			hasName = true
		case "conditions":
			def.Conditions, err = yamlStrings(filename, "conditions", value)
		case "extends":
			def.Extends, err = yamlStrings(filename, "extends", value)
		case "overrides":
			def.Overrides, err = yamlStrings(filename, "overrides", value)
		default:
			return def, yamlError(filename, key, key.Value, "unknown field")
		}
		if err != nil {
			return def, err
		}
	}

	if !hasName {
		return def, yamlError(filename, node, "name", "name is required")
	}
	return def, nil
}

func yamlStrings(filename, field string, node *yaml.Node) ([]string, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, yamlError(filename, node, field, "must be a sequence of strings")
	}
	out := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, yamlError(filename, item, fmt.Sprintf("%s[%d]", field, i), "must be a string")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func yamlError(filename string, node *yaml.Node, field, msg string) *CompileError {
	return &CompileError{
		Field:   field,
		Message: msg,
		File:    filename,
		Line:    node.Line,
		Column:  node.Column,
	}
}
