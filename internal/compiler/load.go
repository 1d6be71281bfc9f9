package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/tidwall/jsonc"
)

// ModeFor returns the ordering mode used for a catalog file, chosen by
// extension: .cue files are ordered by dependency, everything else by
// document order.
func ModeFor(path string) Mode {
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		return DependencyOrder
	}
	return DocumentOrder
}

// ParseFile reads the definitions of a single catalog file.
func ParseFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		v := cuecontext.New().CompileBytes(data, cue.Filename(path))
		return ParseCUE(v)
	case ".yaml", ".yml", ".json":
		return ParseYAML(data, path)
	case ".jsonc":
		// Comments become whitespace, so reported lines still match the file.
		return ParseYAML(jsonc.ToJSON(data), path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .yaml, .yml, .json, .jsonc or .cue)", filepath.Ext(path))
	}
}

// CompileFile parses and builds a single catalog file.
func CompileFile(path string) (*Compiled, error) {
	defs, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return BuildMode(defs, ModeFor(path))
}

// BuildMode builds definitions with the given ordering mode.
func BuildMode(defs []Definition, mode Mode) (*Compiled, error) {
	if mode == DependencyOrder {
		return Build(defs)
	}
	return BuildOrdered(defs)
}
