package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/issuestate/internal/compiler"
	"github.com/roach88/issuestate/internal/condition"
	"github.com/roach88/issuestate/internal/resolution"
)

// LoadMode controls how errors are handled during catalog loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the definitions read from a catalog path.
type LoadResult struct {
	Definitions []compiler.Definition
	Mode        compiler.Mode
	FileCount   int // Number of catalog files read
}

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Line    int       // YAML line if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog reads state definitions from path.
//
// A file is parsed by extension (see compiler.ParseFile). A directory is
// loaded as a CUE package whose "state" struct holds the definitions; each
// state is parsed separately, so LoadModeCollectAll reports every bad state
// rather than the first.
func LoadCatalog(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog: %v", err)}}
	}

	if !info.IsDir() {
		defs, err := compiler.ParseFile(path)
		if err != nil {
			return nil, []error{convertCompileError(err, path)}
		}
		return checkEmpty(&LoadResult{Definitions: defs, Mode: compiler.ModeFor(path), FileCount: 1}, nil)
	}

	cueFiles, err := FindCUEFiles(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeSyntax, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{Mode: compiler.DependencyOrder, FileCount: len(cueFiles)}
	var errs []error

	statesVal := value.LookupPath(cue.ParsePath("state"))
	if statesVal.Exists() {
		iter, err := statesVal.Fields()
		if err != nil {
			return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating states: %v", err)}}
		}
		for iter.Next() {
			def, err := compiler.ParseCUEState(iter.Label(), iter.Value())
			if err != nil {
				errs = append(errs, convertCompileError(err, "state."+iter.Label()))
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			result.Definitions = append(result.Definitions, def)
		}
	}

	return checkEmpty(result, errs)
}

func checkEmpty(result *LoadResult, errs []error) (*LoadResult, []error) {
	if len(result.Definitions) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoStates, Message: "no states found in catalog"})
	}
	return result, errs
}

// CompileCatalog loads path fail-fast and builds it in the mode its source
// calls for.
func CompileCatalog(path string) (*compiler.Compiled, *LoadResult, error) {
	loaded, errs := LoadCatalog(path, LoadModeFailFast)
	if len(errs) > 0 {
		return nil, loaded, errs[0]
	}
	compiled, err := compiler.BuildMode(loaded.Definitions, loaded.Mode)
	if err != nil {
		return nil, loaded, convertCompileError(err, path)
	}
	return compiled, loaded, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapCompileErrorToCode(compileErr),
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
			Line:    compileErr.Line,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants for failures that happen before a catalog is linted.
// Catalog problems reuse the compiler's E1xx codes.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No CUE files found
	ErrCodeLoadFailed   = "E004" // CUE load failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeSyntax       = "E006" // Catalog source does not parse
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeNoStates     = "E008" // Catalog declares no states
	ErrCodeInvalidIssue = "E009" // Issue metadata could not be read
	ErrCodeResolution   = "E010" // Resolution failed for the issue
)

// MapCompileErrorToCode maps a compiler error to an error code. Errors about
// the shape of the source (unknown fields, wrong types) count as syntax
// errors.
func MapCompileErrorToCode(err *compiler.CompileError) string {
	switch {
	case resolution.IsCyclicDependency(err):
		return compiler.ErrCyclicDependency
	case err.Message == "duplicate state name":
		return compiler.ErrDuplicateState
	case strings.HasPrefix(err.Message, "unknown state"):
		return compiler.ErrUnknownTarget
	case err.Message == "name is required":
		return compiler.ErrStateNameEmpty
	case condition.IsParseError(err):
		return compiler.ErrInvalidCondition
	default:
		return ErrCodeSyntax
	}
}
