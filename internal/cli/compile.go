package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/issuestate/internal/compiler"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult is the compiled catalog in catalog order.
type CompilationResult struct {
	CatalogID string                `json:"catalog_id"`
	Order     []string              `json:"order"`
	States    []compiler.Definition `json:"states"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <catalog>",
		Short: "Compile a catalog and print its state order",
		Long: `Compile a state catalog and print the resulting catalog order.

<catalog> is a .yaml/.yml/.json file (document order), a .cue file, or a
directory holding a CUE package (dependency order).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	loaded, loadErrors := LoadCatalog(path, LoadModeCollectAll)
	if loaded == nil && len(loadErrors) > 0 {
		code, message := parseCompileError(loadErrors[0])
		return commandError(formatter, code, message, nil)
	}
	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	formatter.VerboseLog("Read %d catalog file(s) from %s", loaded.FileCount, path)
	for _, def := range loaded.Definitions {
		formatter.VerboseLog("Compiling state: %s", def.Name)
	}

	compiled, err := compiler.BuildMode(loaded.Definitions, loaded.Mode)
	if err != nil {
		return outputCompileErrors(formatter, []error{err})
	}

	id, err := compiled.ID()
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("hashing catalog: %v", err), nil)
	}
	logger.Debug("catalog compiled", "path", path, "states", compiled.Catalog.Len(), "catalog_id", id)

	result := &CompilationResult{
		CatalogID: id,
		Order:     compiled.Catalog.Names(),
		States:    compiled.Definitions,
	}

	if opts.Output != "" {
		if err := writeCatalogToFile(result, opts.Output); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %d state(s)\n\n", len(result.States))
	fmt.Fprintln(w, "Order:")
	for i, def := range result.States {
		fmt.Fprintf(w, "  %d. %s%s\n", i+1, def.Name, describeDefinition(def))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Catalog ID: %s\n", result.CatalogID)

	if outputFile != "" {
		fmt.Fprintf(w, "Wrote catalog to %s\n", outputFile)
	}
	return nil
}

// describeDefinition renders the conditions and relations of a state for
// text output, or "" when it has none.
func describeDefinition(def compiler.Definition) string {
	var parts []string
	if len(def.Conditions) > 0 {
		parts = append(parts, "if "+strings.Join(def.Conditions, ", "))
	}
	if len(def.Extends) > 0 {
		parts = append(parts, "extends "+strings.Join(def.Extends, ", "))
	}
	if len(def.Overrides) > 0 {
		parts = append(parts, "overrides "+strings.Join(def.Overrides, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, "; ") + ")"
}

// outputCompileErrors outputs one or more compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}

		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		if loc := errorLocation(err); loc != "" {
			fmt.Fprintln(formatter.Writer, loc)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return MapCompileErrorToCode(compileErr), fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message)
	}
	return ErrCodeGeneric, err.Error()
}

// errorLocation returns "file:line:col" for errors that carry a position.
func errorLocation(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		switch {
		case compileErr.Pos.IsValid():
			return fmt.Sprintf("%s:%d:%d", compileErr.Pos.Filename(), compileErr.Pos.Line(), compileErr.Pos.Column())
		case compileErr.Line > 0:
			return fmt.Sprintf("%s:%d:%d", compileErr.File, compileErr.Line, compileErr.Column)
		}
	}
	return ""
}

// writeCatalogToFile writes the compilation result to a file as indented JSON.
func writeCatalogToFile(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
