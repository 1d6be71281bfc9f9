package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/issuestate/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Lint a catalog",
		Long: `Lint a state catalog without printing the compiled order.

Reports every problem found rather than stopping at the first: empty or
duplicate names, unknown or forward relations, conflicting relations,
malformed conditions and cycles. Warnings (W2xx) do not fail validation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, loadErrors := LoadCatalog(path, LoadModeCollectAll)
	if loaded == nil && len(loadErrors) > 0 {
		code, message := parseCompileError(loadErrors[0])
		return commandError(formatter, code, message, nil)
	}

	formatter.VerboseLog("Read %d catalog file(s) from %s", loaded.FileCount, path)

	var findings []compiler.ValidationError
	for _, err := range loadErrors {
		code, message := parseCompileError(err)
		findings = append(findings, compiler.ValidationError{
			Field:   "load",
			Message: message,
			Code:    code,
			Level:   compiler.LevelError,
			Line:    errorLine(err),
		})
	}
	if len(loadErrors) == 0 {
		findings = append(findings, compiler.Validate(loaded.Definitions, loaded.Mode)...)
	}

	for _, f := range findings {
		formatter.VerboseLog("%s", f.Error())
	}

	if compiler.HasErrors(findings) {
		return outputValidationErrors(formatter, findings)
	}
	return outputValidateSuccess(formatter, findings)
}

func errorLine(err error) int {
	var le *LoadError
	if errors.As(err, &le) {
		if le.Pos.IsValid() {
			return le.Pos.Line()
		}
		return le.Line
	}
	return 0
}

// outputValidateSuccess outputs successful validation results, including
// any warnings.
func outputValidateSuccess(formatter *OutputFormatter, warnings []compiler.ValidationError) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Errors: warnings})
	}

	for _, w := range warnings {
		printFinding(formatter, w)
	}
	fmt.Fprintln(formatter.Writer, "✓ Catalog valid")
	return nil
}

// outputValidationErrors outputs validation findings.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		if err := formatter.Respond(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		printFinding(formatter, err)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", len(errs)))
}

func printFinding(formatter *OutputFormatter, f compiler.ValidationError) {
	if f.Line > 0 {
		fmt.Fprintf(formatter.Writer, "line %d\n", f.Line)
	}
	fmt.Fprintf(formatter.Writer, "  %s %s: %s: %s\n\n", f.Level, f.Code, f.Field, f.Message)
}
