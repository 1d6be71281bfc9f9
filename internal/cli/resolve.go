package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/roach88/issuestate/internal/harness"
	"github.com/roach88/issuestate/internal/meta"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Issue   string // issue metadata file, "-" for stdin
	Explain bool   // include per-state evaluation steps
}

// ResolveResult is the outcome of resolving one issue.
type ResolveResult struct {
	// State is the winning state, nil when no state is enabled.
	State       *string        `json:"state"`
	Fingerprint string         `json:"issue"`
	CatalogID   string         `json:"catalog_id"`
	Steps       []harness.Step `json:"steps,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <catalog>",
		Short: "Resolve the state of an issue",
		Long: `Resolve the state of one issue against a catalog.

The issue is a YAML or JSON mapping of metadata keys to values. The last
enabled state in catalog order wins; with --explain every state's
evaluation is printed as well.

Exit codes:
  0 - Resolved (including "no state")
  2 - Command error (bad catalog, unreadable issue, dependency error)

Examples:
  issuestate resolve catalog.yaml --issue issue.json
  cat issue.yaml | issuestate resolve ./catalog --issue - --explain`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Issue, "issue", "-", `issue metadata file ("-" reads stdin)`)
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "show how each state was evaluated")

	return cmd
}

func runResolve(opts *ResolveOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	compiled, _, err := CompileCatalog(path)
	if err != nil {
		code, message := parseCompileError(err)
		return commandError(formatter, code, message, nil)
	}

	issue, err := readIssue(opts.Issue, cmd.InOrStdin())
	if err != nil {
		return commandError(formatter, ErrCodeInvalidIssue, err.Error(), nil)
	}

	fingerprint, err := meta.Fingerprint(issue)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidIssue, err.Error(), nil)
	}
	id, err := compiled.ID()
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("hashing catalog: %v", err), nil)
	}

	winner, steps, err := compiled.Catalog.Explain(issue)
	if err != nil {
		return commandError(formatter, ErrCodeResolution, err.Error(), nil)
	}

	result := &ResolveResult{Fingerprint: fingerprint, CatalogID: id}
	if winner != nil {
		name := winner.Name()
		result.State = &name
	}
	if opts.Explain {
		result.Steps = make([]harness.Step, len(steps))
		for i, s := range steps {
			result.Steps[i] = harness.Step{
				State:   s.State.Name(),
				Local:   s.Local,
				DepsOK:  s.DepsOK,
				Enabled: s.Enabled,
			}
		}
	}

	logger.Debug("issue resolved", "catalog", path, "issue", fingerprint, "state", result.stateName())

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputResolveText(formatter.Writer, result)
}

func (r *ResolveResult) stateName() string {
	if r.State == nil {
		return ""
	}
	return *r.State
}

// readIssue reads issue metadata from a file, or from stdin for "-". JSONC
// files have their comments stripped first.
func readIssue(path string, stdin io.Reader) (meta.Object, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading issue: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		data = jsonc.ToJSON(data)
	}
	return meta.ParseObject(data)
}

func outputResolveText(w io.Writer, result *ResolveResult) error {
	if result.State == nil {
		fmt.Fprintln(w, "No state enabled")
	} else {
		fmt.Fprintf(w, "State: %s\n", *result.State)
	}

	if len(result.Steps) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	for _, s := range result.Steps {
		mark := "✗"
		if s.Enabled {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %s %s (conditions: %s, extends: %s)\n", mark, s.State, yesNo(s.Local), yesNo(s.DepsOK))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
