package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/issuestate/internal/compiler"
	"github.com/roach88/issuestate/internal/meta"
)

// Harness resolves scenario cases against one compiled catalog.
type Harness struct {
	compiled *compiler.Compiled
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes harness logging to logger. By default it is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a harness for an already compiled catalog.
func New(compiled *compiler.Compiled, opts ...Option) *Harness {
	h := &Harness{
		compiled: compiled,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run compiles the scenario's catalog and executes the scenario.
//
// Failing expectations and assertions are reported in the Result. An error is
// only returned when the scenario cannot run at all, e.g. the catalog does not
// compile.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	compiled, err := compiler.CompileFile(scenario.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog: %w", err)
	}
	return New(compiled, opts...).Run(scenario)
}

// Run executes every case of scenario, then evaluates its assertions.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	id, err := h.compiled.ID()
	if err != nil {
		return nil, fmt.Errorf("failed to hash catalog: %w", err)
	}

	result := NewResult()
	result.CatalogID = id
	result.Order = h.compiled.Catalog.Names()

	h.logger.Debug("running scenario",
		"scenario", scenario.Name,
		"catalog", scenario.Catalog,
		"states", len(result.Order),
		"cases", len(scenario.Cases))

	for _, c := range scenario.Cases {
		cr, err := h.runCase(c)
		if err != nil {
			result.AddError(fmt.Sprintf("case %q: %v", c.Name, err))
			continue
		}
		if !cr.Pass {
			result.AddError(fmt.Sprintf("case %q: expected %s, got %s",
				c.Name, describeState(cr.Expect), describeState(cr.Got)))
		}
		result.Cases = append(result.Cases, cr)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished", "scenario", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

func (h *Harness) runCase(c Case) (CaseResult, error) {
	fingerprint, err := meta.Fingerprint(c.Issue)
	if err != nil {
		return CaseResult{}, err
	}

	winner, steps, err := h.compiled.Catalog.Explain(c.Issue)
	if err != nil {
		return CaseResult{}, err
	}

	cr := CaseResult{
		Name:        c.Name,
		Fingerprint: fingerprint,
		Steps:       make([]Step, len(steps)),
	}
	if c.Expect != nil {
		cr.Expect = *c.Expect
	}
	if winner != nil {
		cr.Got = winner.Name()
	}
	cr.Pass = cr.Got == cr.Expect

	for i, s := range steps {
		cr.Steps[i] = Step{
			State:   s.State.Name(),
			Local:   s.Local,
			DepsOK:  s.DepsOK,
			Enabled: s.Enabled,
		}
	}

	h.logger.Debug("case resolved", "case", c.Name, "issue", fingerprint[:12], "state", cr.Got, "pass", cr.Pass)
	return cr, nil
}

func describeState(name string) string {
	if name == "" {
		return "no state"
	}
	return fmt.Sprintf("%q", name)
}
