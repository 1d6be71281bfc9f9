package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/issuestate/internal/meta"
)

// TraceSnapshot captures what a scenario run resolved, for golden comparison.
type TraceSnapshot struct {
	ScenarioName string
	CatalogID    string
	Cases        []CaseResult
}

// NewTraceSnapshot captures result under the given scenario name.
func NewTraceSnapshot(scenarioName string, result *Result) *TraceSnapshot {
	return &TraceSnapshot{
		ScenarioName: scenarioName,
		CatalogID:    result.CatalogID,
		Cases:        result.Cases,
	}
}

// toCanonical converts the snapshot to a metadata value for canonical JSON.
// Expectations and pass flags are left out: the golden file records
// behavior, not what the scenario hoped for.
func (s *TraceSnapshot) toCanonical() meta.Object {
	cases := make(meta.List, len(s.Cases))
	for i, c := range s.Cases {
		steps := make(meta.List, len(c.Steps))
		for j, st := range c.Steps {
			steps[j] = meta.Object{
				"state":   meta.String(st.State),
				"local":   meta.Bool(st.Local),
				"deps_ok": meta.Bool(st.DepsOK),
				"enabled": meta.Bool(st.Enabled),
			}
		}

		var state meta.Value = meta.Null{}
		if c.Got != "" {
			state = meta.String(c.Got)
		}
		cases[i] = meta.Object{
			"name":  meta.String(c.Name),
			"issue": meta.String(c.Fingerprint),
			"state": state,
			"steps": steps,
		}
	}

	return meta.Object{
		"scenario_name": meta.String(s.ScenarioName),
		"catalog_id":    meta.String(s.CatalogID),
		"cases":         cases,
	}
}

// MarshalCanonical renders the snapshot as canonical JSON.
func (s *TraceSnapshot) MarshalCanonical() ([]byte, error) {
	return meta.MarshalCanonical(s.toCanonical())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := NewTraceSnapshot(scenarioName, result).MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
