// Package harness runs catalog conformance scenarios.
//
// A scenario names a catalog file and lists issues together with the state
// each one must resolve to. The harness compiles the catalog once, resolves
// every case with Explain and records the per-state evaluation as a trace.
//
// # Scenario Format
//
//	name: lifecycle
//	description: "Issues move from new to closed"
//	catalog: ../catalogs/lifecycle.yaml
//	cases:
//	  - name: fresh
//	    issue: {}
//	    expect: new
//	  - name: nothing matches
//	    issue: {}
//	    expect: ""
//	assertions:
//	  - type: catalog_order
//	    states: [new, acknowledged]
//	  - type: enabled
//	    case: fresh
//	    state: new
//
// The catalog path is relative to the scenario file. An empty expect means no
// state may be enabled.
//
// # Assertion Types
//
//   - catalog_order: the catalog lists states in exactly this order
//   - enabled: the state is enabled for the named case
//   - disabled: the state is not enabled for the named case
//
// # Golden Traces
//
// RunWithGolden renders the trace as canonical JSON and compares it with
// testdata/golden/<scenario>.golden. Issues appear in the trace by
// fingerprint, so reordering keys in a scenario file does not change it.
package harness
