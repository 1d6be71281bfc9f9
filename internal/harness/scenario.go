package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/issuestate/internal/meta"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is the path of the catalog file. LoadScenario makes it relative
	// to the working directory.
	Catalog string `yaml:"catalog"`

	// Cases are resolved in order.
	Cases []Case `yaml:"cases"`

	// Assertions are checked after all cases ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one issue and the state it must resolve to.
type Case struct {
	Name  string      `yaml:"name"`
	Issue meta.Object `yaml:"issue"`

	// Expect is the expected state name; "" expects no state. It must be
	// present so a forgotten expectation is not read as "no state".
	Expect *string `yaml:"expect"`
}

// Assertion checks the catalog or a single case beyond its expectation.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Case names the case for enabled and disabled.
	Case string `yaml:"case,omitempty"`

	// State names the state for enabled and disabled.
	State string `yaml:"state,omitempty"`

	// States is the expected order for catalog_order.
	States []string `yaml:"states,omitempty"`
}

// Assertion type constants.
const (
	AssertCatalogOrder = "catalog_order"
	AssertEnabled      = "enabled"
	AssertDisabled     = "disabled"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) {
		scenario.Catalog = filepath.Join(filepath.Dir(path), scenario.Catalog)
	}
	if _, err := os.Stat(scenario.Catalog); err != nil {
		return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the file system.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		names[c.Name] = true
		if c.Expect == nil {
			return fmt.Errorf("cases[%d]: expect is required (use \"\" for no state)", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, names); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion, cases map[string]bool) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertCatalogOrder:
		if len(a.States) == 0 {
			return fmt.Errorf("assertions[%d]: states list is required for catalog_order", index)
		}
	case AssertEnabled, AssertDisabled:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for %s", index, a.Type)
		}
		if !cases[a.Case] {
			return fmt.Errorf("assertions[%d]: unknown case %q", index, a.Case)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
