package harness

// Step records how one state was evaluated for a case.
type Step struct {
	State   string `json:"state"`
	Local   bool   `json:"local"`
	DepsOK  bool   `json:"deps_ok"`
	Enabled bool   `json:"enabled"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`

	// Fingerprint identifies the issue, see meta.Fingerprint.
	Fingerprint string `json:"fingerprint"`

	Expect string `json:"expect"`
	Got    string `json:"got"`
	Pass   bool   `json:"pass"`

	// Steps has one entry per catalog state, in catalog order.
	Steps []Step `json:"steps"`
}

// enabled reports whether state was enabled in this case.
func (c *CaseResult) enabled(state string) (on, found bool) {
	for _, s := range c.Steps {
		if s.State == state {
			return s.Enabled, true
		}
	}
	return false, false
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every case and assertion passed.
	Pass bool `json:"pass"`

	// CatalogID is the content hash of the compiled catalog.
	CatalogID string `json:"catalog_id"`

	// Order is the catalog order.
	Order []string `json:"order"`

	Cases []CaseResult `json:"cases"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Case returns the result of the named case.
func (r *Result) Case(name string) (*CaseResult, bool) {
	for i := range r.Cases {
		if r.Cases[i].Name == name {
			return &r.Cases[i], true
		}
	}
	return nil, false
}
