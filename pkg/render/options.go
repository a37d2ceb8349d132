package render

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name. Fields without an
	// entry fall back to the schema default.
	Values map[string]string
	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Result carries a generated contract to display beneath the form.
	Result *Result
}

// Result is a generated contract ready for display or download.
type Result struct {
	ContractName string
	FileName     string
	Source       string
}
