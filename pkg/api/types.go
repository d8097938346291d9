package api

const (
	// ValueKindString stores or compares the stringified form of a value.
	ValueKindString = "STRING"
	// ValueKindJSON parses string payloads as JSON and keeps the structure.
	ValueKindJSON = "JSON"
)

// Step is one configured unit of testing work. Steps are ordered; the
// sequence position defines data-dependency order and is never reshuffled.
type Step struct {
	Type     string         `yaml:"type"`
	Call     map[string]any `yaml:"call"`
	Save     *SaveSpec      `yaml:"save,omitempty"`
	Validate []ValidateSpec `yaml:"validate,omitempty"`
}

// SaveSpec declares where a step's result is written into the variable
// context and how the extracted value is interpreted. Raw marks the whole
// result as the target; Column addresses one field of a structured result.
// Omitting both is equivalent to raw.
type SaveSpec struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Raw    bool   `yaml:"raw,omitempty"`
	Column string `yaml:"column,omitempty"`
}

// ValidateSpec declares an equality assertion against a step's result.
// It never mutates the variable context.
type ValidateSpec struct {
	Raw    bool   `yaml:"raw,omitempty"`
	Column string `yaml:"column,omitempty"`
	Type   string `yaml:"type,omitempty"`
	Value  any    `yaml:"value"`
}
