package plugin

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeCall maps a resolved call tree onto a plugin's typed call struct by
// round-tripping through YAML, the same codec the call came in on. Unknown
// keys are ignored; type mismatches surface as errors.
func DecodeCall(call map[string]any, out any) error {
	data, err := yaml.Marshal(call)
	if err != nil {
		return fmt.Errorf("encoding call: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding call: %w", err)
	}
	return nil
}
