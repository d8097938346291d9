package api

import (
	"fmt"
)

var validValueKinds = map[string]bool{
	ValueKindString: true,
	ValueKindJSON:   true,
}

// ValidateSteps checks the step list for structural errors. Plugin types are
// deliberately not checked here: the registry resolves them lazily, and an
// unknown type fails the affected step, not the whole run.
func ValidateSteps(steps []Step) error {
	if len(steps) == 0 {
		return fmt.Errorf("calls file has no steps")
	}

	for i, step := range steps {
		if step.Type == "" {
			return fmt.Errorf("step %d: type is required", i)
		}
		if step.Save != nil {
			if err := validateSave(step.Save); err != nil {
				return fmt.Errorf("step %d: save: %w", i, err)
			}
		}
		for j, v := range step.Validate {
			if err := validateValidate(v); err != nil {
				return fmt.Errorf("step %d: validate %d: %w", i, j, err)
			}
		}
	}

	return nil
}

func validateSave(s *SaveSpec) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !validValueKinds[s.Type] {
		return fmt.Errorf("unknown type %q (valid: %s, %s)", s.Type, ValueKindString, ValueKindJSON)
	}
	if s.Raw && s.Column != "" {
		return fmt.Errorf("raw and column are mutually exclusive")
	}
	return nil
}

func validateValidate(v ValidateSpec) error {
	if v.Value == nil {
		return fmt.Errorf("value is required")
	}
	if v.Type != "" && !validValueKinds[v.Type] {
		return fmt.Errorf("unknown type %q (valid: %s, %s)", v.Type, ValueKindString, ValueKindJSON)
	}
	if v.Raw && v.Column != "" {
		return fmt.Errorf("raw and column are mutually exclusive")
	}
	return nil
}
