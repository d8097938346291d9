package api

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCalls reads a calls file and validates the step list. A malformed
// document here is the only fatal configuration error: it is detected before
// the run loop ever starts.
func LoadCalls(filename string) ([]Step, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading calls file: %w", err)
	}

	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing calls file: %w", err)
	}

	if err := ValidateSteps(steps); err != nil {
		return nil, fmt.Errorf("validating calls file %s: %w", filename, err)
	}

	return steps, nil
}

// LoadData reads an optional key→value data document used to seed the
// variable context alongside the process environment. An empty filename
// yields an empty document.
func LoadData(filename string) (map[string]any, error) {
	if filename == "" {
		return make(map[string]any), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}

	if values == nil {
		values = make(map[string]any)
	}

	return values, nil
}
