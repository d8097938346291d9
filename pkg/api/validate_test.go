package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSteps(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		wantErr string
	}{
		{
			name:    "no steps",
			wantErr: "no steps",
		},
		{
			name:    "missing type",
			steps:   []Step{{Call: map[string]any{"cmd": "true"}}},
			wantErr: "type is required",
		},
		{
			name: "minimal valid step",
			steps: []Step{
				{Type: "BASH_CMD", Call: map[string]any{"cmd": "true"}},
			},
		},
		{
			name: "save without name",
			steps: []Step{
				{Type: "BASH_CMD", Save: &SaveSpec{Type: ValueKindString}},
			},
			wantErr: "save: name is required",
		},
		{
			name: "save without type",
			steps: []Step{
				{Type: "BASH_CMD", Save: &SaveSpec{Name: "out"}},
			},
			wantErr: "save: type is required",
		},
		{
			name: "save with unknown kind",
			steps: []Step{
				{Type: "BASH_CMD", Save: &SaveSpec{Name: "out", Type: "XML"}},
			},
			wantErr: `unknown type "XML"`,
		},
		{
			name: "save with raw and column",
			steps: []Step{
				{Type: "BASH_CMD", Save: &SaveSpec{Name: "out", Type: ValueKindString, Raw: true, Column: "x"}},
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "validate without value",
			steps: []Step{
				{Type: "REST", Validate: []ValidateSpec{{Column: "status_code"}}},
			},
			wantErr: "value is required",
		},
		{
			name: "validate with raw and column",
			steps: []Step{
				{Type: "REST", Validate: []ValidateSpec{{Raw: true, Column: "x", Value: 1}}},
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "validate with kind",
			steps: []Step{
				{Type: "REST", Validate: []ValidateSpec{{Column: "body", Type: ValueKindJSON, Value: map[string]any{"ok": true}}}},
			},
		},
		{
			name: "unknown plugin type passes structural validation",
			steps: []Step{
				{Type: "NOT_A_PLUGIN"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSteps(tt.steps)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
