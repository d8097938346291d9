package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systemstart/testflow/pkg/api"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		result  any
		column  string
		want    any
		wantErr string
	}{
		{
			name:   "raw result",
			result: "whole",
			want:   "whole",
		},
		{
			name:   "column from mapping",
			result: map[string]any{"status_code": 404},
			column: "status_code",
			want:   404,
		},
		{
			name:   "column from first row",
			result: []map[string]any{{"id": 1}, {"id": 2}},
			column: "id",
			want:   1,
		},
		{
			name:   "column from generic row slice",
			result: []any{map[string]any{"id": 3}},
			column: "id",
			want:   3,
		},
		{
			name:   "column through wrapped rows",
			result: map[string]any{"rows": []map[string]any{{"name": "alice"}, {"name": "bob"}}, "count": 2},
			column: "name",
			want:   "alice",
		},
		{
			name:   "top-level field wins over rows",
			result: map[string]any{"rows": []map[string]any{{"count": 99}}, "count": 1},
			column: "count",
			want:   1,
		},
		{
			name:    "wrapped empty row set",
			result:  map[string]any{"rows": []map[string]any{}, "count": 0},
			column:  "name",
			wantErr: "no rows",
		},
		{
			name:    "missing field",
			result:  map[string]any{"a": 1},
			column:  "b",
			wantErr: `field "b" not present`,
		},
		{
			name:    "empty row set",
			result:  []map[string]any{},
			column:  "id",
			wantErr: "no rows",
		},
		{
			name:    "scalar has no fields",
			result:  42,
			column:  "id",
			wantErr: "cannot extract",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract(tt.result, tt.column)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		kind    string
		want    any
		wantErr bool
	}{
		{name: "no kind passes through", value: 7, want: 7},
		{name: "string kind stringifies number", value: 200, kind: api.ValueKindString, want: "200"},
		{name: "string kind keeps string", value: "hi", kind: api.ValueKindString, want: "hi"},
		{name: "string kind rejects mapping", value: map[string]any{}, kind: api.ValueKindString, wantErr: true},
		{name: "json kind parses string", value: `{"ok": true}`, kind: api.ValueKindJSON, want: map[string]any{"ok": true}},
		{name: "json kind parses bytes", value: []byte(`[1, 2]`), kind: api.ValueKindJSON, want: []any{float64(1), float64(2)}},
		{name: "json kind keeps structure", value: map[string]any{"a": 1}, kind: api.ValueKindJSON, want: map[string]any{"a": 1}},
		{name: "json kind rejects garbage", value: "{not json", kind: api.ValueKindJSON, wantErr: true},
		{name: "unknown kind", value: "x", kind: "XML", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(tt.value, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{name: "equal ints", expected: 200, actual: 200, want: true},
		{name: "int vs float", expected: 200, actual: float64(200), want: true},
		{name: "int vs numeric string", expected: 200, actual: "200", want: true},
		{name: "mismatch", expected: 200, actual: 404, want: false},
		{name: "equal strings", expected: "ok", actual: "ok", want: true},
		{
			name:     "yaml mapping vs json mapping",
			expected: map[string]any{"id": 7},
			actual:   map[string]any{"id": float64(7)},
			want:     true,
		},
		{
			name:     "sequence vs sequence",
			expected: []any{1, 2},
			actual:   []any{float64(1), float64(2)},
			want:     true,
		},
		{
			name:     "structure mismatch",
			expected: map[string]any{"id": 7},
			actual:   map[string]any{"id": 8},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuesEqual(tt.expected, tt.actual))
		})
	}
}
