package runner

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/spf13/cast"
	"github.com/systemstart/testflow/pkg/api"
)

// extract addresses the portion of a step result a save or validate directive
// operates on: the whole result, or one named field of a structured result.
// For row-set results (a sequence of mappings) the field is taken from the
// first row, matching how a single value is saved from a query result.
func extract(result any, column string) (any, error) {
	if column == "" {
		return result, nil
	}

	switch v := result.(type) {
	case map[string]any:
		value, ok := v[column]
		if !ok {
			// Query results wrap their rows; address the column through them.
			if rows, hasRows := v["rows"]; hasRows {
				return extract(rows, column)
			}
			return nil, fmt.Errorf("field %q not present in result", column)
		}
		return value, nil
	case []map[string]any:
		if len(v) == 0 {
			return nil, fmt.Errorf("field %q: result has no rows", column)
		}
		return extract(v[0], column)
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("field %q: result has no rows", column)
		}
		return extract(v[0], column)
	default:
		return nil, fmt.Errorf("cannot extract field %q from %T result", column, result)
	}
}

// coerce applies a declared value kind to an extracted value. STRING yields
// the stringified form; JSON parses string payloads into structured values.
func coerce(value any, kind string) (any, error) {
	switch kind {
	case "":
		return value, nil
	case api.ValueKindString:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, fmt.Errorf("value %v (%T) is not representable as %s", value, value, kind)
		}
		return s, nil
	case api.ValueKindJSON:
		switch v := value.(type) {
		case string:
			var parsed any
			if err := json.Unmarshal([]byte(v), &parsed); err != nil {
				return nil, fmt.Errorf("parsing value as JSON: %w", err)
			}
			return parsed, nil
		case []byte:
			var parsed any
			if err := json.Unmarshal(v, &parsed); err != nil {
				return nil, fmt.Errorf("parsing value as JSON: %w", err)
			}
			return parsed, nil
		default:
			return value, nil
		}
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}

// valuesEqual implements the validate comparison rule: scalar pairs compare
// by stringified form (so YAML 200 equals a numeric 200 from a response),
// anything structured compares by JSON-normalized deep equality.
func valuesEqual(expected, actual any) bool {
	if isScalar(expected) && isScalar(actual) {
		ec, eerr := cast.ToStringE(expected)
		ac, aerr := cast.ToStringE(actual)
		if eerr == nil && aerr == nil {
			return ec == ac
		}
	}
	return reflect.DeepEqual(normalize(expected), normalize(actual))
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// normalize round-trips a value through JSON so that YAML-decoded expected
// values (int keys) and JSON-decoded actual values (float64) compare equal.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
