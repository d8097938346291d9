package vars

import (
	"fmt"
	"regexp"

	"github.com/spf13/cast"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Substitute walks a configuration tree and replaces every ${NAME} token in
// string leaves with the value bound to NAME. A leaf that is exactly one
// token is replaced by the bound value itself, preserving its type; any other
// occurrence is replaced by the stringified value. Mappings and sequences are
// recursed into. A reference to an unbound name fails the whole call with
// ErrUndefinedVariable. Substitution of a tree without placeholders is a
// no-op, so the operation is idempotent.
func (c *Context) Substitute(tree any) (any, error) {
	switch node := tree.(type) {
	case string:
		return c.substituteString(node)
	case map[string]any:
		out := make(map[string]any, len(node))
		for key, value := range node {
			substituted, err := c.Substitute(value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = substituted
		}
		return out, nil
	case []any:
		out := make([]any, len(node))
		for i, value := range node {
			substituted, err := c.Substitute(value)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = substituted
		}
		return out, nil
	default:
		return tree, nil
	}
}

func (c *Context) substituteString(s string) (any, error) {
	matches := placeholderRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	// A leaf that is exactly one placeholder inlines the value structurally.
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		return c.Get(s[matches[0][2]:matches[0][3]])
	}

	var out []byte
	last := 0
	for _, m := range matches {
		name := s[m[2]:m[3]]
		value, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s[last:m[0]]...)
		out = append(out, stringify(value)...)
		last = m[1]
	}
	out = append(out, s[last:]...)
	return string(out), nil
}

// stringify renders a value for in-string interpolation. Scalars go through
// cast; structured values fall back to their default Go formatting.
func stringify(value any) string {
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return s
}
