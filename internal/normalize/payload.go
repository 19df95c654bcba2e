// Package normalize converts arbitrarily-shaped agent payloads into strict
// result shapes. The upstream agents' output is not contractually guaranteed
// field-by-field, so every read tolerates absence and type mismatch, every
// substituted default is recorded as a warning, and normalization never
// fails.
package normalize

import "fmt"

// decoder collects one warning per substituted default so defaulting is
// auditable instead of silent.
type decoder struct {
	warnings []string
}

func (d *decoder) warn(path, detail string) {
	d.warnings = append(d.warnings, fmt.Sprintf("%s: %s", path, detail))
}

// object reads a nested object. Absence or a non-object value degrades to
// nil, which every downstream accessor treats as "default everything".
func (d *decoder) object(m map[string]interface{}, key, path string) map[string]interface{} {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		d.warn(path, "missing object, fields defaulted")
		return nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		d.warn(path, "not an object, fields defaulted")
		return nil
	}
	return obj
}

func (d *decoder) str(m map[string]interface{}, key, path, def string) string {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok || v == nil {
		d.warn(path, fmt.Sprintf("missing, defaulted to %q", def))
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.warn(path, fmt.Sprintf("not a string, defaulted to %q", def))
		return def
	}
	return s
}

// num reads an integer field. JSON numbers decode as float64; anything else
// counts as absent.
func (d *decoder) num(m map[string]interface{}, key, path string) int {
	if m == nil {
		return 0
	}
	v, ok := m[key]
	if !ok || v == nil {
		d.warn(path, "missing, defaulted to 0")
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		d.warn(path, "not a number, defaulted to 0")
		return 0
	}
}

// list validates that a field is actually a sequence; a non-sequence value
// is treated identically to an absent one.
func (d *decoder) list(m map[string]interface{}, key, path string) []interface{} {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok || v == nil {
		d.warn(path, "missing, defaulted to empty list")
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		d.warn(path, "not a list, defaulted to empty list")
		return nil
	}
	return items
}

func (d *decoder) strList(m map[string]interface{}, key, path string) []string {
	out := []string{}
	for i, item := range d.list(m, key, path) {
		s, ok := item.(string)
		if !ok {
			d.warn(fmt.Sprintf("%s[%d]", path, i), "not a string, skipped")
			continue
		}
		out = append(out, s)
	}
	return out
}
