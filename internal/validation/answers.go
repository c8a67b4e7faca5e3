package validation

// Answers maps answer field names to submitted values. Values are primitives
// (string, bool, number) or ordered string sequences for checkbox and list
// questions. Empty strings and empty sequences count as absent.
type Answers map[string]any

// Present reports whether the field holds a non-empty value.
func (a Answers) Present(field string) bool {
	v, ok := a[field]
	if !ok || v == nil {
		return false
	}
	switch tv := v.(type) {
	case string:
		return len(tv) > 0
	case []string:
		return len(tv) > 0
	case []any:
		return len(tv) > 0
	default:
		return true
	}
}

// Truthy applies loose truthiness: false, zero, nil and empty values are
// falsy; everything else is truthy.
func (a Answers) Truthy(field string) bool {
	v, ok := a[field]
	if !ok || v == nil {
		return false
	}
	switch tv := v.(type) {
	case bool:
		return tv
	case string:
		return len(tv) > 0
	case []string:
		return len(tv) > 0
	case []any:
		return len(tv) > 0
	case int:
		return tv != 0
	case float64:
		return tv != 0
	default:
		return true
	}
}

// String returns the field as a string, or "" when absent or differently
// typed.
func (a Answers) String(field string) string {
	s, _ := a[field].(string)
	return s
}

// Contains reports whether the answer equals value or, for sequence answers,
// includes it.
func (a Answers) Contains(field, value string) bool {
	switch tv := a[field].(type) {
	case string:
		return tv == value
	case []string:
		for _, item := range tv {
			if item == value {
				return true
			}
		}
	case []any:
		for _, item := range tv {
			if s, ok := item.(string); ok && s == value {
				return true
			}
		}
	}
	return false
}
