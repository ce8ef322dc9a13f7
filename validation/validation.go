package validation

import "strings"

// Violations maps a field name to a machine-readable reason.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredPtr flags a present-but-blank optional string.
func RequiredPtr(field string, value *string, v Violations) {
	if value != nil {
		Required(field, *value, v)
	}
}

func PositiveFloat(field string, val *float64, v Violations) {
	if val != nil && *val <= 0 {
		v[field] = "must_be_positive"
	}
}

// Ordered flags a range whose lower bound exceeds its upper bound.
// Either bound may be absent.
func Ordered(minField string, minVal, maxVal *float64, v Violations) {
	if minVal != nil && maxVal != nil && *minVal > *maxVal {
		v[minField] = "greater_than_max"
	}
}

func MaxLen(field, value string, n int, v Violations) {
	if len(value) > n {
		v[field] = "too_long"
	}
}
