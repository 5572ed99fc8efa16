package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

func OrZero[T comparable](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// StringOrNil trims s and returns nil when nothing is left.
func StringOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SplitNonEmpty splits s on sep, trims every part and drops the blank ones.
func SplitNonEmpty(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if p := StringOrNil(part); p != nil {
			parts = append(parts, *p)
		}
	}
	return parts
}
