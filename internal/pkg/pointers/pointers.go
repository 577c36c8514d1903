package pointers

import "strings"

func String(v string) *string { return &v }
func Bool(v bool) *bool       { return &v }

// NonEmpty returns nil for blank strings so optional payload fields serialize
// as JSON null instead of "".
func NonEmpty(v string) *string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// Deref returns the pointed-to string or "" for nil.
func Deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
