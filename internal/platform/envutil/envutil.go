// Package envutil reads trimmed environment values with typed fallbacks.
package envutil

import (
	"os"
	"strconv"
	"strings"
)

func String(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func Int(name string, def int) int {
	v := String(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Float(name string, def float64) float64 {
	v := String(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Bool reports whether name holds a truthy value; unset or unrecognized is false.
func Bool(name string) bool {
	return ParseBool(String(name))
}

func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

// List splits a comma-separated value and drops blank entries.
func List(name string) []string {
	parts := strings.Split(String(name), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
