package pointers

import "testing"

func TestNonEmpty(t *testing.T) {
	if NonEmpty("  ") != nil {
		t.Fatalf("expected nil for blank input")
	}
	if got := NonEmpty("amen"); got == nil || *got != "amen" {
		t.Fatalf("unexpected: %v", got)
	}
	if Deref(nil) != "" {
		t.Fatalf("expected empty deref for nil")
	}
	if Deref(String("x")) != "x" {
		t.Fatalf("unexpected deref")
	}
}
