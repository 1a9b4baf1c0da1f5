package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("workout")
	if got := gen.Next(); got != "workout-1" {
		t.Fatalf("expected workout-1, got %s", got)
	}
	if got := gen.Next(); got != "workout-2" {
		t.Fatalf("expected workout-2, got %s", got)
	}
}

func TestIDGeneratorDefaultPrefix(t *testing.T) {
	t.Parallel()

	gen := NewIDGenerator("")
	if got := gen.Next(); got != "id-1" {
		t.Fatalf("expected id-1, got %s", got)
	}
}
