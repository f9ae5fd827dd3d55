package domainerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	base := New(CodeNotFound, "submission not found")
	wrapped := Wrap(base, CodeInternal, "load submission")

	if !HasCode(base, CodeNotFound) {
		t.Fatalf("expected base error to carry CodeNotFound")
	}
	if !HasCode(wrapped, CodeInternal) {
		t.Fatalf("expected wrapped error to carry CodeInternal")
	}
	if !HasCode(wrapped, CodeNotFound) {
		t.Fatalf("expected wrapped error to still expose the inner CodeNotFound")
	}
	if HasCode(wrapped, CodeConflict) {
		t.Fatalf("did not expect CodeConflict anywhere in the chain")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CodeConflict, "already approved")); got != CodeConflict {
		t.Fatalf("expected CodeConflict, got %s", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("uncoded errors should map to CodeInternal, got %s", got)
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(fmt.Errorf("query: %w", cause), CodeUnavailable, "database unreachable")

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the original cause")
	}
}
