package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFound("order %s not found", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("not-found must not match conflict")
	}

	wrapped := fmt.Errorf("accept order: %w", InvalidState("order is SHIPPED"))
	if !errors.Is(wrapped, ErrInvalidState) {
		t.Fatalf("expected wrapped error to match ErrInvalidState")
	}
	if KindOf(wrapped) != KindInvalidState {
		t.Fatalf("KindOf = %q", KindOf(wrapped))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(cause, KindConflict, "rule already defined")
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if err.Error() != "rule already defined: duplicate key" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors have no kind")
	}
}
