package validation

import (
	"errors"
	"testing"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
)

func TestPositive(t *testing.T) {
	if err := Positive("take", "n", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Positive("take", "n", 0)
	if err == nil {
		t.Fatal("expected error for zero value")
	}
	if !errors.Is(err, gserrors.ErrInvalidConfiguration) {
		t.Errorf("error should wrap ErrInvalidConfiguration, got %v", err)
	}
}

func TestNonNegative(t *testing.T) {
	if err := NonNegative("skip", "n", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NonNegative("skip", "n", -1); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestNonZero(t *testing.T) {
	if err := NonZero("enumerate", "step", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NonZero("enumerate", "step", 0); err == nil {
		t.Fatal("expected error for zero value")
	}
}

func TestNotNil(t *testing.T) {
	if err := NotNil("filter", "predicate", func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := NotNil("filter", "predicate", nil)
	if err == nil {
		t.Fatal("expected error for nil value")
	}
	if !errors.Is(err, gserrors.ErrInvalidConfiguration) {
		t.Errorf("error should wrap ErrInvalidConfiguration, got %v", err)
	}
}

func TestPositiveDuration(t *testing.T) {
	if err := PositiveDuration("timeout", "d", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := PositiveDuration("timeout", "d", 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}
