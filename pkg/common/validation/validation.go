package validation

import (
	"fmt"

	gserrors "github.com/vnykmshr/gostream/pkg/common/errors"
)

// Positive validates that an integer operator argument is positive (> 0).
func Positive(op, field string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s: %s must be positive, got %d: %w",
			op, field, value, gserrors.ErrInvalidConfiguration)
	}
	return nil
}

// NonNegative validates that an integer operator argument is >= 0.
func NonNegative(op, field string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s: %s cannot be negative, got %d: %w",
			op, field, value, gserrors.ErrInvalidConfiguration)
	}
	return nil
}

// NonZero validates that an integer operator argument is not zero.
func NonZero(op, field string, value int) error {
	if value == 0 {
		return fmt.Errorf("%s: %s cannot be zero: %w",
			op, field, gserrors.ErrInvalidConfiguration)
	}
	return nil
}

// NotNil validates that a required operator argument is present.
func NotNil(op, field string, value any) error {
	if value == nil {
		return fmt.Errorf("%s: %s cannot be nil: %w",
			op, field, gserrors.ErrInvalidConfiguration)
	}
	return nil
}

// PositiveDuration validates that a duration argument is positive,
// using nanoseconds for the reported value.
func PositiveDuration(op, field string, value int64) error {
	if value <= 0 {
		return fmt.Errorf("%s: %s must be a positive duration: %w",
			op, field, gserrors.ErrInvalidConfiguration)
	}
	return nil
}
