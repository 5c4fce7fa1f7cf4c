package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidResult is returned when a pipeline produces output outside the
// shapes the API promises (empty labels, scores outside [0,1]).
var ErrInvalidResult = errors.New("invalid pipeline result")

var validate = validator.New()

func ValidateResult(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return nil
}

func ValidateResults[T any](items []T) error {
	for i := range items {
		if err := ValidateResult(items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
