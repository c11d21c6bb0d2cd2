package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProduct     = errors.New("product id is required")
	ErrIllegalTransition  = errors.New("illegal transition of checkout step")
	ErrCheckoutCompleted  = errors.New("checkout is already completed")
	ErrSubmissionInFlight = errors.New("order submission is already in progress")
	ErrNotCompleted       = errors.New("checkout is not completed yet")
	ErrValidation         = errors.New("validation failed")
	ErrSubmissionFailed   = errors.New("order submission failed")
)

const genericSubmissionMessage = "failed to create order"

// ValidationError blocks a forward step until the named field is corrected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// SubmissionError is a retriable order submission failure. Message is safe
// to show to the customer.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}
