package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNoCredential = errors.New("no API key configured")
	ErrEmptyInput   = errors.New("required field is empty")
	ErrNoSession    = errors.New("no article or journey in progress")
	ErrBadGenre     = errors.New("unknown article genre")
	ErrStepNotDone  = errors.New("step has no first version to revise")
	ErrNotReady     = errors.New("required steps are not complete yet")
)

// NotSafeError carries the verdict reason; the step transition that
// triggered the check is blocked but nothing else is lost.
type NotSafeError struct {
	Reason string
}

func (e *NotSafeError) Error() string {
	return fmt.Sprintf("content rejected: %s", e.Reason)
}
