package manager

import (
	"errors"
	"fmt"
)

// ErrPoolTimeout reports that a borrow blocked past the configured maximum
// wait. The condition is retryable: a later call may find a returned
// resource.
var ErrPoolTimeout = errors.New("timed out waiting for a pooled resource")

// CreationError reports that a driver or browser could not be created or
// launched. The pooling container has already applied its own retry policy
// by the time one of these reaches a caller.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("resource creation failed: %v", e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// OperationError wraps any failure from session setup, script injection, or
// the caller's body. Cleanup has always completed (best effort) before one
// of these is returned; the original cause is available via Unwrap.
type OperationError struct {
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("page operation failed: %v", e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
