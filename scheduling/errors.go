package scheduling

import "fmt"

// ValidationError covers malformed input: bad time ordering, windows outside
// availability, illegal state transitions. Never worth an automatic retry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError means the request lost a concurrency race or overlaps an
// existing slot. The caller should re-fetch the schedule and resubmit.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string { return e.Reason }

// StorageError wraps a store-level failure. It is never masked as a
// validation failure; reserve callers must re-validate before retrying.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage failure: %v", e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }
