package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrConcurrentModification indicates an operation raced with another writer and
// lost. It is surfaced rather than retried so callers can decide what to do.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
