package hierarchy

import (
	"errors"
	"fmt"
)

// ErrNotFound means the named entity does not exist at that level. Not
// retryable: it indicates a broken or stale deep link, not a transport
// problem.
var ErrNotFound = errors.New("hierarchy: entity not found")

// ErrLookupUnsupported is returned by repositories that have no
// single-record lookup for a level; callers degrade to listing and
// scanning.
var ErrLookupUnsupported = errors.New("hierarchy: lookup by id not supported")

// ErrParentRequired rejects a parent-filtered fetch with no parent id for
// any level below Client.
var ErrParentRequired = errors.New("hierarchy: parent id required below client level")

// FetchError is a transient, retryable transport failure (network, timeout,
// server error). It is always explicit: a failed fetch never degrades
// silently into an empty candidate list.
type FetchError struct {
	Level Level
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("hierarchy: fetch %s: %v", e.Level, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

func NewFetchError(level Level, cause error) *FetchError {
	return &FetchError{Level: level, Cause: cause}
}

// AncestorNotFoundError means the upward walk broke partway: the record at
// Level could not be found. Carrying the level lets a page report "program
// no longer exists" instead of a generic failure.
type AncestorNotFoundError struct {
	Level Level
	ID    string
}

func (e *AncestorNotFoundError) Error() string {
	return fmt.Sprintf("hierarchy: ancestor %s %q not found", e.Level, e.ID)
}

func (e *AncestorNotFoundError) Unwrap() error { return ErrNotFound }
