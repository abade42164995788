// internal/infrastructure/backend/errors.go
package backend

import (
	"errors"
	"fmt"
)

// FetchError is a failed read from the backend. It is recoverable: the
// caches keep their previous snapshot and the UI offers a retry.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmitError is a failed write to the backend. It is recoverable: local
// state (in particular the cart) is left intact so the user can retry.
type SubmitError struct {
	Op  string
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit %s failed: %v", e.Op, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is or wraps a FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsSubmitError reports whether err is or wraps a SubmitError
func IsSubmitError(err error) bool {
	var se *SubmitError
	return errors.As(err, &se)
}
