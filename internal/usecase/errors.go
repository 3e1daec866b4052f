package usecase

import (
	"errors"
	"fmt"

	"github.com/curately/curately/internal/domain/contract"
)

// Sentinel errors surfaced to callers. Anything else coming out of a usecase
// is either a validation error or a TransientError wrapping a store failure.
var (
	ErrCurationNotFound = contract.ErrCurationNotFound
	ErrMemberNotFound   = contract.ErrMemberNotFound
	ErrNotOwner         = errors.New("curation is not owned by the actor")
)

// TransientError marks a counter-store or record-store failure that did not
// corrupt state: the operation simply did not happen and may be retried.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient store error: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func transientErr(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
