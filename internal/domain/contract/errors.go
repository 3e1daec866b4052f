package contract

import "errors"

// Errors shared between repositories and their callers.
var (
	ErrCurationNotFound = errors.New("curation not found")
	ErrMemberNotFound   = errors.New("member not found")
)
