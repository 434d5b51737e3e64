package pathres

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariable = errors.New("unknown environment variable")
	ErrNotFound        = errors.New("path does not exist")
	ErrNotADirectory   = errors.New("not a directory")
)

// ResolutionError reports why an input could not be resolved to a
// directory. Reason is one of the sentinel errors above and is exposed
// through errors.Is.
type ResolutionError struct {
	Input  string
	Reason error
	Detail string
}

func (e *ResolutionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("resolve %q: %v: %s", e.Input, e.Reason, e.Detail)
	}
	return fmt.Sprintf("resolve %q: %v", e.Input, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return e.Reason
}

func newResolutionError(input string, reason error, detail string) *ResolutionError {
	return &ResolutionError{Input: input, Reason: reason, Detail: detail}
}
