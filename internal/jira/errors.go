package jira

import (
	"errors"
	"fmt"
)

// ErrMissingBaseURL indicates the client was built without a Jira base URL.
var ErrMissingBaseURL = errors.New("jira base URL is not configured")

// StatusError is returned when Jira answers with a non-2xx status.
// Callers relay StatusCode and Status to their own clients unchanged.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira responded %d %s", e.StatusCode, e.Status)
}

// AsStatusError unwraps err to a *StatusError if it carries one.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
