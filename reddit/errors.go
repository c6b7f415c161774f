package reddit

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by listing calls made before a
// successful Authenticate.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthError reports a failed token request. Reason is set when Reddit
// returned a structured error payload (e.g. "invalid_grant"); otherwise
// StatusCode carries the raw HTTP status.
type AuthError struct {
	Reason     string
	StatusCode int
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("reddit rejected the credentials: %s", e.Reason)
	}
	return fmt.Sprintf("authentication failed with status %d", e.StatusCode)
}

// FetchError reports a failed listing request. Exactly one of
// StatusCode or Decode is set: a non-2xx response, or a 2xx body that
// did not match the expected listing shape.
type FetchError struct {
	StatusCode int
	Decode     error
}

func (e *FetchError) Error() string {
	if e.Decode != nil {
		return fmt.Sprintf("could not decode listing: %v", e.Decode)
	}
	return fmt.Sprintf("listing request failed with status %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Decode
}
