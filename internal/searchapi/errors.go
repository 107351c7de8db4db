package searchapi

import "fmt"

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search API %d", e.Code)
	}
	return fmt.Sprintf("search API %d: %s", e.Code, e.Body)
}

// DecodeError wraps a malformed response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding search response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }
