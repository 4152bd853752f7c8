package usage

import "fmt"

// NetworkError is a transport-level failure: DNS, TLS, refused connection,
// timeout, or a body that could not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseError means the API answered with a non-success status. Message is
// the raw response body, empty if it could not be read.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API returned error: %d - %s", e.StatusCode, e.Message)
}

// DecodeError means a success response did not match the usage payload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode usage response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
