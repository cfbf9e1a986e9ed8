package api

import "fmt"

// RequestError reports a request that did not complete with a 2xx status:
// either a transport failure or an HTTP status outside [200,300). No error
// body parsing is attempted.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: request failed with status %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(op string, status int, err error) *RequestError {
	return &RequestError{Op: op, Status: status, Err: err}
}

// DecodeError reports a response body that matched neither accepted shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: could not decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a local payload that could not be prepared for upload.
// It aborts before any request is made.
type EncodeError struct {
	Op  string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: could not encode payload: %v", e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
