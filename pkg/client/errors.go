package client

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned for page indices below 1.
var ErrInvalidPage = errors.New("page index must be >= 1")

// UpstreamError describes a failed page fetch.
type UpstreamError struct {
	Page       int
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error (page %d, status %d): %s: %v",
			e.ErrorClass, e.Page, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s error (page %d, status %d): %s",
		e.ErrorClass, e.Page, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ClassOf returns the error class of err, or "" when err is not an UpstreamError.
func ClassOf(err error) ErrorClass {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.ErrorClass
	}
	return ""
}
