package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedShape means the decoded payload failed a runtime shape
	// check, e.g. a collection endpoint returned something other than a
	// JSON array.
	ErrUnexpectedShape = errors.New("unexpected payload shape")

	// ErrNetworkOrDecode is the catch-all for transport failures and
	// malformed JSON.
	ErrNetworkOrDecode = errors.New("network or decode error")
)

// RequestError is returned for any non-2xx response. It carries the status
// code and the raw response body text, which is all the backend guarantees
// about its error format.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Body)
}

// Detail extracts the "detail" field the backend uses for structured error
// messages. Falls back to the raw body text when the body is not JSON or
// has no detail field.
func (e *RequestError) Detail() string {
	d := struct {
		Detail string `json:"detail"`
	}{}
	if err := jsonUnmarshal([]byte(e.Body), &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return e.Body
}
