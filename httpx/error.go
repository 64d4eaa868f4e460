package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a non-2xx response or a transport failure.
type Error struct {
	Method string
	URL    string

	// StatusCode is 0 when the request failed before a response arrived.
	StatusCode int

	// RequestID is taken from the configured RequestID header.
	RequestID string

	// Header holds the response headers (nil without a response).
	Header http.Header

	// RawBody is a truncated copy of the response body.
	RawBody []byte

	// BodyErr is set when reading the error body failed; RawBody is then partial.
	BodyErr error

	// Cause is the underlying transport error, or the status text.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if m := strings.TrimSpace(e.Method); m != "" {
		b.WriteString(strings.ToUpper(m))
		b.WriteString(" ")
	}
	if u := strings.TrimSpace(e.URL); u != "" {
		b.WriteString(u)
		b.WriteString(": ")
	}
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf("http %d", e.StatusCode))
	} else {
		b.WriteString("request failed")
	}
	if e.RequestID != "" {
		b.WriteString(" request_id=")
		b.WriteString(e.RequestID)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts *Error.
func AsError(err error) (*Error, bool) {
	var he *Error
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

func IsHTTPStatus(err error, code int) bool {
	he, ok := AsError(err)
	return ok && he.StatusCode == code
}
