package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rajesh-rajagopal/megam-api/models"
)

// ErrAuthKeysMissing is returned by New when neither email+api key nor email+password is configured.
var ErrAuthKeysMissing = errors.New("megam: auth keys missing: email with an api key or password is required")

// Kind classifies a failed API call by HTTP status.
type Kind string

const (
	KindUnauthorized      Kind = "Unauthorized"
	KindForbidden         Kind = "Forbidden"
	KindNotFound          Kind = "NotFound"
	KindTimeout           Kind = "Timeout"
	KindRequestFailed     Kind = "RequestFailed"
	KindLocked            Kind = "Locked"
	KindErrorWithResponse Kind = "ErrorWithResponse"
)

// KindForStatus maps an HTTP status to its error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusRequestTimeout:
		return KindTimeout
	case status == http.StatusUnprocessableEntity:
		return KindRequestFailed
	case status == http.StatusLocked:
		return KindLocked
	case status >= 500 && status < 600:
		return KindRequestFailed
	default:
		return KindErrorWithResponse
	}
}

// Error is a non-2xx answer from the gateway.
type Error struct {
	Kind       Kind
	StatusCode int

	// Body is the decoded error body: usually *models.Error, otherwise the
	// plain JSON value, or the raw text when the body is not JSON.
	Body any
	Raw  []byte

	// Cause is the transport's *httpx.Error.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("megam ")
	b.WriteString(string(e.Kind))
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	} else if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf(": http %d", e.StatusCode))
	}
	if msg := e.Message(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Message extracts the human readable part of the error body.
func (e *Error) Message() string {
	switch body := e.Body.(type) {
	case *models.Error:
		return strings.TrimSpace(body.Msg)
	case map[string]any:
		if msg, ok := body["msg"].(string); ok {
			return strings.TrimSpace(msg)
		}
	case string:
		return strings.TrimSpace(body)
	}
	return ""
}

func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}

func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }
