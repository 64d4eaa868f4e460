package jsoncompat

import (
	"errors"
	"fmt"
)

// ErrUnsupportedClaz is matched (errors.Is) by a *ParseError raised for an unregistered json_claz.
var ErrUnsupportedClaz = errors.New("unsupported json_claz")

// ParseError reports malformed JSON, a disallowed top-level value, excessive nesting
// or an object whose json_claz cannot be inflated.
type ParseError struct {
	// Claz is set when the failure concerns a tagged object.
	Claz string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := "json parse error"
	if e.Claz != "" {
		msg += fmt.Sprintf(" (json_claz %q)", e.Claz)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// EncodeError reports a value that could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "json encode error: " + e.Err.Error() }

func (e *EncodeError) Unwrap() error { return e.Err }
