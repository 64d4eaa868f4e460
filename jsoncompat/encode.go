package jsoncompat

import (
	"bytes"
	"encoding/json"
)

// DefaultIndent is used by EncodePretty when indent is empty.
const DefaultIndent = "  "

// Encode serializes v. Models are written as flat objects carrying their json_claz.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return b, nil
}

// EncodePretty is Encode with indentation and without a trailing newline.
func EncodePretty(v any, indent string) ([]byte, error) {
	if indent == "" {
		indent = DefaultIndent
	}
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return bytes.TrimRight(b, "\n"), nil
}

// Plain decodes the alternate (OTTAI) payloads: JSON objects and arrays are
// returned without type inflation, anything else comes back as the trimmed text.
func Plain(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return Decode(trimmed, WithoutAdditions())
	}
	return string(trimmed), nil
}
