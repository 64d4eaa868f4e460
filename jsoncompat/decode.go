// Package jsoncompat converts between JSON bytes and Megam values.
//
// Objects carrying a json_claz tag are inflated into the model registered for
// that tag; untagged objects stay map[string]any and arrays stay []any. Numbers
// decode as json.Number so identifiers and amounts keep their exact text.
package jsoncompat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rajesh-rajagopal/megam-api/models"
)

// MaxNesting is the deepest array/object nesting Decode accepts.
const MaxNesting = 1000

type decodeConfig struct {
	registry   *Registry
	additions  bool
	maxNesting int
}

type DecodeOption func(*decodeConfig)

// WithRegistry decodes against r instead of DefaultRegistry().
func WithRegistry(r *Registry) DecodeOption {
	return func(c *decodeConfig) { c.registry = r }
}

// WithoutAdditions leaves tagged objects as plain maps.
func WithoutAdditions() DecodeOption {
	return func(c *decodeConfig) { c.additions = false }
}

func WithMaxNesting(n int) DecodeOption {
	return func(c *decodeConfig) { c.maxNesting = n }
}

// Decode parses data, which must hold a single JSON object or array, and inflates
// tagged objects bottom-up.
func Decode(data []byte, opts ...DecodeOption) (any, error) {
	cfg := decodeConfig{additions: true, maxNesting: MaxNesting}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	v, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := checkNesting(v, 1, cfg.maxNesting); err != nil {
		return nil, err
	}
	if !cfg.additions {
		return v, nil
	}
	return cfg.inflate(v)
}

func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimRight(data, "\r\n")))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Msg: "unexpected data after top-level value"}
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("top-level JSON value must be an object or array (actual: %s)", kindOf(v))}
	}
}

func checkNesting(v any, depth, max int) error {
	switch t := v.(type) {
	case map[string]any:
		if depth > max {
			return &ParseError{Msg: fmt.Sprintf("nesting of %d is too deep", depth)}
		}
		for _, e := range t {
			if err := checkNesting(e, depth+1, max); err != nil {
				return err
			}
		}
	case []any:
		if depth > max {
			return &ParseError{Msg: fmt.Sprintf("nesting of %d is too deep", depth)}
		}
		for _, e := range t {
			if err := checkNesting(e, depth+1, max); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *decodeConfig) inflate(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			m, err := c.inflate(e)
			if err != nil {
				return nil, err
			}
			t[k] = m
		}
		raw, tagged := t[models.ClazKey]
		if !tagged {
			return t, nil
		}
		claz, _ := raw.(string)
		ctor, ok := c.registry.Lookup(claz)
		if !ok {
			return nil, &ParseError{Claz: claz, Err: ErrUnsupportedClaz}
		}
		m, err := ctor(t)
		if err != nil {
			return nil, &ParseError{Claz: claz, Err: err}
		}
		return m, nil
	case []any:
		for i, e := range t {
			m, err := c.inflate(e)
			if err != nil {
				return nil, err
			}
			t[i] = m
		}
		return t, nil
	default:
		return v, nil
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
