// Package models holds the Megam resource types exchanged with the gateway.
//
// Every model serializes as a flat JSON object carrying a json_claz tag such as
// "Megam::Domains". Fields the struct does not name are kept in Extra so that a
// decode followed by an encode does not drop anything the server sent.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ClazKey is the reserved object key naming the model type of a JSON object.
const ClazKey = "json_claz"

// Model is implemented by every type that can be reconstructed from a tagged JSON object.
type Model interface {
	JSONClaz() string
}

// KeyValue is the {"key": ..., "value": ...} pair used for inputs, outputs and envs.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type KeyValueList []KeyValue

// Lookup returns the value stored under key.
func (l KeyValueList) Lookup(key string) (string, bool) {
	for _, kv := range l {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

func decoderConfig(out any) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
}

// Inflate builds a *T from the fields of a decoded JSON object. The json_claz key,
// if still present, is ignored.
func Inflate[T any, PT interface {
	*T
	Model
}](fields map[string]any) (Model, error) {
	var out T
	dec, err := mapstructure.NewDecoder(decoderConfig(&out))
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(withoutClaz(fields)); err != nil {
		return nil, fmt.Errorf("inflate %s: %w", PT(&out).JSONClaz(), err)
	}
	return PT(&out), nil
}

// Fields flattens a model into the object it is serialized as, json_claz included.
func Fields(m Model) (map[string]any, error) {
	out := make(map[string]any)
	dec, err := mapstructure.NewDecoder(decoderConfig(&out))
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("flatten %s: %w", m.JSONClaz(), err)
	}
	// The ",remain" field surfaces under its Go name.
	if extra, ok := out["Extra"].(map[string]any); ok {
		for k, v := range extra {
			if _, taken := out[k]; !taken {
				out[k] = v
			}
		}
	}
	delete(out, "Extra")
	out[ClazKey] = m.JSONClaz()
	return out, nil
}

func marshalModel(m Model) ([]byte, error) {
	fields, err := Fields(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

func withoutClaz(fields map[string]any) map[string]any {
	if _, ok := fields[ClazKey]; !ok {
		return fields
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k != ClazKey {
			out[k] = v
		}
	}
	return out
}
