package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflate_KeepsUnknownFieldsInExtra(t *testing.T) {
	m, err := Inflate[Domains](map[string]any{
		ClazKey:      ClazDomains,
		"id":         "DOM123",
		"org_id":     "ORG1",
		"name":       "megambox.com",
		"created_at": "2016-05-05",
		"verified":   true,
	})
	require.NoError(t, err)

	d, ok := m.(*Domains)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, "DOM123", d.ID)
	assert.Equal(t, "megambox.com", d.Name)
	assert.Equal(t, map[string]any{"verified": true}, d.Extra)
}

func TestInflate_WeakNumbers(t *testing.T) {
	m, err := Inflate[Error](map[string]any{"code": float64(404), "msg": "not found"})
	require.NoError(t, err)
	assert.Equal(t, "404", m.(*Error).Code)
}

func TestInflate_KeyValueList(t *testing.T) {
	m, err := Inflate[Assembly](map[string]any{
		"name": "tiny",
		"inputs": []any{
			map[string]any{"key": "domain", "value": "megambox.com"},
			map[string]any{"key": "sshkey", "value": "a@b.com_rsa"},
		},
	})
	require.NoError(t, err)

	v, ok := m.(*Assembly).Inputs.Lookup("sshkey")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com_rsa", v)
	_, ok = m.(*Assembly).Inputs.Lookup("missing")
	assert.False(t, ok)
}

func TestFields_FlattensExtraAndTag(t *testing.T) {
	fields, err := Fields(&Domains{ID: "DOM1", Name: "x.io", Extra: map[string]any{"verified": true}})
	require.NoError(t, err)

	assert.Equal(t, ClazDomains, fields[ClazKey])
	assert.Equal(t, "DOM1", fields["id"])
	assert.Equal(t, true, fields["verified"])
	assert.NotContains(t, fields, "Extra")
}

func TestMarshalJSON_NestedModels(t *testing.T) {
	c := &DomainsCollection{
		Claz:    ClazDomainsCollection,
		Results: []*Domains{{ID: "DOM1", Name: "x.io"}},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, ClazDomainsCollection, out[ClazKey])
	results := out["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, ClazDomains, results[0].(map[string]any)[ClazKey])
}

func TestInflateCollection_RejectsForeignElements(t *testing.T) {
	inflate := InflateCollection[*Domains](ClazDomainsCollection)

	_, err := inflate(map[string]any{"results": []any{map[string]any{"id": "x"}}})
	require.Error(t, err)

	m, err := inflate(map[string]any{"results": []any{&Domains{ID: "x"}}, "code": "200"})
	require.NoError(t, err)
	c := m.(*DomainsCollection)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "200", c.Extra["code"])
}
