package sceneline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline"
	"gopkg.in/yaml.v3"
)

func TestRegistryIsAValue(t *testing.T) {
	var r sceneline.Registry
	a := r.Put("x", sceneline.Mapping{ReactKey: "id-x"})
	b := a.Put("y", sceneline.Mapping{ReactKey: "id-y"})
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())

	c := b.Rename("x", "z")
	key, ok := c.Key("id-x")
	assert.True(t, ok)
	assert.Equal(t, "z", key)
	key, _ = b.Key("id-x")
	assert.Equal(t, "x", key)

	d := c.Delete("z")
	_, ok = d.Key("id-x")
	assert.False(t, ok)
	assert.Equal(t, []string{"y"}, d.Keys())
	assert.Equal(t, []string{"y", "z"}, c.Keys())
}

func TestRegistryUpdateKeepsID(t *testing.T) {
	r := sceneline.Registry{}.Put("k", sceneline.Mapping{ReactKey: "id", Name: "old"})
	r = r.Update("k", func(m *sceneline.Mapping) {
		m.Name = "new"
		m.ReactKey = "hijack"
	})
	m, ok := r.Get("k")
	require.True(t, ok)
	assert.Equal(t, sceneline.Mapping{ReactKey: "id", Name: "new"}, m)
	assert.Equal(t, r, r.Update("missing", func(m *sceneline.Mapping) { m.Name = "x" }))
}

func TestRegistryPutReleasesOldID(t *testing.T) {
	r := sceneline.Registry{}.Put("k", sceneline.Mapping{ReactKey: "a"})
	r = r.Put("k", sceneline.Mapping{ReactKey: "b"})
	_, ok := r.Key("a")
	assert.False(t, ok)
	r = r.Put("other", sceneline.Mapping{ReactKey: "b"})
	_, ok = r.Get("k")
	assert.False(t, ok, "an ID belongs to one key only")
	assert.Equal(t, 1, r.Len())
}

func TestRegistryDecodeRebuildsReverseIndex(t *testing.T) {
	var r sceneline.Registry
	require.NoError(t, yaml.Unmarshal([]byte("a: {reactKey: id-a, name: A}\nb: {reactKey: id-b}\n"), &r))
	key, ok := r.Key("id-b")
	assert.True(t, ok)
	assert.Equal(t, "b", key)

	var j sceneline.Registry
	require.NoError(t, json.Unmarshal([]byte(`{"a":{"reactKey":"id-a","color":"#fff"}}`), &j))
	m, _ := j.Get("a")
	assert.Equal(t, "#fff", m.Color)
	key, _ = j.Key("id-a")
	assert.Equal(t, "a", key)
}

func TestRegistryDecodeRejectsDuplicateIDs(t *testing.T) {
	var r sceneline.Registry
	assert.Error(t, yaml.Unmarshal([]byte("a: {reactKey: same}\nb: {reactKey: same}\n"), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"a":{"reactKey":"same"},"b":{"reactKey":"same"}}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"a":{"name":"no id"}}`), &r))
}
