package sceneline

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

type (
	// ID is an opaque, rename-invariant handle of a scene, track or pattern.
	ID string

	// Mapping is the sidecar entry of one scene, track or pattern: its stable
	// identifier plus presentation data that the hardware format has no room
	// for.
	Mapping struct {
		ReactKey  ID     `yaml:"reactKey" json:"reactKey"`
		Name      string `yaml:"name,omitempty" json:"name,omitempty"`
		Color     string `yaml:"color,omitempty" json:"color,omitempty"`
		Height    int    `yaml:"height,omitempty" json:"height,omitempty"`
		Transpose int    `yaml:"transpose,omitempty" json:"transpose,omitempty"`
	}

	// Registry maps native keys to their sidecar Mapping and stable IDs back
	// to native keys. A Registry is a value: all the modifying methods return
	// a new Registry and leave the receiver untouched, so registries can be
	// shared between document snapshots. The zero value is an empty registry.
	//
	// Only the key to mapping direction is serialized; the reverse index is
	// rebuilt when decoding.
	Registry struct {
		byKey map[string]Mapping
		byID  map[ID]string
	}
)

// NewRegistry builds a registry from a key to mapping map. It fails if two
// keys share the same stable ID or if an ID is empty.
func NewRegistry(m map[string]Mapping) (Registry, error) {
	r := Registry{byKey: make(map[string]Mapping, len(m)), byID: make(map[ID]string, len(m))}
	for k, v := range m {
		if v.ReactKey == "" {
			return Registry{}, fmt.Errorf("mapping %q has no reactKey", k)
		}
		if other, ok := r.byID[v.ReactKey]; ok {
			return Registry{}, fmt.Errorf("mappings %q and %q share reactKey %q", other, k, v.ReactKey)
		}
		r.byKey[k] = v
		r.byID[v.ReactKey] = k
	}
	return r, nil
}

// Len returns the number of entries.
func (r Registry) Len() int { return len(r.byKey) }

// Get returns the mapping of a native key.
func (r Registry) Get(key string) (Mapping, bool) {
	m, ok := r.byKey[key]
	return m, ok
}

// ID returns the stable identifier of a native key, or "" if the key has no
// mapping.
func (r Registry) ID(key string) ID {
	return r.byKey[key].ReactKey
}

// Key returns the native key currently bound to the stable identifier.
func (r Registry) Key(id ID) (string, bool) {
	k, ok := r.byID[id]
	return k, ok
}

// Keys returns the native keys in sorted order.
func (r Registry) Keys() []string {
	return slices.Sorted(maps.Keys(r.byKey))
}

// Put returns a registry where key is mapped to m. If the key previously had
// a different identifier, the old identifier is released.
func (r Registry) Put(key string, m Mapping) Registry {
	ret := r.clone()
	if old, ok := ret.byKey[key]; ok {
		delete(ret.byID, old.ReactKey)
	}
	if otherKey, ok := ret.byID[m.ReactKey]; ok && otherKey != key {
		delete(ret.byKey, otherKey)
	}
	ret.byKey[key] = m
	ret.byID[m.ReactKey] = key
	return ret
}

// Update returns a registry where the mapping of an existing key has been
// modified with f. The stable identifier cannot be changed this way. If the
// key does not exist, r is returned unchanged.
func (r Registry) Update(key string, f func(*Mapping)) Registry {
	m, ok := r.byKey[key]
	if !ok {
		return r
	}
	id := m.ReactKey
	f(&m)
	m.ReactKey = id
	ret := r.clone()
	ret.byKey[key] = m
	return ret
}

// Delete returns a registry without the key.
func (r Registry) Delete(key string) Registry {
	m, ok := r.byKey[key]
	if !ok {
		return r
	}
	ret := r.clone()
	delete(ret.byKey, key)
	delete(ret.byID, m.ReactKey)
	return ret
}

// Rename returns a registry where the mapping of oldKey has been moved to
// newKey, keeping its stable identifier. If oldKey does not exist, r is
// returned unchanged.
func (r Registry) Rename(oldKey, newKey string) Registry {
	m, ok := r.byKey[oldKey]
	if !ok || oldKey == newKey {
		return r
	}
	ret := r.clone()
	delete(ret.byKey, oldKey)
	ret.byKey[newKey] = m
	ret.byID[m.ReactKey] = newKey
	return ret
}

// Map returns a copy of the key to mapping direction.
func (r Registry) Map() map[string]Mapping {
	return maps.Clone(r.byKey)
}

func (r Registry) clone() Registry {
	ret := Registry{byKey: maps.Clone(r.byKey), byID: maps.Clone(r.byID)}
	if ret.byKey == nil {
		ret.byKey = map[string]Mapping{}
	}
	if ret.byID == nil {
		ret.byID = map[ID]string{}
	}
	return ret
}

func (r Registry) MarshalYAML() (any, error) {
	if r.byKey == nil {
		return map[string]Mapping{}, nil
	}
	return r.byKey, nil
}

func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]Mapping
	if err := node.Decode(&m); err != nil {
		return err
	}
	reg, err := NewRegistry(m)
	if err != nil {
		return err
	}
	*r = reg
	return nil
}

func (r Registry) MarshalJSON() ([]byte, error) {
	if r.byKey == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.byKey)
}

func (r *Registry) UnmarshalJSON(b []byte) error {
	var m map[string]Mapping
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	reg, err := NewRegistry(m)
	if err != nil {
		return err
	}
	*r = reg
	return nil
}
