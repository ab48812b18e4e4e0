package sceneline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

type (
	// Metadata is the identifier-mapping sidecar of a Document. It is not
	// part of the hardware format: it holds the stable identifiers and
	// presentation data of the current song, the explicit order of its scenes
	// and tracks, and the editing history that has to survive saving, such as
	// the bars removed by bar count edits.
	Metadata struct {
		Version         string       `yaml:"version" json:"version"`
		CurrentSongName string       `yaml:"currentSongName" json:"currentSongName"`
		Mappings        Mappings     `yaml:"mappings" json:"mappings"`
		TrackOrder      Order        `yaml:"trackOrder,flow" json:"trackOrder"`
		SceneOrder      Order        `yaml:"sceneOrder,flow" json:"sceneOrder"`
		BarCache        map[ID][]Bar `yaml:"barCache,omitempty" json:"barCache,omitempty"`
		Sequence        int          `yaml:"sequence" json:"sequence"`
	}

	Mappings struct {
		Patterns Registry `yaml:"patterns" json:"patterns"`
		Tracks   Registry `yaml:"tracks" json:"tracks"`
		Scenes   Registry `yaml:"scenes" json:"scenes"`
	}

	// Kind tells which registry an identifier belongs to.
	Kind string
)

const (
	KindPattern Kind = "pattern"
	KindTrack   Kind = "track"
	KindScene   Kind = "scene"
)

// MetadataVersion is written to the sidecar of every new document.
const MetadataVersion = "2"

var idNamespace = uuid.MustParse("6f0c4b8e-7d1a-4c53-9a57-2b1f0e8d3c41")

// NewID allocates a new stable identifier. The identifier is derived from
// the song name, the kind and the sequence counter of the sidecar, so
// allocating identifiers is deterministic: the same metadata always yields
// the same identifier. The returned metadata has the counter advanced.
func (m Metadata) NewID(kind Kind) (ID, Metadata) {
	m.Sequence++
	name := fmt.Sprintf("%s/%s/%d", m.CurrentSongName, kind, m.Sequence)
	return ID(uuid.NewSHA1(idNamespace, []byte(name)).String()), m
}

// Registry returns the registry of the given kind.
func (m Metadata) Registry(kind Kind) Registry {
	switch kind {
	case KindPattern:
		return m.Mappings.Patterns
	case KindTrack:
		return m.Mappings.Tracks
	default:
		return m.Mappings.Scenes
	}
}

// WithRegistry returns a copy of the metadata with the registry of the given
// kind replaced.
func (m Metadata) WithRegistry(kind Kind, r Registry) Metadata {
	switch kind {
	case KindPattern:
		m.Mappings.Patterns = r
	case KindTrack:
		m.Mappings.Tracks = r
	default:
		m.Mappings.Scenes = r
	}
	return m
}

// Copy makes a deep copy of the metadata. Registries are values and need
// not be copied.
func (m Metadata) Copy() Metadata {
	m.TrackOrder = slices.Clone(m.TrackOrder)
	m.SceneOrder = slices.Clone(m.SceneOrder)
	if m.BarCache != nil {
		cache := make(map[ID][]Bar, len(m.BarCache))
		for k, bars := range m.BarCache {
			c := make([]Bar, len(bars))
			for i, b := range bars {
				c[i] = b.Copy()
			}
			cache[k] = c
		}
		m.BarCache = cache
	}
	return m
}

// WithBarCache returns a copy of the metadata where the removed-bar stack of
// the pattern has been replaced. An empty stack removes the entry.
func (m Metadata) WithBarCache(pattern ID, bars []Bar) Metadata {
	cache := maps.Clone(m.BarCache)
	if len(bars) == 0 {
		delete(cache, pattern)
	} else {
		if cache == nil {
			cache = map[ID][]Bar{}
		}
		cache[pattern] = bars
	}
	if len(cache) == 0 {
		cache = nil
	}
	m.BarCache = cache
	return m
}
