package arrange

import (
	"math"
	"slices"
	"sort"

	"github.com/vsariola/sceneline"
)

type (
	// Boundary is the derived extent of a scene on the timeline, in beats.
	// End is always Start + Length.
	Boundary struct {
		Scene  string
		Start  float64
		End    float64
		Length float64
	}

	// Timeline holds the grid settings of the timeline operations. The zero
	// value uses the defaults.
	Timeline struct {
		// Granularity is the grid, in beats, that target positions of moves
		// are floored to.
		Granularity float64
		// SceneBeats is the length of the scenes created when a pattern is
		// placed past the end of the timeline.
		SceneBeats float64
	}
)

const (
	DefaultSnap       = 16
	DefaultSceneBeats = 16
)

// DefaultTimeline returns a Timeline with the default grid.
func DefaultTimeline() Timeline {
	return Timeline{Granularity: DefaultSnap, SceneBeats: DefaultSceneBeats}
}

func (t Timeline) snap() float64 {
	if t.Granularity <= 0 {
		return DefaultSnap
	}
	return t.Granularity
}

func (t Timeline) sceneBeats() float64 {
	if t.SceneBeats <= 0 {
		return DefaultSceneBeats
	}
	return t.SceneBeats
}

// Snap floors the position to the snap granularity. Snapping is idempotent:
// Snap(Snap(p)) == Snap(p).
func (t Timeline) Snap(position float64) float64 {
	g := t.snap()
	return math.Floor(position/g) * g
}

// Boundaries returns the extents of the scenes of the current song in
// timeline order. Scenes that exist in the song but are missing from the
// scene order are appended at the end, sorted by name; keys in the scene
// order that name no scene are skipped.
func Boundaries(doc sceneline.Document) []Boundary {
	song, _ := doc.Current()
	return boundaries(song, doc.Metadata.SceneOrder)
}

// TotalLength returns the length of the whole timeline in beats.
func TotalLength(doc sceneline.Document) float64 {
	b := Boundaries(doc)
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1].End
}

// SceneAt returns the scene whose extent [Start, End) contains the position.
// It returns false for positions before zero or at or beyond the end of the
// last scene.
func SceneAt(doc sceneline.Document, position float64) (Boundary, bool) {
	return sceneAt(Boundaries(doc), position)
}

// SceneStart returns the derived start position of the named scene.
func SceneStart(doc sceneline.Document, scene string) (float64, bool) {
	for _, b := range Boundaries(doc) {
		if b.Scene == scene {
			return b.Start, true
		}
	}
	return 0, false
}

func boundaries(song sceneline.Song, order sceneline.Order) []Boundary {
	ret := make([]Boundary, 0, len(song.Scenes))
	seen := make(map[string]bool, len(order))
	pos := 0.0
	add := func(name string) {
		s, ok := song.Scenes[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		l := s.Duration()
		ret = append(ret, Boundary{Scene: name, Start: pos, End: pos + l, Length: l})
		pos += l
	}
	for _, name := range order {
		add(name)
	}
	if len(seen) < len(song.Scenes) {
		rest := make([]string, 0, len(song.Scenes)-len(seen))
		for name := range song.Scenes {
			if !seen[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			add(name)
		}
	}
	return ret
}

func sceneAt(bounds []Boundary, position float64) (Boundary, bool) {
	if position < 0 {
		return Boundary{}, false
	}
	i, _ := slices.BinarySearchFunc(bounds, position, func(b Boundary, p float64) int {
		if b.End <= p {
			return -1
		}
		if b.Start > p {
			return 1
		}
		return 0
	})
	if i >= len(bounds) || bounds[i].Start > position || bounds[i].End <= position {
		return Boundary{}, false
	}
	return bounds[i], true
}

func (d *draft) boundaries() []Boundary {
	return boundaries(d.song, d.meta.SceneOrder)
}

func (d *draft) sceneAt(position float64) (Boundary, bool) {
	return sceneAt(d.boundaries(), position)
}

func (d *draft) sceneStart(scene string) (float64, bool) {
	for _, b := range d.boundaries() {
		if b.Scene == scene {
			return b.Start, true
		}
	}
	return 0, false
}
