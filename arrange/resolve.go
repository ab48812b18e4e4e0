package arrange

import (
	"slices"
	"strings"

	"github.com/vsariola/sceneline"
)

type (
	// PatternLocation is where a placed pattern currently lives in the
	// document.
	PatternLocation struct {
		Scene   string
		Track   string
		Pattern string
	}

	// PatternRef describes a placed pattern for renderers: its composite
	// identifier, its location and its extent on the timeline.
	PatternRef struct {
		ID string
		PatternLocation
		Start    float64
		Duration float64
	}
)

// TrackKey returns the track key currently bound to the stable identifier.
func TrackKey(doc sceneline.Document, id sceneline.ID) (string, error) {
	if k, ok := doc.Metadata.Mappings.Tracks.Key(id); ok {
		return k, nil
	}
	return "", notFound("track %q", id)
}

// SceneKey returns the scene name currently bound to the stable identifier.
func SceneKey(doc sceneline.Document, id sceneline.ID) (string, error) {
	if k, ok := doc.Metadata.Mappings.Scenes.Key(id); ok {
		return k, nil
	}
	return "", notFound("scene %q", id)
}

// PatternID returns the composite identifier of a placed pattern:
// {sceneID}-{trackID}-{name with spaces replaced by dashes}. The identifier
// changes whenever the pattern is moved to another scene or track, or
// renamed; it identifies a placement, not a pattern.
func PatternID(meta sceneline.Metadata, loc PatternLocation) string {
	return string(meta.Mappings.Scenes.ID(loc.Scene)) + "-" +
		string(meta.Mappings.Tracks.ID(loc.Track)) + "-" +
		strings.ReplaceAll(loc.Pattern, " ", "-")
}

// ResolvePattern finds the current location of the placed pattern with the
// composite identifier. The composite identifier is recomputed from the
// current assignments every time, so a location resolved before a mutation
// must not be reused after it.
func ResolvePattern(doc sceneline.Document, id string) (PatternLocation, error) {
	d, err := newDraft(doc)
	if err != nil {
		return PatternLocation{}, err
	}
	return d.resolvePattern(id)
}

// PatternRefs lists every placed pattern of the current song in timeline
// order; within a scene, in track order.
func PatternRefs(doc sceneline.Document) []PatternRef {
	d, err := newDraft(doc)
	if err != nil {
		return nil
	}
	var ret []PatternRef
	for _, b := range d.boundaries() {
		for _, loc := range d.placements(b.Scene) {
			p := d.song.Patterns[loc.Pattern]
			ret = append(ret, PatternRef{
				ID:              PatternID(d.meta, loc),
				PatternLocation: loc,
				Start:           b.Start,
				Duration:        p.Duration(),
			})
		}
	}
	return ret
}

func (d *draft) trackKey(id sceneline.ID) (string, error) {
	if k, ok := d.meta.Mappings.Tracks.Key(id); ok {
		return k, nil
	}
	return "", notFound("track %q", id)
}

func (d *draft) sceneKey(id sceneline.ID) (string, error) {
	if k, ok := d.meta.Mappings.Scenes.Key(id); ok {
		return k, nil
	}
	return "", notFound("scene %q", id)
}

func (d *draft) resolvePattern(id string) (PatternLocation, error) {
	for _, b := range d.boundaries() {
		for _, loc := range d.placements(b.Scene) {
			if PatternID(d.meta, loc) == id {
				return loc, nil
			}
		}
	}
	return PatternLocation{}, notFound("pattern %q", id)
}

// placements returns the assignments of a scene, ordered by the track order
// with unknown tracks last.
func (d *draft) placements(scene string) []PatternLocation {
	s := d.song.Scenes[scene]
	ret := make([]PatternLocation, 0, len(s.Patterns))
	for track, pat := range s.Patterns {
		ret = append(ret, PatternLocation{Scene: scene, Track: track, Pattern: pat})
	}
	order := d.meta.TrackOrder
	slices.SortFunc(ret, func(a, b PatternLocation) int {
		ia, ib := order.Index(a.Track), order.Index(b.Track)
		if ia < 0 {
			ia = len(order)
		}
		if ib < 0 {
			ib = len(order)
		}
		if ia != ib {
			return ia - ib
		}
		return strings.Compare(a.Track, b.Track)
	})
	return ret
}
