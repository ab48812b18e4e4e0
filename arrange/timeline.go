package arrange

import (
	"fmt"
	"math"

	"github.com/vsariola/sceneline"
)

// The timeline operations take stable and composite identifiers, resolve
// them against the document they are given and then work on native keys
// through the primitives. Positions are in beats from the start of the
// timeline. A pattern is always placed at the start of the scene it is
// assigned to, so its position is the derived start of that scene.

// CreatePatternAt creates a new pattern of the given duration on the track
// and places it in the scene at the snapped position, creating a scene if
// the position is past the end of the timeline. It returns the composite
// identifier of the new placement.
func (t Timeline) CreatePatternAt(doc sceneline.Document, trackID sceneline.ID, position, duration float64) (sceneline.Document, string, error) {
	var ret string
	doc, err := apply(doc, func(d *draft) error {
		track, err := d.trackKey(trackID)
		if err != nil {
			return err
		}
		scene, err := t.findOrCreateScene(d, t.Snap(position))
		if err != nil {
			return err
		}
		name := d.newPatternName(track)
		if err := d.createPattern(name, duration); err != nil {
			return err
		}
		p, _ := d.pattern(name)
		p.CreatorTrack = track
		d.setPattern(name, p)
		if err := d.assign(scene, track, name); err != nil {
			return err
		}
		ret = PatternID(d.meta, PatternLocation{Scene: scene, Track: track, Pattern: name})
		return nil
	})
	return doc, ret, err
}

// MovePattern moves the placed pattern to the scene at the snapped position,
// keeping its track. If no scene exists there, one is created. Moving a
// pattern into the scene it is already in does nothing; a pattern already
// assigned to the track in the destination scene is replaced. The source
// scene is kept even if it becomes empty.
func (t Timeline) MovePattern(doc sceneline.Document, id string, position float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		return t.move(d, loc, position)
	})
}

// ResizePattern sets the duration of the placed pattern. See
// ResizePatternDuration.
func (t Timeline) ResizePattern(doc sceneline.Document, id string, duration float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		return d.resizePatternDuration(loc.Pattern, duration)
	})
}

// TrimStart removes delta beats from the start of the placed pattern: the
// duration shrinks by delta and the pattern moves forward by delta. A
// negative delta extends the pattern backwards.
func (t Timeline) TrimStart(doc sceneline.Document, id string, delta float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, start, p, err := d.placed(id)
		if err != nil {
			return err
		}
		if err := d.resizePatternDuration(loc.Pattern, p.Duration()-delta); err != nil {
			return err
		}
		return t.move(d, loc, start+delta)
	})
}

// TrimEnd removes delta beats from the end of the placed pattern. A negative
// delta extends it. The position is not changed.
func (t Timeline) TrimEnd(doc sceneline.Document, id string, delta float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, _, p, err := d.placed(id)
		if err != nil {
			return err
		}
		return d.resizePatternDuration(loc.Pattern, p.Duration()-delta)
	})
}

// SplitPattern splits the placed pattern at the position, which must be
// strictly inside the pattern. The original pattern keeps the head; a new
// pattern gets the tail and is placed on the same track in the scene after
// the split point. When the split point is still inside the scene of the
// original, the tail goes to the scene following it, which is created if
// needed. The tail takes the bars of the original from the bar the split
// point falls in onwards, so its content plays on from where the head was
// cut. It returns the name of the new pattern.
func (t Timeline) SplitPattern(doc sceneline.Document, id string, at float64) (sceneline.Document, string, error) {
	var ret string
	doc, err := apply(doc, func(d *draft) error {
		loc, start, p, err := d.placed(id)
		if err != nil {
			return err
		}
		if at <= start || at >= start+p.Duration() {
			return invalid("split point %v outside pattern [%v, %v)", at, start, start+p.Duration())
		}
		first := at - start
		second := p.Duration() - first
		if err := d.resizePatternDuration(loc.Pattern, first); err != nil {
			return err
		}
		tail := splitTail(p, first, second)
		name := d.newPatternName(loc.Track)
		d.setPattern(name, tail)
		d.register(sceneline.KindPattern, name, sceneline.Mapping{})
		scene, err := t.findOrCreateScene(d, d.afterScene(loc.Scene, at))
		if err != nil {
			return err
		}
		ret = name
		return d.assign(scene, loc.Track, name)
	})
	return doc, ret, err
}

// DuplicatePattern copies the placed pattern under a new name generated for
// its track. The copy is not assigned to any scene. It returns the name of
// the copy.
func (t Timeline) DuplicatePattern(doc sceneline.Document, id string) (sceneline.Document, string, error) {
	var ret string
	doc, err := apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		ret = d.duplicate(loc)
		return nil
	})
	return doc, ret, err
}

// DuplicatePatternWithOffset copies the placed pattern and places the copy
// on the same track right after the original, at the original position plus
// its duration. If that is still inside the scene of the original, the copy
// goes to the next scene instead of replacing the original. It returns the
// composite identifier of the copy.
func (t Timeline) DuplicatePatternWithOffset(doc sceneline.Document, id string) (sceneline.Document, string, error) {
	var ret string
	doc, err := apply(doc, func(d *draft) error {
		loc, start, p, err := d.placed(id)
		if err != nil {
			return err
		}
		name := d.duplicate(loc)
		scene, err := t.findOrCreateScene(d, d.afterScene(loc.Scene, start+p.Duration()))
		if err != nil {
			return err
		}
		if err := d.assign(scene, loc.Track, name); err != nil {
			return err
		}
		ret = PatternID(d.meta, PatternLocation{Scene: scene, Track: loc.Track, Pattern: name})
		return nil
	})
	return doc, ret, err
}

// DeletePatternByID deletes the pattern behind the placement from the whole
// song, including all its other placements.
func DeletePatternByID(doc sceneline.Document, id string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		return d.deletePattern(loc.Pattern)
	})
}

// UnlinkPattern removes only the one placement; the pattern and its other
// placements stay.
func UnlinkPattern(doc sceneline.Document, id string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		return d.unassign(loc.Scene, loc.Track)
	})
}

// RenamePatternByID renames the pattern behind the placement.
func RenamePatternByID(doc sceneline.Document, id, newName string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		loc, err := d.resolvePattern(id)
		if err != nil {
			return err
		}
		return d.renamePattern(loc.Pattern, newName)
	})
}

func (t Timeline) move(d *draft, loc PatternLocation, position float64) error {
	target := t.Snap(position)
	if target < 0 {
		return invalid("position %v is before the start of the timeline", position)
	}
	scene, err := t.findOrCreateScene(d, target)
	if err != nil {
		return err
	}
	if scene == loc.Scene {
		return nil
	}
	if err := d.unassign(loc.Scene, loc.Track); err != nil {
		return err
	}
	return d.assign(scene, loc.Track, loc.Pattern)
}

// findOrCreateScene returns the scene containing the position. Past the end
// of the timeline, a new scene of SceneBeats beats is appended; it starts at
// the current end, not at the position.
func (t Timeline) findOrCreateScene(d *draft, position float64) (string, error) {
	if b, ok := d.sceneAt(position); ok {
		return b.Scene, nil
	}
	if position < 0 {
		return "", invalid("position %v is before the start of the timeline", position)
	}
	name := d.newSceneName()
	if err := d.createScene(name, position, t.sceneBeats()); err != nil {
		return "", err
	}
	return name, nil
}

// afterScene returns the position, or the end of the scene if the position
// falls inside it.
func (d *draft) afterScene(scene string, position float64) float64 {
	if b, ok := d.sceneAt(position); ok && b.Scene == scene {
		return b.End
	}
	return position
}

// placed resolves a composite identifier and returns the location, the
// position and the pattern.
func (d *draft) placed(id string) (PatternLocation, float64, sceneline.Pattern, error) {
	loc, err := d.resolvePattern(id)
	if err != nil {
		return loc, 0, sceneline.Pattern{}, err
	}
	start, _ := d.sceneStart(loc.Scene)
	p, _ := d.pattern(loc.Pattern)
	return loc, start, p, nil
}

func (d *draft) duplicate(loc PatternLocation) string {
	p, _ := d.pattern(loc.Pattern)
	name := d.newPatternName(loc.Track)
	c := p.Copy()
	c.Saved = false
	d.setPattern(name, c)
	src, _ := d.meta.Mappings.Patterns.Get(loc.Pattern)
	d.register(sceneline.KindPattern, name, sceneline.Mapping{Color: src.Color})
	return name
}

// splitTail builds the pattern holding the part of p after the first beats.
func splitTail(p sceneline.Pattern, first, second float64) sceneline.Pattern {
	n := sceneline.BarsFor(second)
	tail := sceneline.Pattern{
		Type:         p.Type,
		BarCount:     n,
		Aux:          p.Aux,
		CreatorTrack: p.CreatorTrack,
	}
	if !p.Editable() {
		return tail
	}
	tail.Bars = make([]sceneline.Bar, n)
	from := int(math.Floor(first / sceneline.BeatsPerPatternBar))
	for i := range tail.Bars {
		if b, ok := p.Bar(from + i); ok {
			tail.Bars[i] = b.Copy()
		} else {
			tail.Bars[i] = sceneline.DefaultBar()
		}
	}
	return tail
}

// newPatternName generates the first free name of the form T{n}_P3_{nnn}
// for the track, whatever the type of the pattern. Tracks without a number
// are numbered by their place in the track order, or after the last track if
// they are not in it.
func (d *draft) newPatternName(track string) string {
	n, ok := sceneline.TrackNumber(track)
	if !ok {
		if i := d.meta.TrackOrder.Index(track); i >= 0 {
			n = i + 1
		} else {
			n = len(d.meta.TrackOrder) + 1
		}
	}
	for i := 1; ; i++ {
		name := sceneline.PatternName(n, sceneline.PatternP3, i)
		if _, ok := d.song.Patterns[name]; !ok {
			return name
		}
	}
}

// newSceneName generates the first free name of the form "Scene n".
func (d *draft) newSceneName() string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("Scene %d", i)
		if _, ok := d.song.Scenes[name]; !ok {
			return name
		}
	}
}
