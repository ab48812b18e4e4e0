package arrange

import (
	"math"
	"slices"
	"strings"

	"github.com/vsariola/sceneline"
)

// The primitives below are the only places that add or remove entries of
// the song maps; each keeps the sidecar in step with the song: mappings are
// created, renamed and deleted together with their entities, and so are
// the entries of the order lists.

// CreateScene adds a scene named name, long enough to hold duration beats
// in bars of 16 steps. The scene is inserted in the scene order just before
// the first scene that starts after position, or at the end if there is
// none.
func CreateScene(doc sceneline.Document, name string, position, duration float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.createScene(name, position, duration) })
}

// DeleteScene removes the scene. Patterns assigned in the scene are left in
// the song, unassigned.
func DeleteScene(doc sceneline.Document, name string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.deleteScene(name) })
}

// CreatePattern adds a P3 pattern with ceil(duration/4) default bars. The
// pattern is not assigned anywhere.
func CreatePattern(doc sceneline.Document, name string, duration float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.createPattern(name, duration) })
}

// DeletePattern removes the pattern, every assignment of it in every scene
// and its removed-bar history.
func DeletePattern(doc sceneline.Document, name string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.deletePattern(name) })
}

// Assign assigns the pattern to the track in the scene, replacing whatever
// the track had there before.
func Assign(doc sceneline.Document, scene, track, pattern string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.assign(scene, track, pattern) })
}

// Unassign clears the pattern of the track in the scene.
func Unassign(doc sceneline.Document, scene, track string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.unassign(scene, track) })
}

// RenamePattern renames a pattern and every assignment referring to it. It
// fails if newName is already taken.
func RenamePattern(doc sceneline.Document, oldName, newName string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.renamePattern(oldName, newName) })
}

// RenameScene renames a scene, keeping its place in the scene order and its
// stable identifier. It fails if newName is already taken.
func RenameScene(doc sceneline.Document, oldName, newName string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.renameScene(oldName, newName) })
}

// ResizePatternDuration sets the bar count of the pattern to
// ceil(duration/4). A P3 pattern grows by repeating its last bar and shrinks
// by dropping bars from the end. Unlike SetBarCount, this does not use or
// update the removed-bar history of the pattern.
func ResizePatternDuration(doc sceneline.Document, name string, duration float64) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.resizePatternDuration(name, duration) })
}

func (d *draft) createScene(name string, position, duration float64) error {
	if name = strings.TrimSpace(name); name == "" {
		return invalid("empty scene name")
	}
	if _, ok := d.song.Scenes[name]; ok {
		return invalid("scene %q already exists", name)
	}
	if !(duration > 0) {
		return invalid("scene duration %v", duration)
	}
	s := sceneline.Scene{GBar: sceneline.DefaultGBar, Advance: sceneline.AdvanceAuto}
	s.Length = max(int(math.Ceil(duration/s.BeatsPerBar())), 1)
	index := len(d.meta.SceneOrder)
	for _, b := range d.boundaries() {
		if b.Start > position {
			if i := d.meta.SceneOrder.Index(b.Scene); i >= 0 {
				index = i
				break
			}
		}
	}
	d.setScene(name, s)
	d.meta.SceneOrder = d.meta.SceneOrder.Insert(index, name)
	d.register(sceneline.KindScene, name, sceneline.Mapping{Name: name})
	return nil
}

func (d *draft) deleteScene(name string) error {
	if _, ok := d.song.Scenes[name]; !ok {
		return notFound("scene %q", name)
	}
	d.removeScene(name)
	d.meta.SceneOrder = d.meta.SceneOrder.Remove(name)
	d.unregister(sceneline.KindScene, name)
	return nil
}

func (d *draft) createPattern(name string, duration float64) error {
	if name = strings.TrimSpace(name); name == "" {
		return invalid("empty pattern name")
	}
	if _, ok := d.song.Patterns[name]; ok {
		return invalid("pattern %q already exists", name)
	}
	if !(duration > 0) {
		return invalid("pattern duration %v", duration)
	}
	d.setPattern(name, sceneline.NewPattern(sceneline.BarsFor(duration)))
	d.register(sceneline.KindPattern, name, sceneline.Mapping{})
	return nil
}

func (d *draft) deletePattern(name string) error {
	if _, ok := d.song.Patterns[name]; !ok {
		return notFound("pattern %q", name)
	}
	for sceneName, s := range d.song.Scenes {
		changed := s
		for track, pat := range s.Patterns {
			if pat == name {
				changed = changed.Unassign(track)
			}
		}
		if len(changed.Patterns) != len(s.Patterns) {
			d.setScene(sceneName, changed)
		}
	}
	d.meta = d.meta.WithBarCache(d.meta.Mappings.Patterns.ID(name), nil)
	d.removePattern(name)
	d.unregister(sceneline.KindPattern, name)
	return nil
}

func (d *draft) assign(scene, track, pattern string) error {
	s, ok := d.song.Scenes[scene]
	if !ok {
		return notFound("scene %q", scene)
	}
	if _, ok := d.song.Patterns[pattern]; !ok {
		return notFound("pattern %q", pattern)
	}
	d.setScene(scene, s.Assign(track, pattern))
	return nil
}

func (d *draft) unassign(scene, track string) error {
	s, ok := d.song.Scenes[scene]
	if !ok {
		return notFound("scene %q", scene)
	}
	if _, ok := s.Patterns[track]; !ok {
		return notFound("no pattern on track %q in scene %q", track, scene)
	}
	d.setScene(scene, s.Unassign(track))
	return nil
}

func (d *draft) renamePattern(oldName, newName string) error {
	p, ok := d.song.Patterns[oldName]
	if !ok {
		return notFound("pattern %q", oldName)
	}
	if newName = strings.TrimSpace(newName); newName == "" {
		return invalid("empty pattern name")
	}
	if _, ok := d.song.Patterns[newName]; ok {
		return invalid("pattern %q already exists", newName)
	}
	d.removePattern(oldName)
	d.setPattern(newName, p)
	for sceneName, s := range d.song.Scenes {
		changed, hit := s, false
		for track, pat := range s.Patterns {
			if pat == oldName {
				changed, hit = changed.Assign(track, newName), true
			}
		}
		if hit {
			d.setScene(sceneName, changed)
		}
	}
	d.meta = d.meta.WithRegistry(sceneline.KindPattern, d.meta.Mappings.Patterns.Rename(oldName, newName))
	return nil
}

func (d *draft) renameScene(oldName, newName string) error {
	s, ok := d.song.Scenes[oldName]
	if !ok {
		return notFound("scene %q", oldName)
	}
	if newName = strings.TrimSpace(newName); newName == "" {
		return invalid("empty scene name")
	}
	if _, ok := d.song.Scenes[newName]; ok {
		return invalid("scene %q already exists", newName)
	}
	d.removeScene(oldName)
	d.setScene(newName, s)
	d.meta.SceneOrder = d.meta.SceneOrder.Replace(oldName, newName)
	d.meta = d.meta.WithRegistry(sceneline.KindScene, d.meta.Mappings.Scenes.Rename(oldName, newName).
		Update(newName, func(m *sceneline.Mapping) { m.Name = newName }))
	return nil
}

func (d *draft) resizePatternDuration(name string, duration float64) error {
	p, ok := d.song.Patterns[name]
	if !ok {
		return notFound("pattern %q", name)
	}
	if !(duration > 0) {
		return invalid("pattern duration %v", duration)
	}
	n := sceneline.BarsFor(duration)
	p.BarCount = n
	if p.Editable() {
		bars := slices.Clone(p.Bars[:min(n, len(p.Bars))])
		for len(bars) < n {
			if len(bars) == 0 {
				bars = append(bars, sceneline.DefaultBar())
				continue
			}
			bars = append(bars, bars[len(bars)-1].Copy())
		}
		p.Bars = bars
	}
	d.setPattern(name, p)
	return nil
}
