package sceneline

import (
	"errors"
	"fmt"
)

// Validate checks if the Document looks structurally sound: the current song
// exists, every step array of every bar matches its step count, every scene
// and pattern and track has exactly one sidecar mapping, the order lists
// contain each key exactly once the assignments refer to existing
// patterns and known tracks, and scenes advance in a known way. The editing operations assume a valid document and do not check
// any of this; Validate is meant for whoever loads documents from outside.
func (d Document) Validate() error {
	song, ok := d.Current()
	if !ok {
		return fmt.Errorf("current song %q does not exist", d.Metadata.CurrentSongName)
	}
	var errs []error
	m := d.Metadata
	for name, p := range song.Patterns {
		if !p.Type.Valid() {
			errs = append(errs, fmt.Errorf("pattern %q: unknown type %q", name, p.Type))
		}
		if p.BarCount < 0 {
			errs = append(errs, fmt.Errorf("pattern %q: negative bar count", name))
		}
		if p.Type == PatternP3 && len(p.Bars) != p.BarCount {
			errs = append(errs, fmt.Errorf("pattern %q: %d bars but bar_count is %d", name, len(p.Bars), p.BarCount))
		}
		for i, b := range p.Bars {
			if !b.Consistent() {
				errs = append(errs, fmt.Errorf("pattern %q bar %d: step arrays do not match last_step %d", name, i, b.LastStep))
			}
		}
		if _, ok := m.Mappings.Patterns.Get(name); !ok {
			errs = append(errs, fmt.Errorf("pattern %q has no mapping", name))
		}
	}
	if n := m.Mappings.Patterns.Len(); n != len(song.Patterns) {
		errs = append(errs, fmt.Errorf("%d pattern mappings for %d patterns", n, len(song.Patterns)))
	}
	for name, s := range song.Scenes {
		if s.GBar <= 0 || s.Length <= 0 {
			errs = append(errs, fmt.Errorf("scene %q: gbar and length must be positive", name))
		}
		if !s.Advance.Valid() {
			errs = append(errs, fmt.Errorf("scene %q: unknown advance %q", name, s.Advance))
		}
		for track, pat := range s.Patterns {
			if _, ok := song.Patterns[pat]; !ok {
				errs = append(errs, fmt.Errorf("scene %q track %q: pattern %q does not exist", name, track, pat))
			}
			if _, ok := m.Mappings.Tracks.Get(track); !ok {
				errs = append(errs, fmt.Errorf("scene %q: track %q has no mapping", name, track))
			}
		}
		for _, track := range s.InitialMutes {
			if _, ok := m.Mappings.Tracks.Get(track); !ok {
				errs = append(errs, fmt.Errorf("scene %q: muted track %q has no mapping", name, track))
			}
		}
		if _, ok := m.Mappings.Scenes.Get(name); !ok {
			errs = append(errs, fmt.Errorf("scene %q has no mapping", name))
		}
	}
	if n := m.Mappings.Scenes.Len(); n != len(song.Scenes) {
		errs = append(errs, fmt.Errorf("%d scene mappings for %d scenes", n, len(song.Scenes)))
	}
	errs = append(errs, checkOrder("sceneOrder", m.SceneOrder, func(k string) bool {
		_, ok := song.Scenes[k]
		return ok
	}, len(song.Scenes)))
	errs = append(errs, checkOrder("trackOrder", m.TrackOrder, func(k string) bool {
		_, ok := m.Mappings.Tracks.Get(k)
		return ok
	}, m.Mappings.Tracks.Len()))
	return errors.Join(errs...)
}

func checkOrder(name string, o Order, exists func(string) bool, count int) error {
	seen := make(map[string]bool, len(o))
	for _, k := range o {
		if seen[k] {
			return fmt.Errorf("%s: %q appears more than once", name, k)
		}
		seen[k] = true
		if !exists(k) {
			return fmt.Errorf("%s: %q does not exist", name, k)
		}
	}
	if len(o) != count {
		return fmt.Errorf("%s has %d entries, expected %d", name, len(o), count)
	}
	return nil
}
