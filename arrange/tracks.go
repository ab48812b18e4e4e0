package arrange

import (
	"slices"
	"strings"

	"github.com/vsariola/sceneline"
)

// MIDI channel range of track routings.
const (
	MinChannel = 1
	MaxChannel = 16
)

// AddTrack appends a track with the smallest free track number as its key.
// An empty name defaults to "Track n". It returns the stable identifier of
// the new track.
func AddTrack(doc sceneline.Document, name string) (sceneline.Document, sceneline.ID, error) {
	var ret sceneline.ID
	doc, err := apply(doc, func(d *draft) error {
		used := slices.Concat([]string(d.meta.TrackOrder), d.meta.Mappings.Tracks.Keys())
		key := sceneline.NextTrackKey(used)
		if name = strings.TrimSpace(name); name == "" {
			name = "Track " + key
		}
		ret = d.register(sceneline.KindTrack, key, sceneline.Mapping{Name: name})
		d.meta.TrackOrder = d.meta.TrackOrder.Insert(len(d.meta.TrackOrder), key)
		return nil
	})
	return doc, ret, err
}

// RemoveTrack removes the track, its pattern assignments in every scene, its
// initial mutes and its routing. The patterns themselves stay in the song.
func RemoveTrack(doc sceneline.Document, trackID sceneline.ID) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		key, err := d.trackKey(trackID)
		if err != nil {
			return err
		}
		for name, s := range d.song.Scenes {
			_, assigned := s.Patterns[key]
			if !assigned && !s.Muted(key) {
				continue
			}
			s = s.Unassign(key)
			if s.Muted(key) {
				s.InitialMutes = slices.DeleteFunc(slices.Clone(s.InitialMutes), func(k string) bool { return k == key })
			}
			d.setScene(name, s)
		}
		d.removeRouting(key)
		d.unregister(sceneline.KindTrack, key)
		d.meta.TrackOrder = d.meta.TrackOrder.Remove(key)
		return nil
	})
}

// MoveTrackUp swaps the track with the one before it. The first track stays
// where it is.
func MoveTrackUp(doc sceneline.Document, trackID sceneline.ID) (sceneline.Document, error) {
	return swapTrack(doc, trackID, -1)
}

// MoveTrackDown swaps the track with the one after it. The last track stays
// where it is.
func MoveTrackDown(doc sceneline.Document, trackID sceneline.ID) (sceneline.Document, error) {
	return swapTrack(doc, trackID, 1)
}

func swapTrack(doc sceneline.Document, trackID sceneline.ID, dir int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		key, err := d.trackKey(trackID)
		if err != nil {
			return err
		}
		i := d.meta.TrackOrder.Index(key)
		if i < 0 {
			return notFound("track %q in track order", key)
		}
		d.meta.TrackOrder = d.meta.TrackOrder.Swap(i, i+dir)
		return nil
	})
}

// ReorderTrack moves the track to the index in the track order, clamped to
// the bounds of the order.
func ReorderTrack(doc sceneline.Document, trackID sceneline.ID, index int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		key, err := d.trackKey(trackID)
		if err != nil {
			return err
		}
		if d.meta.TrackOrder.Index(key) < 0 {
			return notFound("track %q in track order", key)
		}
		d.meta.TrackOrder = d.meta.TrackOrder.Move(key, index)
		return nil
	})
}

// RenameTrack sets the display name of the track. The track key does not
// change.
func RenameTrack(doc sceneline.Document, trackID sceneline.ID, name string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if name = strings.TrimSpace(name); name == "" {
			return invalid("empty track name")
		}
		return d.editTrack(trackID, func(m *sceneline.Mapping) { m.Name = name })
	})
}

// RecolorTrack sets the display color of the track.
func RecolorTrack(doc sceneline.Document, trackID sceneline.ID, color string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		return d.editTrack(trackID, func(m *sceneline.Mapping) { m.Color = color })
	})
}

// SetTrackRouting sets where the notes of the track are sent. An empty
// output removes the routing.
func SetTrackRouting(doc sceneline.Document, trackID sceneline.ID, r sceneline.Routing) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		key, err := d.trackKey(trackID)
		if err != nil {
			return err
		}
		if r.Output == "" {
			d.removeRouting(key)
			return nil
		}
		if r.Channel < MinChannel || r.Channel > MaxChannel {
			return invalid("channel %d not in %d..%d", r.Channel, MinChannel, MaxChannel)
		}
		d.setRouting(key, r)
		return nil
	})
}

func (d *draft) editTrack(id sceneline.ID, f func(m *sceneline.Mapping)) error {
	key, err := d.trackKey(id)
	if err != nil {
		return err
	}
	d.meta = d.meta.WithRegistry(sceneline.KindTrack, d.meta.Mappings.Tracks.Update(key, f))
	return nil
}
