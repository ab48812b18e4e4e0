package sceneline

import (
	"maps"
	"slices"
)

type (
	// Document is the persisted unit: one or more songs plus the sidecar
	// metadata that keeps the editable timeline view stable across renames.
	// Exactly one of the songs is the current one, named by
	// Metadata.CurrentSongName; the sidecar only describes the current song.
	Document struct {
		Songs    map[string]Song `yaml:"songs" json:"songs"`
		Metadata Metadata        `yaml:"metadata" json:"metadata"`
	}

	// Song is a hardware song: patterns and scenes, both keyed by their
	// native names, and the output routing of each track. None of the maps
	// carry any order; the order of scenes and tracks lives in the sidecar.
	Song struct {
		Patterns    map[string]Pattern `yaml:"patterns" json:"patterns"`
		Scenes      map[string]Scene   `yaml:"scenes" json:"scenes"`
		Instruments map[string]Routing `yaml:"instrument_assignments,omitempty" json:"instrument_assignments,omitempty"`
	}

	// Routing tells where the notes of a track are sent.
	Routing struct {
		Output  string `yaml:"output" json:"output"`
		Channel int    `yaml:"channel" json:"channel"`
	}

	// Scene is a time-bounded container assigning at most one pattern per
	// track. GBar is the global bar length in sixteenth steps (16 for a
	// standard 4/4 bar) and Length is the length of the scene in such bars.
	Scene struct {
		GBar         int               `yaml:"gbar" json:"gbar"`
		Length       int               `yaml:"length" json:"length"`
		Advance      Advance           `yaml:"advance" json:"advance"`
		Patterns     map[string]string `yaml:"pattern_assignments,omitempty" json:"pattern_assignments,omitempty"`
		InitialMutes []string          `yaml:"initial_mutes,omitempty,flow" json:"initial_mutes,omitempty"`
	}

	// Advance tells if the scene moves on to the next one by itself or waits
	// for the player.
	Advance string
)

const (
	AdvanceAuto   Advance = "auto"
	AdvanceManual Advance = "manual"
)

// DefaultGBar is the global bar length of a standard 4/4 bar, in steps.
const DefaultGBar = 16

// StepsPerBeat is the number of sixteenth steps in one quarter note beat.
const StepsPerBeat = 4

// Valid reports whether a is one of the known advance modes.
func (a Advance) Valid() bool {
	return a == AdvanceAuto || a == AdvanceManual
}

// Current returns the current song and true, or an empty song and false if
// the metadata names a song that does not exist.
func (d Document) Current() (Song, bool) {
	s, ok := d.Songs[d.Metadata.CurrentSongName]
	return s, ok
}

// WithCurrent returns a copy of the document where the current song has been
// replaced with s. The songs map is copied; the songs themselves are shared.
func (d Document) WithCurrent(s Song) Document {
	songs := maps.Clone(d.Songs)
	if songs == nil {
		songs = map[string]Song{}
	}
	songs[d.Metadata.CurrentSongName] = s
	d.Songs = songs
	return d
}

// BeatsPerBar returns the number of beats in one bar of the scene.
func (s Scene) BeatsPerBar() float64 {
	return float64(s.GBar) / StepsPerBeat
}

// Duration returns the length of the scene in beats.
func (s Scene) Duration() float64 {
	return float64(s.Length) * s.BeatsPerBar()
}

// Pattern returns the name of the pattern assigned to the track, or "" and
// false if the track has no pattern in this scene.
func (s Scene) Pattern(track string) (string, bool) {
	p, ok := s.Patterns[track]
	return p, ok
}

// Assign returns a copy of the scene with the pattern assigned to the track.
// The assignment map is created if the scene did not have one.
func (s Scene) Assign(track, pattern string) Scene {
	m := maps.Clone(s.Patterns)
	if m == nil {
		m = map[string]string{}
	}
	m[track] = pattern
	s.Patterns = m
	return s
}

// Unassign returns a copy of the scene without any pattern for the track.
func (s Scene) Unassign(track string) Scene {
	if _, ok := s.Patterns[track]; !ok {
		return s
	}
	m := maps.Clone(s.Patterns)
	delete(m, track)
	s.Patterns = m
	return s
}

// Muted reports whether the track starts muted when the scene starts.
func (s Scene) Muted(track string) bool {
	return slices.Contains(s.InitialMutes, track)
}

// Copy makes a deep copy of a Scene.
func (s Scene) Copy() Scene {
	s.Patterns = maps.Clone(s.Patterns)
	s.InitialMutes = slices.Clone(s.InitialMutes)
	return s
}

// Copy makes a deep copy of a Song.
func (s Song) Copy() Song {
	ret := Song{
		Patterns:    make(map[string]Pattern, len(s.Patterns)),
		Scenes:      make(map[string]Scene, len(s.Scenes)),
		Instruments: maps.Clone(s.Instruments),
	}
	for k, p := range s.Patterns {
		ret.Patterns[k] = p.Copy()
	}
	for k, sc := range s.Scenes {
		ret.Scenes[k] = sc.Copy()
	}
	return ret
}

// Copy makes a deep copy of a Document. Mutations in the arrange package
// never need this, as they share structure with their input; it exists for
// collaborators that want to own a snapshot outright.
func (d Document) Copy() Document {
	songs := make(map[string]Song, len(d.Songs))
	for k, s := range d.Songs {
		songs[k] = s.Copy()
	}
	return Document{Songs: songs, Metadata: d.Metadata.Copy()}
}

// ExportSongs returns the hardware-compatible subset of the document: the
// songs tree in native-key form, without stable identifiers or order lists.
func ExportSongs(d Document) map[string]Song {
	return d.Copy().Songs
}

// NewDocument returns a document with a single empty song and the given
// number of tracks, numbered from 1.
func NewDocument(songName string, numTracks int) Document {
	d := Document{
		Songs: map[string]Song{songName: {
			Patterns: map[string]Pattern{},
			Scenes:   map[string]Scene{},
		}},
		Metadata: Metadata{Version: MetadataVersion, CurrentSongName: songName},
	}
	for i := 0; i < numTracks; i++ {
		key := NextTrackKey(d.Metadata.TrackOrder)
		var id ID
		id, d.Metadata = d.Metadata.NewID(KindTrack)
		d.Metadata.Mappings.Tracks = d.Metadata.Mappings.Tracks.Put(key, Mapping{ReactKey: id, Name: "Track " + key})
		d.Metadata.TrackOrder = d.Metadata.TrackOrder.Insert(len(d.Metadata.TrackOrder), key)
	}
	return d
}
