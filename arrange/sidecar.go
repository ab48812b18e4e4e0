package arrange

import (
	"maps"
	"slices"
	"strings"

	"github.com/vsariola/sceneline"
)

// Synthesize builds a document around songs that come without a sidecar,
// such as songs imported from the hardware format. Every scene, track and
// pattern of the current song gets a fresh stable identifier. Scenes are
// ordered by name and tracks by number, as the hardware format keeps no
// order. If current is empty, the first song by name becomes current.
func Synthesize(songs map[string]sceneline.Song, current string) (sceneline.Document, error) {
	if current == "" {
		names := slices.Sorted(maps.Keys(songs))
		if len(names) == 0 {
			return sceneline.Document{}, invalid("no songs")
		}
		current = names[0]
	}
	if _, ok := songs[current]; !ok {
		return sceneline.Document{}, notFound("song %q", current)
	}
	doc := sceneline.Document{
		Songs:    songs,
		Metadata: sceneline.Metadata{Version: sceneline.MetadataVersion, CurrentSongName: current},
	}
	return resync(doc), nil
}

// SelectSong makes another song of the document current. The sidecar only
// describes the current song, so it is rebuilt for the new one; the
// removed-bar history and presentation data of the previous song are
// dropped. The identifier sequence continues from where it was, so the new
// identifiers never collide with the old ones.
func SelectSong(doc sceneline.Document, name string) (sceneline.Document, error) {
	if _, ok := doc.Songs[name]; !ok {
		return doc, notFound("song %q", name)
	}
	if name == doc.Metadata.CurrentSongName {
		return doc, nil
	}
	doc.Metadata = sceneline.Metadata{
		Version:         sceneline.MetadataVersion,
		CurrentSongName: name,
		Sequence:        doc.Metadata.Sequence,
	}
	return resync(doc), nil
}

// resync registers everything in the current song of doc, whose sidecar
// must be empty apart from the song name and sequence.
func resync(doc sceneline.Document) sceneline.Document {
	song := doc.Songs[doc.Metadata.CurrentSongName]
	d := &draft{base: doc, song: song, meta: doc.Metadata}
	for _, name := range slices.Sorted(maps.Keys(song.Scenes)) {
		d.register(sceneline.KindScene, name, sceneline.Mapping{Name: name})
		d.meta.SceneOrder = d.meta.SceneOrder.Insert(len(d.meta.SceneOrder), name)
	}
	for _, key := range songTracks(song) {
		name := key
		if _, ok := sceneline.TrackNumber(key); ok {
			name = "Track " + key
		}
		d.register(sceneline.KindTrack, key, sceneline.Mapping{Name: name})
		d.meta.TrackOrder = d.meta.TrackOrder.Insert(len(d.meta.TrackOrder), key)
	}
	for _, name := range slices.Sorted(maps.Keys(song.Patterns)) {
		d.register(sceneline.KindPattern, name, sceneline.Mapping{})
	}
	return d.done()
}

// songTracks returns every track key the song mentions, numbered tracks
// first in numeric order and then the rest by name.
func songTracks(song sceneline.Song) []string {
	set := map[string]bool{}
	for _, s := range song.Scenes {
		for k := range s.Patterns {
			set[k] = true
		}
		for _, k := range s.InitialMutes {
			set[k] = true
		}
	}
	for k := range song.Instruments {
		set[k] = true
	}
	for _, p := range song.Patterns {
		if p.CreatorTrack != "" {
			set[p.CreatorTrack] = true
		}
	}
	return slices.SortedFunc(maps.Keys(set), compareTracks)
}

func compareTracks(a, b string) int {
	na, oka := sceneline.TrackNumber(a)
	nb, okb := sceneline.TrackNumber(b)
	switch {
	case oka && okb:
		return na - nb
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}
