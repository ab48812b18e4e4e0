package arrange

import (
	"maps"

	"github.com/vsariola/sceneline"
)

// draft is a copy-on-write working copy of the current song of a document.
// The maps of the song are cloned the first time they are written to;
// everything else is shared with the document the draft was made from, and
// metadata is only ever replaced, never modified in place. Until done is
// called, the original document is untouched, so an operation that fails
// halfway can just drop the draft.
type draft struct {
	base sceneline.Document
	song sceneline.Song
	meta sceneline.Metadata

	ownPatterns, ownScenes, ownInstruments bool
}

func newDraft(doc sceneline.Document) (*draft, error) {
	song, ok := doc.Current()
	if !ok {
		return nil, notFound("current song %q", doc.Metadata.CurrentSongName)
	}
	return &draft{base: doc, song: song, meta: doc.Metadata}, nil
}

func (d *draft) done() sceneline.Document {
	ret := d.base.WithCurrent(d.song)
	ret.Metadata = d.meta
	return ret
}

// apply runs f on a draft of doc and returns the resulting document, or doc
// itself and the error if f fails.
func apply(doc sceneline.Document, f func(d *draft) error) (sceneline.Document, error) {
	d, err := newDraft(doc)
	if err != nil {
		return doc, err
	}
	if err := f(d); err != nil {
		return doc, err
	}
	return d.done(), nil
}

func (d *draft) scene(name string) (sceneline.Scene, bool) {
	s, ok := d.song.Scenes[name]
	return s, ok
}

func (d *draft) pattern(name string) (sceneline.Pattern, bool) {
	p, ok := d.song.Patterns[name]
	return p, ok
}

func (d *draft) setScene(name string, s sceneline.Scene) {
	if !d.ownScenes {
		d.song.Scenes = cloneMap(d.song.Scenes)
		d.ownScenes = true
	}
	d.song.Scenes[name] = s
}

func (d *draft) removeScene(name string) {
	if !d.ownScenes {
		d.song.Scenes = cloneMap(d.song.Scenes)
		d.ownScenes = true
	}
	delete(d.song.Scenes, name)
}

func (d *draft) setPattern(name string, p sceneline.Pattern) {
	if !d.ownPatterns {
		d.song.Patterns = cloneMap(d.song.Patterns)
		d.ownPatterns = true
	}
	d.song.Patterns[name] = p
}

func (d *draft) removePattern(name string) {
	if !d.ownPatterns {
		d.song.Patterns = cloneMap(d.song.Patterns)
		d.ownPatterns = true
	}
	delete(d.song.Patterns, name)
}

func (d *draft) setRouting(track string, r sceneline.Routing) {
	if !d.ownInstruments {
		d.song.Instruments = cloneMap(d.song.Instruments)
		d.ownInstruments = true
	}
	d.song.Instruments[track] = r
}

func (d *draft) removeRouting(track string) {
	if _, ok := d.song.Instruments[track]; !ok {
		return
	}
	if !d.ownInstruments {
		d.song.Instruments = cloneMap(d.song.Instruments)
		d.ownInstruments = true
	}
	delete(d.song.Instruments, track)
}

// register allocates a stable identifier and maps key to it.
func (d *draft) register(kind sceneline.Kind, key string, m sceneline.Mapping) sceneline.ID {
	var id sceneline.ID
	id, d.meta = d.meta.NewID(kind)
	m.ReactKey = id
	d.meta = d.meta.WithRegistry(kind, d.meta.Registry(kind).Put(key, m))
	return id
}

func (d *draft) unregister(kind sceneline.Kind, key string) {
	d.meta = d.meta.WithRegistry(kind, d.meta.Registry(kind).Delete(key))
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	ret := maps.Clone(m)
	if ret == nil {
		ret = map[K]V{}
	}
	return ret
}
