package arrange_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

// song returns a document with four tracks and scenes of the given lengths
// in beats, named A, B, C... in timeline order.
func song(t *testing.T, sceneBeats ...float64) sceneline.Document {
	t.Helper()
	doc := sceneline.NewDocument("song", 4)
	pos := 0.0
	for i, l := range sceneBeats {
		var err error
		doc, err = arrange.CreateScene(doc, string(rune('A'+i)), pos, l)
		require.NoError(t, err)
		pos += l
	}
	require.NoError(t, doc.Validate())
	return doc
}

func trackID(doc sceneline.Document, key string) sceneline.ID {
	return doc.Metadata.Mappings.Tracks.ID(key)
}

func sceneID(doc sceneline.Document, name string) sceneline.ID {
	return doc.Metadata.Mappings.Scenes.ID(name)
}

func current(t *testing.T, doc sceneline.Document) sceneline.Song {
	t.Helper()
	s, ok := doc.Current()
	require.True(t, ok)
	return s
}

// place creates a pattern on the track at the position and returns its
// composite identifier.
func place(t *testing.T, doc sceneline.Document, track string, position, duration float64) (sceneline.Document, string) {
	t.Helper()
	doc, id, err := arrange.DefaultTimeline().CreatePatternAt(doc, trackID(doc, track), position, duration)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	return doc, id
}

func resolve(t *testing.T, doc sceneline.Document, id string) arrange.PatternLocation {
	t.Helper()
	loc, err := arrange.ResolvePattern(doc, id)
	require.NoError(t, err)
	return loc
}

func sceneNames(doc sceneline.Document) []string {
	var ret []string
	for _, b := range arrange.Boundaries(doc) {
		ret = append(ret, b.Scene)
	}
	return ret
}
