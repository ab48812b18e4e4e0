package arrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

func TestAddTrack(t *testing.T) {
	doc := song(t, 16)
	doc, id, err := arrange.AddTrack(doc, "")
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	key, err := arrange.TrackKey(doc, id)
	require.NoError(t, err)
	assert.Equal(t, "5", key)
	m, _ := doc.Metadata.Mappings.Tracks.Get("5")
	assert.Equal(t, "Track 5", m.Name)
	assert.Equal(t, sceneline.Order{"1", "2", "3", "4", "5"}, doc.Metadata.TrackOrder)

	doc, err = arrange.RemoveTrack(doc, trackID(doc, "2"))
	require.NoError(t, err)
	doc, _, err = arrange.AddTrack(doc, "Drums")
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"1", "3", "4", "5", "2"}, doc.Metadata.TrackOrder)
	m, _ = doc.Metadata.Mappings.Tracks.Get("2")
	assert.Equal(t, "Drums", m.Name)
}

func TestRemoveTrackPurgesEverything(t *testing.T) {
	doc := song(t, 16, 16)
	doc, _ = place(t, doc, "2", 0, 8)
	doc, _ = place(t, doc, "1", 16, 8)
	doc, err := arrange.Assign(doc, "B", "2", "T2_P3_001")
	require.NoError(t, err)
	id := trackID(doc, "2")
	doc, err = arrange.SetSceneInitialMutes(doc, sceneID(doc, "A"), []sceneline.ID{id, trackID(doc, "4")})
	require.NoError(t, err)
	doc, err = arrange.SetTrackRouting(doc, id, sceneline.Routing{Output: "usb", Channel: 2})
	require.NoError(t, err)

	doc, err = arrange.RemoveTrack(doc, id)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	s := current(t, doc)
	assert.NotContains(t, s.Scenes["A"].Patterns, "2")
	assert.NotContains(t, s.Scenes["B"].Patterns, "2")
	assert.Equal(t, "T1_P3_001", s.Scenes["B"].Patterns["1"])
	assert.Equal(t, []string{"4"}, s.Scenes["A"].InitialMutes)
	assert.NotContains(t, s.Instruments, "2")
	assert.Contains(t, s.Patterns, "T2_P3_001", "patterns stay")
	assert.Equal(t, sceneline.Order{"1", "3", "4"}, doc.Metadata.TrackOrder)
	_, err = arrange.TrackKey(doc, id)
	assert.ErrorIs(t, err, arrange.ErrNotFound)
}

func TestTrackOrderEdits(t *testing.T) {
	doc := song(t)
	doc, err := arrange.MoveTrackUp(doc, trackID(doc, "1"))
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"1", "2", "3", "4"}, doc.Metadata.TrackOrder)

	doc, err = arrange.MoveTrackDown(doc, trackID(doc, "1"))
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"2", "1", "3", "4"}, doc.Metadata.TrackOrder)

	doc, err = arrange.MoveTrackDown(doc, trackID(doc, "4"))
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"2", "1", "3", "4"}, doc.Metadata.TrackOrder)

	doc, err = arrange.MoveTrackUp(doc, trackID(doc, "3"))
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"2", "3", "1", "4"}, doc.Metadata.TrackOrder)

	doc, err = arrange.ReorderTrack(doc, trackID(doc, "2"), 100)
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"3", "1", "4", "2"}, doc.Metadata.TrackOrder)

	doc, err = arrange.ReorderTrack(doc, trackID(doc, "4"), -3)
	require.NoError(t, err)
	assert.Equal(t, sceneline.Order{"4", "3", "1", "2"}, doc.Metadata.TrackOrder)
	assert.NoError(t, doc.Validate())
}

func TestTrackPresentation(t *testing.T) {
	doc := song(t)
	id := trackID(doc, "3")
	doc, err := arrange.RenameTrack(doc, id, "Bass")
	require.NoError(t, err)
	doc, err = arrange.RecolorTrack(doc, id, "#ff8800")
	require.NoError(t, err)
	m, _ := doc.Metadata.Mappings.Tracks.Get("3")
	assert.Equal(t, sceneline.Mapping{ReactKey: id, Name: "Bass", Color: "#ff8800"}, m)

	next, err := arrange.RenameTrack(doc, id, "  ")
	assert.ErrorIs(t, err, arrange.ErrInvalid)
	assert.Equal(t, doc, next)
	_, err = arrange.RecolorTrack(doc, "gone", "#000000")
	assert.ErrorIs(t, err, arrange.ErrNotFound)
}

func TestSetTrackRouting(t *testing.T) {
	doc := song(t)
	id := trackID(doc, "1")
	doc, err := arrange.SetTrackRouting(doc, id, sceneline.Routing{Output: "din", Channel: 10})
	require.NoError(t, err)
	assert.Equal(t, sceneline.Routing{Output: "din", Channel: 10}, current(t, doc).Instruments["1"])

	for _, ch := range []int{0, 17} {
		_, err = arrange.SetTrackRouting(doc, id, sceneline.Routing{Output: "din", Channel: ch})
		assert.ErrorIs(t, err, arrange.ErrInvalid)
	}

	doc, err = arrange.SetTrackRouting(doc, id, sceneline.Routing{})
	require.NoError(t, err)
	assert.NotContains(t, current(t, doc).Instruments, "1")
}
