package arrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline/arrange"
)

func TestMovePatternsReusesSceneCreatedByEarlierItem(t *testing.T) {
	doc := song(t, 16)
	doc, id1 := place(t, doc, "1", 0, 8)
	doc, id2 := place(t, doc, "2", 0, 8)

	doc, err := arrange.DefaultTimeline().MovePatterns(doc, []string{id1, id2}, 16)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	assert.Equal(t, []string{"A", "Scene 1"}, sceneNames(doc))
	assert.Equal(t, map[string]string{"1": "T1_P3_001", "2": "T2_P3_001"}, current(t, doc).Scenes["Scene 1"].Patterns)
	assert.Empty(t, current(t, doc).Scenes["A"].Patterns)
}

func TestMovePatternsSkipsFailures(t *testing.T) {
	doc := song(t, 16, 16)
	doc, id1 := place(t, doc, "1", 0, 8)
	doc, id2 := place(t, doc, "2", 0, 8)

	doc, err := arrange.DefaultTimeline().MovePatterns(doc, []string{id1, "stale", id2}, 16)
	assert.ErrorIs(t, err, arrange.ErrNotFound)
	assert.ErrorContains(t, err, "stale")
	assert.Equal(t, map[string]string{"1": "T1_P3_001", "2": "T2_P3_001"}, current(t, doc).Scenes["B"].Patterns)
}

func TestMovePatternsIsSequential(t *testing.T) {
	doc := song(t, 16, 16)
	doc, id := place(t, doc, "1", 0, 8)
	// the second item refers to the placement as it was before the first
	// item moved it, so it no longer resolves
	doc, err := arrange.DefaultTimeline().MovePatterns(doc, []string{id, id}, 16)
	assert.ErrorIs(t, err, arrange.ErrNotFound)
	assert.Equal(t, "T1_P3_001", current(t, doc).Scenes["B"].Patterns["1"])
}

func TestDeleteAndUnlinkPatterns(t *testing.T) {
	doc := song(t, 16, 16)
	doc, id1 := place(t, doc, "1", 0, 8)
	doc, id2 := place(t, doc, "2", 16, 8)
	doc, id3 := place(t, doc, "3", 16, 8)

	deleted, err := arrange.DeletePatterns(doc, []string{id1, id3})
	require.NoError(t, err)
	require.NoError(t, deleted.Validate())
	assert.Equal(t, []string{"T2_P3_001"}, deleted.Metadata.Mappings.Patterns.Keys())

	unlinked, err := arrange.UnlinkPatterns(doc, []string{id2, id3, id3})
	assert.ErrorIs(t, err, arrange.ErrNotFound)
	require.NoError(t, unlinked.Validate())
	assert.Len(t, current(t, unlinked).Patterns, 3)
	assert.Empty(t, current(t, unlinked).Scenes["B"].Patterns)
	assert.Equal(t, "T1_P3_001", current(t, unlinked).Scenes["A"].Patterns["1"])
}
