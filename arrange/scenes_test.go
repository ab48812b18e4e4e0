package arrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

func TestSceneParameters(t *testing.T) {
	doc := song(t, 16, 16)
	id := sceneID(doc, "A")

	doc, err := arrange.SetSceneAdvance(doc, id, sceneline.AdvanceManual)
	require.NoError(t, err)
	assert.Equal(t, sceneline.AdvanceManual, current(t, doc).Scenes["A"].Advance)
	_, err = arrange.SetSceneAdvance(doc, id, "later")
	assert.ErrorIs(t, err, arrange.ErrInvalid)

	doc, err = arrange.SetSceneLength(doc, id, 2)
	require.NoError(t, err)
	start, _ := arrange.SceneStart(doc, "B")
	assert.Equal(t, 8.0, start)

	doc, err = arrange.SetSceneGBar(doc, id, 12)
	require.NoError(t, err)
	start, _ = arrange.SceneStart(doc, "B")
	assert.Equal(t, 6.0, start)

	for _, v := range []int{0, -1} {
		next, err := arrange.SetSceneLength(doc, id, v)
		assert.ErrorIs(t, err, arrange.ErrInvalid)
		assert.Equal(t, doc, next)
		next, err = arrange.SetSceneGBar(doc, id, v)
		assert.ErrorIs(t, err, arrange.ErrInvalid)
		assert.Equal(t, doc, next)
	}

	_, err = arrange.SetSceneLength(doc, "gone", 4)
	assert.ErrorIs(t, err, arrange.ErrNotFound)
}

func TestSetSceneInitialMutes(t *testing.T) {
	doc := song(t, 16)
	ids := []sceneline.ID{trackID(doc, "3"), "unknown", trackID(doc, "1"), trackID(doc, "3")}
	doc, err := arrange.SetSceneInitialMutes(doc, sceneID(doc, "A"), ids)
	require.NoError(t, err)
	s := current(t, doc).Scenes["A"]
	assert.Equal(t, []string{"1", "3"}, s.InitialMutes)
	assert.True(t, s.Muted("3"))
	assert.False(t, s.Muted("2"))

	doc, err = arrange.SetSceneInitialMutes(doc, sceneID(doc, "A"), nil)
	require.NoError(t, err)
	assert.Empty(t, current(t, doc).Scenes["A"].InitialMutes)
}

func TestSceneByID(t *testing.T) {
	doc := song(t, 16, 8, 4)
	doc, err := arrange.MoveScene(doc, sceneID(doc, "C"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, sceneNames(doc))
	doc, err = arrange.MoveScene(doc, sceneID(doc, "C"), 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, sceneNames(doc))

	doc, err = arrange.RenameSceneByID(doc, sceneID(doc, "B"), "Bridge")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Bridge", "C"}, sceneNames(doc))

	doc, err = arrange.DeleteSceneByID(doc, sceneID(doc, "Bridge"))
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	assert.Equal(t, []string{"A", "C"}, sceneNames(doc))

	_, err = arrange.DeleteSceneByID(doc, "gone")
	assert.ErrorIs(t, err, arrange.ErrNotFound)
}
