package sceneline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsariola/sceneline"
)

func TestDefaultBar(t *testing.T) {
	b := sceneline.DefaultBar()
	assert.True(t, b.Consistent())
	assert.Equal(t, sceneline.DefaultSteps, b.LastStep)
	assert.Equal(t, "forward", b.Direction)
	assert.Equal(t, "16", b.Timebase)
	assert.Equal(t, 0, b.Xpos)
	assert.Equal(t, 1, b.Reps)
	assert.False(t, b.GBar)
	for i := range b.LastStep {
		assert.Equal(t, "C4", b.Note[i])
		assert.Equal(t, 100, b.Velo[i])
		assert.Equal(t, 1, b.Length[i])
		assert.Zero(t, b.Delay[i])
		assert.Zero(t, b.Gate[i])
		assert.Zero(t, b.Tie[i])
		assert.Zero(t, b.Skip[i])
		assert.Zero(t, b.NoteX[i])
		for _, l := range b.Aux {
			assert.Zero(t, l.Values[i])
			assert.Zero(t, l.Flags[i])
		}
	}
}

func TestBarWithLastStepNeverShares(t *testing.T) {
	b := sceneline.DefaultBar()
	b.Velo[0] = 7
	grown := b.WithLastStep(20)
	shrunk := b.WithLastStep(4)
	assert.True(t, grown.Consistent())
	assert.True(t, shrunk.Consistent())
	assert.Equal(t, 7, grown.Velo[0])
	assert.Equal(t, 100, grown.Velo[19])
	grown.Velo[0] = 1
	shrunk.Velo[0] = 2
	assert.Equal(t, 7, b.Velo[0])
}

func TestBarConsistent(t *testing.T) {
	b := sceneline.DefaultBar()
	b.Aux[2].Flags = b.Aux[2].Flags[:3]
	assert.False(t, b.Consistent())
	c := sceneline.DefaultBar()
	c.LastStep = 8
	assert.False(t, c.Consistent())
}

func TestBarCopyIsDeep(t *testing.T) {
	b := sceneline.DefaultBar()
	c := b.Copy()
	c.Note[0] = "D#2"
	c.Aux[1].Values[0] = 99
	assert.Equal(t, "C4", b.Note[0])
	assert.Equal(t, 0, b.Aux[1].Values[0])
	assert.Equal(t, sceneline.DefaultBar(), b)
}

func TestPatternDuration(t *testing.T) {
	tests := []struct {
		duration float64
		bars     int
	}{
		{0.5, 1},
		{4, 1},
		{4.01, 2},
		{8, 2},
		{13, 4},
		{64, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.bars, sceneline.BarsFor(tt.duration), "duration %v", tt.duration)
		assert.Equal(t, float64(tt.bars*4), sceneline.NewPattern(tt.bars).Duration())
	}
}

func TestAuxLaneName(t *testing.T) {
	assert.Equal(t, "A", sceneline.AuxLaneName(0))
	assert.Equal(t, "D", sceneline.AuxLaneName(3))
	assert.Equal(t, "?4", sceneline.AuxLaneName(4))
}
