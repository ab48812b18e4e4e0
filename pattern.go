package sceneline

import (
	"fmt"
	"math"
	"slices"
)

type (
	// Pattern is a reusable block of musical data. P3 patterns are an ordered
	// sequence of bars; CK patterns are opaque references to content that
	// lives elsewhere and carry no editable bars, only a bar count.
	Pattern struct {
		Type         PatternType         `yaml:"type" json:"type"`
		BarCount     int                 `yaml:"bar_count" json:"bar_count"`
		Bars         []Bar               `yaml:"bars,omitempty" json:"bars,omitempty"`
		Aux          [NumAuxLanes]string `yaml:"aux_labels,flow" json:"aux_labels"`
		CreatorTrack string              `yaml:"creator_track,omitempty" json:"creator_track,omitempty"`
		Saved        bool                `yaml:"saved" json:"saved"`
	}

	PatternType string
)

const (
	PatternP3 PatternType = "P3"
	PatternCK PatternType = "CK"
)

// BeatsPerPatternBar is the length of one pattern bar in beats.
const BeatsPerPatternBar = 4

// Editable reports whether the pattern carries bar data.
func (p Pattern) Editable() bool {
	return p.Type == PatternP3
}

// Duration returns the length of the pattern in beats.
func (p Pattern) Duration() float64 {
	return float64(p.BarCount * BeatsPerPatternBar)
}

// BarsFor returns the number of bars needed to hold a pattern of the given
// duration in beats, i.e. ceil(duration/4).
func BarsFor(duration float64) int {
	return int(math.Ceil(duration / BeatsPerPatternBar))
}

// NewPattern returns a P3 pattern with the given number of default bars.
func NewPattern(bars int) Pattern {
	p := Pattern{Type: PatternP3, BarCount: bars, Bars: make([]Bar, bars)}
	for i := range p.Bars {
		p.Bars[i] = DefaultBar()
	}
	return p
}

// Bar returns the bar at index i, or false if i is out of range.
func (p Pattern) Bar(i int) (Bar, bool) {
	if i < 0 || i >= len(p.Bars) {
		return Bar{}, false
	}
	return p.Bars[i], true
}

// WithBar returns a copy of the pattern where bar i has been replaced. The
// bar slice is copied; the other bars are shared.
func (p Pattern) WithBar(i int, b Bar) Pattern {
	p.Bars = slices.Clone(p.Bars)
	p.Bars[i] = b
	return p
}

// Copy makes a deep copy of a Pattern.
func (p Pattern) Copy() Pattern {
	if p.Bars != nil {
		bars := make([]Bar, len(p.Bars))
		for i, b := range p.Bars {
			bars[i] = b.Copy()
		}
		p.Bars = bars
	}
	return p
}

func (t PatternType) Valid() bool {
	return t == PatternP3 || t == PatternCK
}

// AuxLaneName returns the letter of the auxiliary lane, A to D.
func AuxLaneName(lane int) string {
	if lane < 0 || lane >= NumAuxLanes {
		return fmt.Sprintf("?%d", lane)
	}
	return string(rune('A' + lane))
}
