package sceneline

import "slices"

type (
	// Bar is one quantized measure of a P3 pattern. The step data is stored
	// as parallel arrays, one element per step; all arrays have exactly
	// LastStep elements.
	Bar struct {
		Direction string `yaml:"direction" json:"direction"`
		Timebase  string `yaml:"timebase" json:"timebase"`
		LastStep  int    `yaml:"last_step" json:"last_step"`
		Xpos      int    `yaml:"xpos" json:"xpos"`
		Reps      int    `yaml:"reps" json:"reps"`
		GBar      bool   `yaml:"gbar" json:"gbar"`

		Note   []string `yaml:"note,flow" json:"note"`
		Velo   []int    `yaml:"velo,flow" json:"velo"`
		Length []int    `yaml:"length,flow" json:"length"`
		Delay  []int    `yaml:"delay,flow" json:"delay"`
		Gate   []int    `yaml:"gate,flow" json:"gate"`
		Tie    []int    `yaml:"tie,flow" json:"tie"`
		Skip   []int    `yaml:"skip,flow" json:"skip"`
		NoteX  []int    `yaml:"note_X,flow" json:"note_X"`

		Aux [NumAuxLanes]AuxLane `yaml:"aux" json:"aux"`
	}

	// AuxLane is one auxiliary control lane of a bar: a value and a flag for
	// each step.
	AuxLane struct {
		Values []int `yaml:"values,flow" json:"values"`
		Flags  []int `yaml:"flags,flow" json:"flags"`
	}
)

// NumAuxLanes is the number of auxiliary control lanes (A to D) in a bar.
const NumAuxLanes = 4

// Step value ranges enforced by the editing operations.
const (
	DefaultSteps = 16

	MinVelocity = 1
	MaxVelocity = 127
	MaxDelay    = 47
	MaxAuxValue = 127

	MinXpos = -60
	MaxXpos = 60
	MinReps = 1
	MaxReps = 99

	MinLastStep = 1
	MaxLastStep = 64
)

const (
	defaultDirection = "forward"
	defaultTimebase  = "16"
	defaultNote      = "C4"
	defaultVelocity  = 100
	defaultLength    = 1
)

// DefaultBar returns a new bar with DefaultSteps steps, neutral note data,
// every flag off and the neutral transpose, repeat and global bar values.
func DefaultBar() Bar {
	return NewBar(DefaultSteps)
}

// NewBar returns a default bar with the given number of steps.
func NewBar(steps int) Bar {
	b := Bar{
		Direction: defaultDirection,
		Timebase:  defaultTimebase,
		Reps:      1,
	}
	return b.WithLastStep(steps)
}

// WithLastStep returns a copy of the bar with the step count changed.
// Shrinking truncates every array; growing appends default steps. The
// arrays of the returned bar are never shared with b.
func (b Bar) WithLastStep(steps int) Bar {
	steps = max(steps, 0)
	b.LastStep = steps
	b.Note = resize(b.Note, steps, defaultNote)
	b.Velo = resize(b.Velo, steps, defaultVelocity)
	b.Length = resize(b.Length, steps, defaultLength)
	b.Delay = resize(b.Delay, steps, 0)
	b.Gate = resize(b.Gate, steps, 0)
	b.Tie = resize(b.Tie, steps, 0)
	b.Skip = resize(b.Skip, steps, 0)
	b.NoteX = resize(b.NoteX, steps, 0)
	for i := range b.Aux {
		b.Aux[i].Values = resize(b.Aux[i].Values, steps, 0)
		b.Aux[i].Flags = resize(b.Aux[i].Flags, steps, 0)
	}
	return b
}

// Copy makes a deep copy of a Bar.
func (b Bar) Copy() Bar {
	b.Note = slices.Clone(b.Note)
	b.Velo = slices.Clone(b.Velo)
	b.Length = slices.Clone(b.Length)
	b.Delay = slices.Clone(b.Delay)
	b.Gate = slices.Clone(b.Gate)
	b.Tie = slices.Clone(b.Tie)
	b.Skip = slices.Clone(b.Skip)
	b.NoteX = slices.Clone(b.NoteX)
	for i := range b.Aux {
		b.Aux[i].Values = slices.Clone(b.Aux[i].Values)
		b.Aux[i].Flags = slices.Clone(b.Aux[i].Flags)
	}
	return b
}

// Consistent reports whether every step array of the bar has exactly
// LastStep elements.
func (b Bar) Consistent() bool {
	n := b.LastStep
	if len(b.Note) != n || len(b.Velo) != n || len(b.Length) != n || len(b.Delay) != n ||
		len(b.Gate) != n || len(b.Tie) != n || len(b.Skip) != n || len(b.NoteX) != n {
		return false
	}
	for _, l := range b.Aux {
		if len(l.Values) != n || len(l.Flags) != n {
			return false
		}
	}
	return true
}

// resize returns a new slice of length n, keeping the head of s and filling
// the rest with fill.
func resize[T any](s []T, n int, fill T) []T {
	ret := make([]T, n)
	c := copy(ret, s)
	for i := c; i < n; i++ {
		ret[i] = fill
	}
	return ret
}
