package arrange

import (
	"slices"
	"strings"

	"github.com/vsariola/sceneline"
)

type (
	// Lane is a numeric step lane of a bar.
	Lane int

	// Flag is an on/off step lane of a bar.
	Flag int

	// BarParameter is a per-bar playback setting.
	BarParameter int
)

const (
	LaneVelocity Lane = iota
	LaneLength
	LaneDelay
	LaneAuxA
	LaneAuxB
	LaneAuxC
	LaneAuxD
)

const (
	FlagGate Flag = iota
	FlagTie
	FlagSkip
	FlagNoteX
)

const (
	BarTranspose BarParameter = iota
	BarRepeats
	BarGlobal
)

var laneNames = []string{"velo", "length", "delay", "auxA", "auxB", "auxC", "auxD"}

var flagNames = []string{"gate", "tie", "skip", "note_X"}

var barParameterNames = []string{"xpose", "reps", "gbar"}

// Directions lists the play directions a bar can have.
var Directions = []string{"forward", "backward", "pingpong", "random"}

// Timebases lists the step lengths a bar can have, as divisions of a whole
// note. The multiples of 3 are triplets.
var Timebases = []string{"1", "2", "3", "4", "6", "8", "12", "16", "24", "32", "48", "64"}

func (l Lane) String() string {
	if l < 0 || int(l) >= len(laneNames) {
		return "?"
	}
	return laneNames[l]
}

func (f Flag) String() string {
	if f < 0 || int(f) >= len(flagNames) {
		return "?"
	}
	return flagNames[f]
}

func (p BarParameter) String() string {
	if p < 0 || int(p) >= len(barParameterNames) {
		return "?"
	}
	return barParameterNames[p]
}

// ParseLane parses a lane name such as "velo" or "auxB". Case is ignored.
func ParseLane(s string) (Lane, error) {
	i, err := parseName(laneNames, s, "lane")
	return Lane(i), err
}

// ParseFlag parses a flag name such as "gate" or "tie". Case is ignored.
func ParseFlag(s string) (Flag, error) {
	i, err := parseName(flagNames, s, "flag")
	return Flag(i), err
}

// ParseBarParameter parses one of "xpose", "reps" or "gbar".
func ParseBarParameter(s string) (BarParameter, error) {
	i, err := parseName(barParameterNames, s, "bar parameter")
	return BarParameter(i), err
}

func parseName(names []string, s, what string) (int, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return -1, invalid("unknown %s %q", what, s)
}

// Clamp limits the value to the range of the lane: velocity 1..127, length
// 0 or more, delay 0..47 and aux values 0..127.
func (l Lane) Clamp(v int) int {
	switch l {
	case LaneVelocity:
		return min(max(v, sceneline.MinVelocity), sceneline.MaxVelocity)
	case LaneLength:
		return max(v, 0)
	case LaneDelay:
		return min(max(v, 0), sceneline.MaxDelay)
	default:
		return min(max(v, 0), sceneline.MaxAuxValue)
	}
}

// SetStepValue sets a numeric lane of one step. Out of range values are
// clamped, not rejected.
func SetStepValue(doc sceneline.Document, pattern string, bar, step int, lane Lane, value int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if lane < LaneVelocity || lane > LaneAuxD {
			return invalid("unknown lane %d", lane)
		}
		return d.editStep(pattern, bar, step, func(b *sceneline.Bar) {
			v := lane.Clamp(value)
			switch lane {
			case LaneVelocity:
				b.Velo = with(b.Velo, step, v)
			case LaneLength:
				b.Length = with(b.Length, step, v)
			case LaneDelay:
				b.Delay = with(b.Delay, step, v)
			default:
				i := lane - LaneAuxA
				b.Aux[i].Values = with(b.Aux[i].Values, step, v)
			}
		})
	})
}

// SetStepNote sets the note of one step. Any string is accepted.
func SetStepNote(doc sceneline.Document, pattern string, bar, step int, note string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		return d.editStep(pattern, bar, step, func(b *sceneline.Bar) {
			b.Note = with(b.Note, step, note)
		})
	})
}

// ToggleGate flips the gate of one step.
func ToggleGate(doc sceneline.Document, pattern string, bar, step int) (sceneline.Document, error) {
	return ToggleStepFlag(doc, pattern, bar, step, FlagGate)
}

// ToggleStepFlag flips an on/off lane of one step.
func ToggleStepFlag(doc sceneline.Document, pattern string, bar, step int, flag Flag) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if flag < FlagGate || flag > FlagNoteX {
			return invalid("unknown flag %d", flag)
		}
		return d.editStep(pattern, bar, step, func(b *sceneline.Bar) {
			switch flag {
			case FlagGate:
				b.Gate = toggle(b.Gate, step)
			case FlagTie:
				b.Tie = toggle(b.Tie, step)
			case FlagSkip:
				b.Skip = toggle(b.Skip, step)
			case FlagNoteX:
				b.NoteX = toggle(b.NoteX, step)
			}
		})
	})
}

// ToggleAuxFlag flips the flag of an auxiliary lane (0 to 3 for A to D) of
// one step.
func ToggleAuxFlag(doc sceneline.Document, pattern string, bar, step, lane int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if lane < 0 || lane >= sceneline.NumAuxLanes {
			return invalid("aux lane %d not in 0..%d", lane, sceneline.NumAuxLanes-1)
		}
		return d.editStep(pattern, bar, step, func(b *sceneline.Bar) {
			b.Aux[lane].Flags = toggle(b.Aux[lane].Flags, step)
		})
	})
}

// UpdateBarParameter sets a playback setting of a bar. The transpose is
// clamped to -60..60 and the repeat count to 1..99; for the global bar flag
// any nonzero value means on.
func UpdateBarParameter(doc sceneline.Document, pattern string, bar int, param BarParameter, value int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		return d.editBar(pattern, bar, func(b *sceneline.Bar) error {
			switch param {
			case BarTranspose:
				b.Xpos = min(max(value, sceneline.MinXpos), sceneline.MaxXpos)
			case BarRepeats:
				b.Reps = min(max(value, sceneline.MinReps), sceneline.MaxReps)
			case BarGlobal:
				b.GBar = value != 0
			default:
				return invalid("unknown bar parameter %d", param)
			}
			return nil
		})
	})
}

// SetBarDirection sets the play direction of a bar, one of Directions.
func SetBarDirection(doc sceneline.Document, pattern string, bar int, direction string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if !slices.Contains(Directions, direction) {
			return invalid("unknown direction %q", direction)
		}
		return d.editBar(pattern, bar, func(b *sceneline.Bar) error {
			b.Direction = direction
			return nil
		})
	})
}

// SetBarTimebase sets the step length of a bar, one of Timebases.
func SetBarTimebase(doc sceneline.Document, pattern string, bar int, timebase string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if !slices.Contains(Timebases, timebase) {
			return invalid("unknown timebase %q", timebase)
		}
		return d.editBar(pattern, bar, func(b *sceneline.Bar) error {
			b.Timebase = timebase
			return nil
		})
	})
}

// SetBarLastStep changes the number of steps of a bar. Every step array is
// resized with it; steps added at the end get default values.
func SetBarLastStep(doc sceneline.Document, pattern string, bar, steps int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if steps < sceneline.MinLastStep || steps > sceneline.MaxLastStep {
			return invalid("last step %d not in %d..%d", steps, sceneline.MinLastStep, sceneline.MaxLastStep)
		}
		return d.editBar(pattern, bar, func(b *sceneline.Bar) error {
			*b = b.WithLastStep(steps)
			return nil
		})
	})
}

// SetPatternAuxLabel sets the label of an auxiliary lane (0 to 3) of the
// pattern.
func SetPatternAuxLabel(doc sceneline.Document, pattern string, lane int, label string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		p, ok := d.pattern(pattern)
		if !ok {
			return notFound("pattern %q", pattern)
		}
		if lane < 0 || lane >= sceneline.NumAuxLanes {
			return invalid("aux lane %d not in 0..%d", lane, sceneline.NumAuxLanes-1)
		}
		p.Aux[lane] = label
		d.setPattern(pattern, p)
		return nil
	})
}

// editBar replaces bar i of the pattern with a version modified by f. The
// step arrays of the bar are shared with the original document, so f must
// replace any array it changes instead of writing into it.
func (d *draft) editBar(pattern string, i int, f func(b *sceneline.Bar) error) error {
	p, ok := d.pattern(pattern)
	if !ok {
		return notFound("pattern %q", pattern)
	}
	if !p.Editable() {
		return invalid("pattern %q of type %s has no bars", pattern, p.Type)
	}
	b, ok := p.Bar(i)
	if !ok {
		return invalid("bar %d not in 0..%d", i, len(p.Bars)-1)
	}
	if err := f(&b); err != nil {
		return err
	}
	d.setPattern(pattern, p.WithBar(i, b))
	return nil
}

func (d *draft) editStep(pattern string, bar, step int, f func(b *sceneline.Bar)) error {
	return d.editBar(pattern, bar, func(b *sceneline.Bar) error {
		if step < 0 || step >= b.LastStep {
			return invalid("step %d not in 0..%d", step, b.LastStep-1)
		}
		f(b)
		return nil
	})
}

func with[T any](s []T, i int, v T) []T {
	s = slices.Clone(s)
	s[i] = v
	return s
}

func toggle(s []int, i int) []int {
	if s[i] != 0 {
		return with(s, i, 0)
	}
	return with(s, i, 1)
}
