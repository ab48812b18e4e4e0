package main

import (
	"github.com/spf13/cobra"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Edit the steps and bars of a pattern",
	Long: `Edit the steps and bars of a pattern. Patterns are named by their native
name; bars and steps count from 0. Values out of range are clamped.`,
}

// stepArgs parses the PATTERN BAR STEP prefix shared by the step commands.
func stepArgs(args []string) (bar, step int, err error) {
	if bar, err = parseInt("bar", args[1]); err != nil {
		return
	}
	step, err = parseInt("step", args[2])
	return
}

var stepSetCmd = &cobra.Command{
	Use:   "set PATTERN BAR STEP LANE VALUE",
	Short: "Set a numeric step value (velo, length, delay, auxA..auxD)",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, step, err := stepArgs(args)
		if err != nil {
			return err
		}
		lane, err := arrange.ParseLane(args[3])
		if err != nil {
			return err
		}
		value, err := parseInt("value", args[4])
		if err != nil {
			return err
		}
		return edit("SetStepValue", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetStepValue(doc, args[0], bar, step, lane, value)
			}
		})
	},
}

var stepNoteCmd = &cobra.Command{
	Use:   "note PATTERN BAR STEP NOTE",
	Short: "Set the note of a step",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, step, err := stepArgs(args)
		if err != nil {
			return err
		}
		return edit("SetStepNote", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetStepNote(doc, args[0], bar, step, args[3])
			}
		})
	},
}

var stepGateCmd = &cobra.Command{
	Use:   "gate PATTERN BAR STEP",
	Short: "Toggle the gate of a step",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, step, err := stepArgs(args)
		if err != nil {
			return err
		}
		return edit("ToggleGate", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.ToggleGate(doc, args[0], bar, step)
			}
		})
	},
}

var stepFlagCmd = &cobra.Command{
	Use:   "flag PATTERN BAR STEP FLAG",
	Short: "Toggle a step flag (gate, tie, skip, note_X) or an aux flag (auxA..auxD)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, step, err := stepArgs(args)
		if err != nil {
			return err
		}
		if lane, err := arrange.ParseLane(args[3]); err == nil && lane >= arrange.LaneAuxA {
			return edit("ToggleAuxFlag", func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return arrange.ToggleAuxFlag(doc, args[0], bar, step, int(lane-arrange.LaneAuxA))
				}
			})
		}
		flag, err := arrange.ParseFlag(args[3])
		if err != nil {
			return err
		}
		return edit("ToggleStepFlag", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.ToggleStepFlag(doc, args[0], bar, step, flag)
			}
		})
	},
}

var barCmd = &cobra.Command{
	Use:   "bar PATTERN BAR PARAMETER VALUE",
	Short: "Set a bar parameter (xpose, reps, gbar, direction, timebase, steps)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		bar, err := parseInt("bar", args[1])
		if err != nil {
			return err
		}
		pattern, value := args[0], args[3]
		var f editor.Mutation
		switch args[2] {
		case "direction":
			f = func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetBarDirection(doc, pattern, bar, value)
			}
		case "timebase":
			f = func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetBarTimebase(doc, pattern, bar, value)
			}
		case "steps":
			n, err := parseInt("steps", value)
			if err != nil {
				return err
			}
			f = func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetBarLastStep(doc, pattern, bar, n)
			}
		default:
			param, err := arrange.ParseBarParameter(args[2])
			if err != nil {
				return err
			}
			n, err := parseInt(param.String(), value)
			if err != nil {
				return err
			}
			f = func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.UpdateBarParameter(doc, pattern, bar, param, n)
			}
		}
		return edit("EditBar", func(*editor.Model) editor.Mutation { return f })
	},
}

var auxLabelCmd = &cobra.Command{
	Use:   "aux-label PATTERN LANE LABEL",
	Short: "Name one of the aux lanes (0..3) of a pattern",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lane, err := parseInt("lane", args[1])
		if err != nil {
			return err
		}
		return edit("SetPatternAuxLabel", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetPatternAuxLabel(doc, args[0], lane, args[2])
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.AddCommand(stepSetCmd, stepNoteCmd, stepGateCmd, stepFlagCmd, barCmd, auxLabelCmd)
}
