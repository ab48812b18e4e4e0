package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Place and edit patterns on the timeline",
	Long: `Place and edit patterns on the timeline. Positions and lengths are in
beats. Positions of moves and created patterns are snapped down to the grid
(SCENELINE_SNAP_BEATS); a position past the end of the timeline creates a new
scene there.`,
}

var patternListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the placed patterns in timeline order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openModel()
		if err != nil {
			return err
		}
		for _, r := range arrange.PatternRefs(m.Document()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\t%g\t%s\n", r.ID, r.Start, r.Duration, r.Pattern)
		}
		return nil
	},
}

var patternCreateCmd = &cobra.Command{
	Use:   "create TRACK POSITION LENGTH",
	Short: "Create a pattern on a track",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parseFloat("position", args[1])
		if err != nil {
			return err
		}
		length, err := parseFloat("length", args[2])
		if err != nil {
			return err
		}
		var id string
		err = edit("CreatePatternAt", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				var err error
				doc, id, err = m.Timeline().CreatePatternAt(doc, trackRef(doc, args[0]), pos, length)
				return doc, err
			}
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

// timelineCmd is a pattern command taking a composite pattern identifier
// and one number.
func timelineCmd(use, short, kind, arg string, op func(t arrange.Timeline, doc sceneline.Document, id string, v float64) (sceneline.Document, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID " + arg,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloat(arg, args[1])
			if err != nil {
				return err
			}
			return edit(kind, func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return op(m.Timeline(), doc, args[0], v)
				}
			})
		},
	}
}

var (
	patternMoveCmd = timelineCmd("move", "Move a pattern to a position", "MovePattern", "POSITION",
		arrange.Timeline.MovePattern)
	patternResizeCmd = timelineCmd("resize", "Set the length of a pattern", "ResizePattern", "LENGTH",
		arrange.Timeline.ResizePattern)
	patternTrimStartCmd = timelineCmd("trim-start", "Cut beats from the start of a pattern", "TrimStart", "BEATS",
		arrange.Timeline.TrimStart)
	patternTrimEndCmd = timelineCmd("trim-end", "Cut beats from the end of a pattern", "TrimEnd", "BEATS",
		arrange.Timeline.TrimEnd)
	patternSplitCmd = timelineCmd("split", "Split a pattern in two at a position", "SplitPattern", "POSITION",
		func(t arrange.Timeline, doc sceneline.Document, id string, at float64) (sceneline.Document, error) {
			doc, _, err := t.SplitPattern(doc, id, at)
			return doc, err
		})
	patternShiftCmd = &cobra.Command{
		Use:   "shift DELTA ID...",
		Short: "Move several patterns by the same number of beats",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseFloat("delta", args[0])
			if err != nil {
				return err
			}
			return edit("MovePatterns", func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					next, err := m.Timeline().MovePatterns(doc, args[1:], delta)
					return batch(len(args)-1, next, err)
				}
			})
		},
	}
)

var patternDuplicateOffset bool

var patternDuplicateCmd = &cobra.Command{
	Use:   "duplicate ID",
	Short: "Copy a pattern",
	Long: `Copy a pattern. Without --offset the copy is left unplaced; with it, the
copy is placed on the same track right after the original.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ret string
		err := edit("DuplicatePattern", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				var err error
				if patternDuplicateOffset {
					doc, ret, err = m.Timeline().DuplicatePatternWithOffset(doc, args[0])
				} else {
					doc, ret, err = m.Timeline().DuplicatePattern(doc, args[0])
				}
				return doc, err
			}
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ret)
		return nil
	},
}

var patternDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete patterns everywhere they are used",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit("DeletePatterns", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				next, err := arrange.DeletePatterns(doc, args)
				return batch(len(args), next, err)
			}
		})
	},
}

var patternUnlinkCmd = &cobra.Command{
	Use:   "unlink ID...",
	Short: "Remove patterns from their scenes, keeping the pattern data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit("UnlinkPatterns", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				next, err := arrange.UnlinkPatterns(doc, args)
				return batch(len(args), next, err)
			}
		})
	},
}

var patternRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit("RenamePattern", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.RenamePatternByID(doc, args[0], args[1])
			}
		})
	},
}

var patternBarsCmd = &cobra.Command{
	Use:   "bars NAME COUNT",
	Short: "Set the number of bars of a pattern, keeping removed bars for later",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := parseInt("count", args[1])
		if err != nil {
			return err
		}
		return edit("SetBarCount", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SetBarCount(doc, args[0], count)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(patternCmd)
	patternCmd.AddCommand(
		patternListCmd,
		patternCreateCmd,
		patternMoveCmd,
		patternShiftCmd,
		patternResizeCmd,
		patternTrimStartCmd,
		patternTrimEndCmd,
		patternSplitCmd,
		patternDuplicateCmd,
		patternDeleteCmd,
		patternUnlinkCmd,
		patternRenameCmd,
		patternBarsCmd,
	)
	patternDuplicateCmd.Flags().BoolVar(&patternDuplicateOffset, "offset", false, "Place the copy right after the original")
}

// batch turns the partial failures of a batch of n items into log warnings;
// the batch fails only if none of the items could be applied.
func batch(n int, doc sceneline.Document, err error) (sceneline.Document, error) {
	if err == nil {
		return doc, nil
	}
	u, ok := err.(interface{ Unwrap() []error })
	if !ok || len(u.Unwrap()) >= n {
		return doc, err
	}
	for _, e := range u.Unwrap() {
		logger.Warn().Err(e).Msg("item skipped")
	}
	return doc, nil
}
