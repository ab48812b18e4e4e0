package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Edit tracks",
}

var trackAddCmd = &cobra.Command{
	Use:   "add [NAME]",
	Short: "Add a track at the end of the track order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		var id sceneline.ID
		err := edit("AddTrack", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				var err error
				doc, id, err = arrange.AddTrack(doc, name)
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

// trackEdit is a track command taking a track and nargs-1 more arguments.
func trackEdit(use, short, kind string, nargs int, op func(doc sceneline.Document, id sceneline.ID, args []string) (sceneline.Document, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(kind, func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return op(doc, trackRef(doc, args[0]), args[1:])
				}
			})
		},
	}
}

var (
	trackRemoveCmd = trackEdit("remove TRACK", "Remove a track and its assignments", "RemoveTrack", 1,
		func(doc sceneline.Document, id sceneline.ID, _ []string) (sceneline.Document, error) {
			return arrange.RemoveTrack(doc, id)
		})
	trackRenameCmd = trackEdit("rename TRACK NAME", "Rename a track", "RenameTrack", 2,
		func(doc sceneline.Document, id sceneline.ID, args []string) (sceneline.Document, error) {
			return arrange.RenameTrack(doc, id, args[0])
		})
	trackColorCmd = trackEdit("color TRACK COLOR", "Set the display color of a track", "RecolorTrack", 2,
		func(doc sceneline.Document, id sceneline.ID, args []string) (sceneline.Document, error) {
			return arrange.RecolorTrack(doc, id, args[0])
		})
	trackMoveCmd = trackEdit("move TRACK up|down|INDEX", "Move a track in the track order", "ReorderTrack", 2,
		func(doc sceneline.Document, id sceneline.ID, args []string) (sceneline.Document, error) {
			switch args[0] {
			case "up":
				return arrange.MoveTrackUp(doc, id)
			case "down":
				return arrange.MoveTrackDown(doc, id)
			}
			n, err := parseInt("index", args[0])
			if err != nil {
				return doc, err
			}
			return arrange.ReorderTrack(doc, id, n)
		})
	trackRouteCmd = trackEdit("route TRACK OUTPUT CHANNEL", "Set where the notes of a track go; an empty OUTPUT removes the routing", "SetTrackRouting", 3,
		func(doc sceneline.Document, id sceneline.ID, args []string) (sceneline.Document, error) {
			ch := 0
			if args[0] != "" {
				var err error
				if ch, err = parseInt("channel", args[1]); err != nil {
					return doc, err
				}
			}
			return arrange.SetTrackRouting(doc, id, sceneline.Routing{Output: args[0], Channel: ch})
		})
)

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackAddCmd, trackRemoveCmd, trackRenameCmd, trackColorCmd, trackMoveCmd, trackRouteCmd)
}
