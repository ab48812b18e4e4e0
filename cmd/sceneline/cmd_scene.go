package main

import (
	"github.com/spf13/cobra"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
)

var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Edit scenes",
}

// sceneEdit is a scene command taking a scene and one string argument.
func sceneEdit(use, short, kind string, op func(doc sceneline.Document, id sceneline.ID, arg string) (sceneline.Document, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(kind, func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return op(doc, sceneRef(doc, args[0]), args[1])
				}
			})
		},
	}
}

var (
	sceneAdvanceCmd = sceneEdit("advance SCENE auto|manual", "Set how the scene moves on to the next one", "SetSceneAdvance",
		func(doc sceneline.Document, id sceneline.ID, arg string) (sceneline.Document, error) {
			return arrange.SetSceneAdvance(doc, id, sceneline.Advance(arg))
		})
	sceneLengthCmd = sceneEdit("length SCENE BARS", "Set the length of the scene in bars", "SetSceneLength",
		func(doc sceneline.Document, id sceneline.ID, arg string) (sceneline.Document, error) {
			n, err := parseInt("bars", arg)
			if err != nil {
				return doc, err
			}
			return arrange.SetSceneLength(doc, id, n)
		})
	sceneGBarCmd = sceneEdit("gbar SCENE STEPS", "Set the length of a bar of the scene in steps", "SetSceneGBar",
		func(doc sceneline.Document, id sceneline.ID, arg string) (sceneline.Document, error) {
			n, err := parseInt("steps", arg)
			if err != nil {
				return doc, err
			}
			return arrange.SetSceneGBar(doc, id, n)
		})
	sceneRenameCmd = sceneEdit("rename SCENE NAME", "Rename a scene", "RenameScene", arrange.RenameSceneByID)
	sceneMoveCmd   = sceneEdit("move SCENE INDEX", "Move a scene to another place in the scene order", "MoveScene",
		func(doc sceneline.Document, id sceneline.ID, arg string) (sceneline.Document, error) {
			n, err := parseInt("index", arg)
			if err != nil {
				return doc, err
			}
			return arrange.MoveScene(doc, id, n)
		})
	sceneMuteCmd = &cobra.Command{
		Use:   "mute SCENE [TRACK...]",
		Short: "Set the tracks that start muted in the scene",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit("SetSceneInitialMutes", func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					var ids []sceneline.ID
					for _, t := range args[1:] {
						ids = append(ids, trackRef(doc, t))
					}
					return arrange.SetSceneInitialMutes(doc, sceneRef(doc, args[0]), ids)
				}
			})
		},
	}
	sceneDeleteCmd = &cobra.Command{
		Use:   "delete SCENE",
		Short: "Delete a scene; its patterns are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit("DeleteScene", func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return arrange.DeleteSceneByID(doc, sceneRef(doc, args[0]))
				}
			})
		},
	}
	sceneCreateCmd = &cobra.Command{
		Use:   "create NAME POSITION BEATS",
		Short: "Create a scene at a position of the timeline",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseFloat("position", args[1])
			if err != nil {
				return err
			}
			beats, err := parseFloat("beats", args[2])
			if err != nil {
				return err
			}
			return edit("CreateScene", func(m *editor.Model) editor.Mutation {
				return func(doc sceneline.Document) (sceneline.Document, error) {
					return arrange.CreateScene(doc, args[0], pos, beats)
				}
			})
		},
	}
)

func init() {
	rootCmd.AddCommand(sceneCmd)
	sceneCmd.AddCommand(sceneCreateCmd, sceneAdvanceCmd, sceneLengthCmd, sceneGBarCmd, sceneRenameCmd, sceneMoveCmd, sceneMuteCmd, sceneDeleteCmd)
}
