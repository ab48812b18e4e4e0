package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/editor"
	"github.com/vsariola/sceneline/report"
	"github.com/vsariola/sceneline/version"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new song document",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the document is structurally sound",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openModel(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a report of the arrangement",
	Long: `Print a report of the arrangement, rendered with a text template. The
built-in templates are summary.txt (the default) and patterns.csv; with
--template-dir, the templates are read from that directory instead.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scenes with their positions on the timeline",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openModel()
		if err != nil {
			return err
		}
		doc := m.Document()
		out := cmd.OutOrStdout()
		for _, b := range arrange.Boundaries(doc) {
			fmt.Fprintf(out, "%s\t%g\t%g\t%s\n", b.Scene, b.Start, b.End, doc.Metadata.Mappings.Scenes.ID(b.Scene))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the hardware part of the document, without the sidecar metadata",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Write the document in the recovery file to --file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := newModel()
		ok, err := m.History().LoadRecovery()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no recovery file")
		}
		if err := saveModel(m); err != nil {
			return err
		}
		return m.History().RemoveRecovery()
	},
}

var songCmd = &cobra.Command{
	Use:   "song NAME",
	Short: "Make another song of the document the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit("SelectSong", func(m *editor.Model) editor.Mutation {
			return func(doc sceneline.Document) (sceneline.Document, error) {
				return arrange.SelectSong(doc, args[0])
			}
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// no config needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.VersionOrHash)
	},
}

var (
	newSongName  string
	newNumTracks int
	newForce     bool

	reportTemplate    string
	reportTemplateDir string

	exportOutput string
)

func init() {
	rootCmd.AddCommand(newCmd, validateCmd, reportCmd, scenesCmd, exportCmd, recoverCmd, songCmd, versionCmd)

	newCmd.Flags().StringVar(&newSongName, "song", editor.DefaultSongName, "Name of the song")
	newCmd.Flags().IntVar(&newNumTracks, "tracks", editor.DefaultNumTracks, "Number of tracks")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file")

	reportCmd.Flags().StringVarP(&reportTemplate, "template", "t", report.DefaultTemplate, "Template to render")
	reportCmd.Flags().StringVar(&reportTemplateDir, "template-dir", "", "Directory to read templates from")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runNew(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(filePath); err == nil && !newForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", filePath)
	}
	if newNumTracks < 0 {
		return fmt.Errorf("invalid number of tracks %d", newNumTracks)
	}
	m := newModel(editor.WithDocument(sceneline.NewDocument(newSongName, newNumTracks)))
	if err := saveModel(m); err != nil {
		return err
	}
	logger.Info().Str("path", filePath).Str("song", newSongName).Msg("document created")
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	m, err := openModel()
	if err != nil {
		return err
	}
	var r *report.Reporter
	if reportTemplateDir != "" {
		r, err = report.NewFromTemplates(reportTemplateDir)
	} else {
		r, err = report.New()
	}
	if err != nil {
		return err
	}
	return r.Render(cmd.OutOrStdout(), m.Document(), reportTemplate)
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := openModel()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(map[string]any{"songs": sceneline.ExportSongs(m.Document())})
	if err != nil {
		return fmt.Errorf("marshal songs: %w", err)
	}
	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
