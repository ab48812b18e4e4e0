package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
	"github.com/vsariola/sceneline/config"
	"github.com/vsariola/sceneline/editor"
	"github.com/vsariola/sceneline/logging"
)

var (
	logger   zerolog.Logger
	cfg      *config.Config
	filePath string
)

var rootCmd = &cobra.Command{
	Use:   "sceneline",
	Short: "Edit hardware sequencer songs as a timeline",
	Long: `sceneline edits the arrangement of a hardware sequencer song file as a
continuous timeline measured in beats. Every editing command loads the file
named by --file, applies one operation and writes the file back, but only if
the operation succeeded.

Scenes and tracks can be referred to by their native key (scene name, track
number) or by their stable identifier. Placed patterns are referred to by
their composite identifier, as listed by "sceneline pattern list".`,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return loadConfig() },
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "song.yml", "Song document to operate on (.yml or .json)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called before every command)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.Setup(cfg.Environment, cfg.LogLevel)
	return nil
}

func newModel(opts ...editor.Option) *editor.Model {
	opts = append([]editor.Option{
		editor.WithLogger(logger),
		editor.WithTimeline(arrange.Timeline{Granularity: cfg.SnapBeats, SceneBeats: cfg.SceneBeats}),
		editor.WithMaxUndo(cfg.MaxUndo),
		editor.WithRecoveryFile(cfg.RecoveryFile),
	}, opts...)
	return editor.NewModel(opts...)
}

// openModel reads the document named by --file.
func openModel() (*editor.Model, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	m := newModel()
	if err := m.ReadDocument(f); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return m, nil
}

// saveModel writes the document of m to --file.
func saveModel(m *editor.Model) error {
	if err := m.SaveFile(filePath); err != nil {
		return err
	}
	logger.Debug().Str("path", filePath).Msg("document saved")
	return nil
}

// edit loads the document, applies f and saves the result. Nothing is
// written if f fails. If saving fails, the edited document is put in the
// recovery file.
func edit(kind string, f func(m *editor.Model) editor.Mutation) error {
	m, err := openModel()
	if err != nil {
		return err
	}
	if err := m.Apply(kind, editor.MajorChange, f(m)); err != nil {
		return err
	}
	if err := saveModel(m); err != nil {
		if rerr := m.History().SaveRecovery(); rerr != nil {
			logger.Error().Err(rerr).Msg("could not save recovery file")
		} else {
			logger.Warn().Str("path", cfg.RecoveryFile).Msg("edit kept in recovery file")
		}
		return err
	}
	return nil
}

// trackRef resolves a track given either as a track key or as a stable
// identifier.
func trackRef(doc sceneline.Document, s string) sceneline.ID {
	if m, ok := doc.Metadata.Mappings.Tracks.Get(s); ok {
		return m.ReactKey
	}
	return sceneline.ID(s)
}

// sceneRef resolves a scene given either as a scene name or as a stable
// identifier.
func sceneRef(doc sceneline.Document, s string) sceneline.ID {
	if m, ok := doc.Metadata.Mappings.Scenes.Get(s); ok {
		return m.ReactKey
	}
	return sceneline.ID(s)
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
