package editor

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

type (
	// Model holds the document being edited together with its undo and redo
	// history. All edits go through Apply (or the Actions built on top of
	// it), which records history and logs failed edits. A failed edit leaves
	// the document as it was.
	//
	// Model is not safe for concurrent use.
	Model struct {
		d modelData

		undoStack       []sceneline.Document
		redoStack       []sceneline.Document
		prevUndoKind    string
		undoSkipCounter int

		maxUndo          int
		recoveryFilePath string
		timeline         arrange.Timeline
		log              zerolog.Logger
	}

	// modelData is the part of the model that is saved to the recovery file.
	modelData struct {
		Document             sceneline.Document `json:"document"`
		FilePath             string             `json:"filePath,omitempty"`
		ChangedSinceSave     bool               `json:"changedSinceSave"`
		ChangedSinceRecovery bool               `json:"-"`
	}

	// Option configures a Model.
	Option func(*Model)

	// ChangeSeverity tells how an edit is recorded in the undo history.
	// Consecutive minor changes of the same kind are coalesced into one undo
	// step, so that e.g. dragging a velocity up one by one is undone at once.
	ChangeSeverity int

	// Mutation is an editing operation on a document, in the form of the
	// functions in package arrange.
	Mutation func(sceneline.Document) (sceneline.Document, error)
)

const (
	MajorChange ChangeSeverity = iota
	MinorChange
)

const (
	DefaultSongName  = "song"
	DefaultNumTracks = 8
	DefaultMaxUndo   = 256
)

// undoSkip is the number of consecutive minor changes of the same kind that
// are merged into a single undo step.
const undoSkip = 10

func WithLogger(log zerolog.Logger) Option { return func(m *Model) { m.log = log } }
func WithTimeline(t arrange.Timeline) Option { return func(m *Model) { m.timeline = t } }
func WithRecoveryFile(path string) Option    { return func(m *Model) { m.recoveryFilePath = path } }

// WithMaxUndo limits the length of the undo and redo stacks. Values below 1
// are ignored.
func WithMaxUndo(n int) Option {
	return func(m *Model) {
		if n >= 1 {
			m.maxUndo = n
		}
	}
}

// WithDocument sets the initial document. The initial document is not part
// of the undo history.
func WithDocument(doc sceneline.Document) Option {
	return func(m *Model) { m.d.Document = doc }
}

// NewModel returns a model editing a new empty document, unless WithDocument
// says otherwise. Without WithLogger, nothing is logged.
func NewModel(opts ...Option) *Model {
	m := &Model{
		d:        modelData{Document: sceneline.NewDocument(DefaultSongName, DefaultNumTracks)},
		maxUndo:  DefaultMaxUndo,
		timeline: arrange.DefaultTimeline(),
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Document returns the current document. Documents are never modified in
// place, so the returned value stays valid after further edits.
func (m *Model) Document() sceneline.Document { return m.d.Document }

func (m *Model) Timeline() arrange.Timeline { return m.timeline }

// FilePath returns the path the document was last read from or written to.
func (m *Model) FilePath() string { return m.d.FilePath }

func (m *Model) ChangedSinceSave() bool { return m.d.ChangedSinceSave }

// Apply runs f on the current document. On success the result becomes the
// current document and the previous one is pushed to the undo history. On
// failure the failure is logged at warn level, the document and history are
// left untouched and the error is returned.
func (m *Model) Apply(kind string, severity ChangeSeverity, f Mutation) error {
	next, err := f(m.d.Document)
	if err != nil {
		m.log.Warn().Err(err).Str("op", kind).Str("kind", errorKind(err)).Msg("edit ignored")
		return err
	}
	m.saveUndo(kind, severity)
	m.d.Document = next
	m.log.Debug().Str("op", kind).Msg("edit applied")
	return nil
}

func (m *Model) saveUndo(kind string, severity ChangeSeverity) {
	m.d.ChangedSinceSave = true
	m.d.ChangedSinceRecovery = true
	m.redoStack = m.redoStack[:0]
	if severity == MinorChange && m.prevUndoKind == kind && m.undoSkipCounter < undoSkip {
		m.undoSkipCounter++
		return
	}
	if severity == MinorChange {
		m.prevUndoKind = kind
	} else {
		m.prevUndoKind = ""
	}
	m.undoSkipCounter = 0
	m.undoStack = push(m.undoStack, m.d.Document, m.maxUndo)
}

// push appends doc to stack, dropping the oldest entries so that at most max
// remain.
func push(stack []sceneline.Document, doc sceneline.Document, max int) []sceneline.Document {
	stack = append(stack, doc)
	if len(stack) > max {
		copy(stack, stack[len(stack)-max:])
		stack = stack[:max]
	}
	return stack
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, arrange.ErrNotFound):
		return "not_found"
	case errors.Is(err, arrange.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}
