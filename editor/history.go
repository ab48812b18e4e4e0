package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// History returns the History view of the model, containing methods to
// manipulate the undo/redo history and saving recovery files.
func (m *Model) History() *History { return (*History)(m) }

type History Model

// Undo returns an Action to undo the last change.
func (m *History) Undo() Action { return MakeAction((*historyUndo)(m)) }

type historyUndo History

func (m *historyUndo) Enabled() bool { return len(m.undoStack) > 0 }
func (m *historyUndo) Do() {
	m.redoStack = push(m.redoStack, m.d.Document, m.maxUndo)
	m.d.Document = m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.prevUndoKind = ""
	m.d.ChangedSinceSave = true
	m.d.ChangedSinceRecovery = true
}

// Redo returns an Action to redo the last undone change.
func (m *History) Redo() Action { return MakeAction((*historyRedo)(m)) }

type historyRedo History

func (m *historyRedo) Enabled() bool { return len(m.redoStack) > 0 }
func (m *historyRedo) Do() {
	m.undoStack = push(m.undoStack, m.d.Document, m.maxUndo)
	m.d.Document = m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.prevUndoKind = ""
	m.d.ChangedSinceSave = true
	m.d.ChangedSinceRecovery = true
}

// Clear forgets the whole undo and redo history.
func (m *History) Clear() {
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
	m.prevUndoKind = ""
}

func (m *History) UndoLen() int { return len(m.undoStack) }
func (m *History) RedoLen() int { return len(m.redoStack) }

// SaveRecovery saves the current model data to the recovery file on disk if
// there are changes since the last save.
func (m *History) SaveRecovery() error {
	if !m.d.ChangedSinceRecovery {
		return nil
	}
	if m.recoveryFilePath == "" {
		return errors.New("no recovery file path")
	}
	out, err := json.Marshal(m.d)
	if err != nil {
		return fmt.Errorf("could not marshal recovery data: %w", err)
	}
	dir := filepath.Dir(m.recoveryFilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create recovery directory: %w", err)
	}
	if err := os.WriteFile(m.recoveryFilePath, out, 0o644); err != nil {
		return fmt.Errorf("could not write recovery file: %w", err)
	}
	m.d.ChangedSinceRecovery = false
	m.log.Debug().Str("path", m.recoveryFilePath).Msg("recovery saved")
	return nil
}

// LoadRecovery replaces the current document with the one in the recovery
// file. It reports false if there is no recovery file. A recovery file that
// does not hold a valid document is an error and the model is not changed.
// Loading is recorded in the undo history.
func (m *History) LoadRecovery() (bool, error) {
	if m.recoveryFilePath == "" {
		return false, nil
	}
	b, err := os.ReadFile(m.recoveryFilePath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read recovery file: %w", err)
	}
	var data modelData
	if err := json.Unmarshal(b, &data); err != nil {
		return false, fmt.Errorf("could not unmarshal recovery file: %w", err)
	}
	if err := data.Document.Validate(); err != nil {
		return false, fmt.Errorf("recovery file: %w", err)
	}
	(*Model)(m).saveUndo("LoadRecovery", MajorChange)
	data.ChangedSinceRecovery = false
	m.d = data
	return true, nil
}

// RemoveRecovery deletes the recovery file, e.g. after the document was
// saved properly.
func (m *History) RemoveRecovery() error {
	if m.recoveryFilePath == "" {
		return nil
	}
	if err := os.Remove(m.recoveryFilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not remove recovery file: %w", err)
	}
	return nil
}
