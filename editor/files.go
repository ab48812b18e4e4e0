package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

// ReadDocument reads a document, in JSON or YAML, and makes it the current
// one. A file holding only the songs tree, without the sidecar, gets a
// synthesized sidecar. The document must pass Validate, otherwise the model
// is left as it was. Reading is recorded in the undo history.
func (m *Model) ReadDocument(r io.ReadCloser) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read document: %w", err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("could not close document: %w", err)
	}
	doc, err := DecodeDocument(b)
	if err != nil {
		m.log.Warn().Err(err).Str("op", "ReadDocument").Msg("document rejected")
		return err
	}
	m.saveUndo("ReadDocument", MajorChange)
	m.d.Document = doc
	if f, ok := r.(*os.File); ok {
		m.d.FilePath = f.Name()
		m.d.ChangedSinceSave = false
	}
	return nil
}

// DecodeDocument parses a document from JSON or YAML and validates it.
func DecodeDocument(b []byte) (sceneline.Document, error) {
	var doc sceneline.Document
	if errJSON := json.Unmarshal(b, &doc); errJSON != nil {
		doc = sceneline.Document{}
		if errYaml := yaml.Unmarshal(b, &doc); errYaml != nil {
			return sceneline.Document{}, fmt.Errorf("could not unmarshal document: %w", errors.Join(errJSON, errYaml))
		}
	}
	if doc.Metadata.Version == "" && len(doc.Songs) > 0 {
		synth, err := arrange.Synthesize(doc.Songs, doc.Metadata.CurrentSongName)
		if err != nil {
			return sceneline.Document{}, fmt.Errorf("could not synthesize metadata: %w", err)
		}
		doc = synth
	}
	if err := doc.Validate(); err != nil {
		return sceneline.Document{}, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// WriteDocument writes the current document as JSON if ext is ".json" and
// as YAML otherwise. When w is a file, its name is used for the extension
// and remembered as the path of the document.
func (m *Model) WriteDocument(w io.WriteCloser, ext string) error {
	f, isFile := w.(*os.File)
	if isFile && ext == "" {
		ext = filepath.Ext(f.Name())
	}
	contents, err := EncodeDocument(m.d.Document, ext)
	if err != nil {
		return err
	}
	if _, err := w.Write(contents); err != nil {
		return fmt.Errorf("could not write document: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("could not close document: %w", err)
	}
	if isFile {
		m.d.FilePath = f.Name()
		m.d.ChangedSinceSave = false
	}
	return nil
}

// SaveFile writes the current document to path through a temporary file
// next to it, so a failed save never leaves a truncated document behind.
// The path is remembered only once the document is in place.
func (m *Model) SaveFile(path string) error {
	contents, err := EncodeDocument(m.d.Document, filepath.Ext(path))
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, contents, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not write document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace document: %w", err)
	}
	m.d.FilePath = path
	m.d.ChangedSinceSave = false
	return nil
}

// EncodeDocument marshals doc as JSON if ext is ".json" and as YAML
// otherwise.
func EncodeDocument(doc sceneline.Document, ext string) ([]byte, error) {
	var contents []byte
	var err error
	if ext == ".json" {
		contents, err = json.MarshalIndent(doc, "", "  ")
	} else {
		contents, err = yaml.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("could not marshal document: %w", err)
	}
	return contents, nil
}
