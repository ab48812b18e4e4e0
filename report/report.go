package report

import (
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

type (
	Reporter struct {
		Template *template.Template
	}

	// View is the data the report templates are executed with: the current
	// song laid out on the timeline.
	View struct {
		Song        string
		TotalLength float64
		Scenes      []SceneView
		Tracks      []TrackView
		Patterns    []PatternView
	}

	SceneView struct {
		Name       string
		ID         sceneline.ID
		Start, End float64
		Advance    sceneline.Advance
		Muted      []string
		Patterns   []PatternView
	}

	TrackView struct {
		Key     string
		ID      sceneline.ID
		Name    string
		Color   string
		Routing *sceneline.Routing
	}

	PatternView struct {
		ID        string
		Scene     string
		Track     string
		TrackName string
		Pattern   string
		Type      sceneline.PatternType
		BarCount  int
		Start     float64
		Duration  float64
	}
)

// DefaultTemplate is the name of the template used when none is given.
const DefaultTemplate = "summary.txt"

//go:embed templates/*
var templateFS embed.FS

// New returns a reporter using the built-in templates.
func New() (*Reporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// NewFromTemplates returns a reporter using all the templates in a
// directory. Templates are referred to by their file names.
func NewFromTemplates(templateDirectory string) (*Reporter, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create template based on directory "%v": %v`, templateDirectory, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// Render executes the named template with the view of doc.
func (r *Reporter) Render(w io.Writer, doc sceneline.Document, name string) error {
	if name == "" {
		name = DefaultTemplate
	}
	if r.Template.Lookup(name) == nil {
		return fmt.Errorf("no template named %q", name)
	}
	if err := r.Template.ExecuteTemplate(w, name, NewView(doc)); err != nil {
		return fmt.Errorf(`could not execute template "%v": %v`, name, err)
	}
	return nil
}

// Render renders doc with one of the built-in templates.
func Render(w io.Writer, doc sceneline.Document, name string) error {
	r, err := New()
	if err != nil {
		return err
	}
	return r.Render(w, doc, name)
}

// NewView lays out the current song of doc for the templates.
func NewView(doc sceneline.Document) View {
	song, _ := doc.Current()
	meta := doc.Metadata
	v := View{Song: meta.CurrentSongName, TotalLength: arrange.TotalLength(doc)}
	for _, key := range meta.TrackOrder {
		m, _ := meta.Mappings.Tracks.Get(key)
		t := TrackView{Key: key, ID: m.ReactKey, Name: m.Name, Color: m.Color}
		if r, ok := song.Instruments[key]; ok {
			t.Routing = &r
		}
		v.Tracks = append(v.Tracks, t)
	}
	byScene := map[string][]PatternView{}
	for _, ref := range arrange.PatternRefs(doc) {
		p := song.Patterns[ref.Pattern]
		tm, _ := meta.Mappings.Tracks.Get(ref.Track)
		pv := PatternView{
			ID:        ref.ID,
			Scene:     ref.Scene,
			Track:     ref.Track,
			TrackName: tm.Name,
			Pattern:   ref.Pattern,
			Type:      p.Type,
			BarCount:  p.BarCount,
			Start:     ref.Start,
			Duration:  ref.Duration,
		}
		v.Patterns = append(v.Patterns, pv)
		byScene[ref.Scene] = append(byScene[ref.Scene], pv)
	}
	for _, b := range arrange.Boundaries(doc) {
		s := song.Scenes[b.Scene]
		v.Scenes = append(v.Scenes, SceneView{
			Name:     b.Scene,
			ID:       meta.Mappings.Scenes.ID(b.Scene),
			Start:    b.Start,
			End:      b.End,
			Advance:  s.Advance,
			Muted:    s.InitialMutes,
			Patterns: byScene[b.Scene],
		})
	}
	return v
}
