package sceneline_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/sceneline"
	"gopkg.in/yaml.v3"
)

func sample() sceneline.Document {
	d := sceneline.NewDocument("demo", 2)
	s, _ := d.Current()
	s.Patterns["T1_P3_001"] = sceneline.NewPattern(2)
	s.Scenes["Intro"] = sceneline.Scene{GBar: 16, Length: 4, Advance: sceneline.AdvanceAuto, Patterns: map[string]string{"1": "T1_P3_001"}}
	var id sceneline.ID
	id, d.Metadata = d.Metadata.NewID(sceneline.KindPattern)
	d.Metadata.Mappings.Patterns = d.Metadata.Mappings.Patterns.Put("T1_P3_001", sceneline.Mapping{ReactKey: id})
	id, d.Metadata = d.Metadata.NewID(sceneline.KindScene)
	d.Metadata.Mappings.Scenes = d.Metadata.Mappings.Scenes.Put("Intro", sceneline.Mapping{ReactKey: id, Name: "Intro"})
	d.Metadata.SceneOrder = sceneline.Order{"Intro"}
	return d.WithCurrent(s)
}

func TestNewDocument(t *testing.T) {
	d := sceneline.NewDocument("demo", 3)
	require.NoError(t, d.Validate())
	assert.Equal(t, sceneline.Order{"1", "2", "3"}, d.Metadata.TrackOrder)
	assert.Equal(t, 3, d.Metadata.Sequence)
	m, ok := d.Metadata.Mappings.Tracks.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Track 2", m.Name)
	assert.Len(t, string(m.ReactKey), 36)
}

func TestNewIDIsDeterministic(t *testing.T) {
	m := sceneline.Metadata{CurrentSongName: "x"}
	a, m1 := m.NewID(sceneline.KindScene)
	b, m2 := m.NewID(sceneline.KindScene)
	c, _ := m1.NewID(sceneline.KindScene)
	assert.Equal(t, a, b)
	assert.Equal(t, m1, m2)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 0, m.Sequence)
}

func TestDocumentYAMLRoundTrip(t *testing.T) {
	d := sample()
	require.NoError(t, d.Validate())
	b, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(b), "currentSongName: demo")
	assert.Contains(t, string(b), "pattern_assignments:")
	assert.Contains(t, string(b), "trackOrder:")

	var back sceneline.Document
	require.NoError(t, yaml.Unmarshal(b, &back))
	require.NoError(t, back.Validate())
	again, err := yaml.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(again))
	id := d.Metadata.Mappings.Scenes.ID("Intro")
	key, ok := back.Metadata.Mappings.Scenes.Key(id)
	assert.True(t, ok)
	assert.Equal(t, "Intro", key)
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	d := sample()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	var back sceneline.Document
	require.NoError(t, json.Unmarshal(b, &back))
	require.NoError(t, back.Validate())
	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(b, again))
}

func TestExportSongsHasNoSidecar(t *testing.T) {
	d := sample()
	songs := sceneline.ExportSongs(d)
	b, err := yaml.Marshal(songs)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "reactKey")
	assert.NotContains(t, string(b), "sceneOrder")

	// the export is a copy
	songs["demo"].Scenes["Intro"].Patterns["1"] = "changed"
	s, _ := d.Current()
	assert.Equal(t, "T1_P3_001", s.Scenes["Intro"].Patterns["1"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *sceneline.Document)
	}{
		{"missing song", func(d *sceneline.Document) { d.Metadata.CurrentSongName = "nope" }},
		{"ragged bar", func(d *sceneline.Document) {
			s, _ := d.Current()
			p := s.Patterns["T1_P3_001"].Copy()
			p.Bars[1].Velo = p.Bars[1].Velo[:3]
			s = s.Copy()
			s.Patterns["T1_P3_001"] = p
			*d = d.WithCurrent(s)
		}},
		{"bar count mismatch", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			p := s.Patterns["T1_P3_001"]
			p.BarCount = 5
			s.Patterns["T1_P3_001"] = p
			*d = d.WithCurrent(s)
		}},
		{"dangling assignment", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			s.Scenes["Intro"] = s.Scenes["Intro"].Assign("2", "ghost")
			*d = d.WithCurrent(s)
		}},
		{"scene missing from order", func(d *sceneline.Document) { d.Metadata.SceneOrder = nil }},
		{"duplicate in order", func(d *sceneline.Document) { d.Metadata.TrackOrder = sceneline.Order{"1", "1"} }},
		{"unmapped pattern", func(d *sceneline.Document) {
			d.Metadata.Mappings.Patterns = d.Metadata.Mappings.Patterns.Delete("T1_P3_001")
		}},
		{"assignment on unknown track", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			s.Scenes["Intro"] = s.Scenes["Intro"].Assign("9", "T1_P3_001")
			*d = d.WithCurrent(s)
		}},
		{"mute on unknown track", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			sc := s.Scenes["Intro"]
			sc.InitialMutes = []string{"7"}
			s.Scenes["Intro"] = sc
			*d = d.WithCurrent(s)
		}},
		{"unknown advance", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			sc := s.Scenes["Intro"]
			sc.Advance = "bogus"
			s.Scenes["Intro"] = sc
			*d = d.WithCurrent(s)
		}},
		{"zero length scene", func(d *sceneline.Document) {
			s, _ := d.Current()
			s = s.Copy()
			sc := s.Scenes["Intro"]
			sc.Length = 0
			s.Scenes["Intro"] = sc
			*d = d.WithCurrent(s)
		}},
	}
	require.NoError(t, sample().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			tt.mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestOrder(t *testing.T) {
	o := sceneline.Order{"a", "b", "c"}
	assert.Equal(t, sceneline.Order{"x", "a", "b", "c"}, o.Insert(-5, "x"))
	assert.Equal(t, sceneline.Order{"a", "b", "c", "x"}, o.Insert(50, "x"))
	assert.Equal(t, sceneline.Order{"a", "c"}, o.Remove("b"))
	assert.Equal(t, sceneline.Order{"a", "B", "c"}, o.Replace("b", "B"))
	assert.Equal(t, sceneline.Order{"b", "c", "a"}, o.Move("a", 9))
	assert.Equal(t, sceneline.Order{"c", "b", "a"}, o.Swap(0, 2))
	assert.Equal(t, o, o.Swap(0, 3))
	assert.Equal(t, "", o.Get(3))
	assert.Equal(t, sceneline.Order{"a", "b", "c"}, o, "receiver is never modified")
}

func TestTrackKeys(t *testing.T) {
	n, ok := sceneline.TrackNumber("12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)
	_, ok = sceneline.TrackNumber("drums")
	assert.False(t, ok)
	_, ok = sceneline.TrackNumber("0")
	assert.False(t, ok)
	assert.Equal(t, "3", sceneline.NextTrackKey([]string{"1", "2", "drums", "4"}))
	assert.Equal(t, "1", sceneline.NextTrackKey(nil))
	assert.Equal(t, "T3_P3_007", sceneline.PatternName(3, sceneline.PatternP3, 7))
	assert.Equal(t, "T12_CK_120", sceneline.PatternName(12, sceneline.PatternCK, 120))
}
