package editor

import (
	"fmt"

	"github.com/vsariola/sceneline"
	"github.com/vsariola/sceneline/arrange"
)

type (
	// Action describes a user action that can be performed on the model,
	// which can be initiated by calling the Do() method. It is usually
	// initiated by a button press, a menu item or a command. Action
	// advertises whether it is enabled, so a UI can e.g. gray out buttons
	// when the underlying action is not allowed. The underlying Doer can
	// optionally implement the Enabler interface to decide if the action is
	// enabled or not; if it does not implement the Enabler interface, the
	// action is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used to check if an Action is enabled or not.
	Enabler interface {
		Enabled() bool
	}
)

// Action methods

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false // no doer, not allowed
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true // not enabler, always allowed
	}
	return e.Enabled()
}

// edit is a Doer applying a mutation through Model.Apply. Errors are logged
// by Apply, so Do has nothing to report.
type edit struct {
	m        *Model
	kind     string
	severity ChangeSeverity
	f        Mutation
	enabled  func(sceneline.Document) bool
}

func (e edit) Do() { _ = e.m.Apply(e.kind, e.severity, e.f) }

func (e edit) Enabled() bool {
	if e.enabled == nil {
		return true
	}
	return e.enabled(e.m.d.Document)
}

func (m *Model) action(kind string, severity ChangeSeverity, f Mutation) Action {
	return MakeAction(edit{m: m, kind: kind, severity: severity, f: f})
}

// patternAction is an action on a placed pattern; it is enabled only while
// the composite identifier resolves.
func (m *Model) patternAction(kind string, severity ChangeSeverity, id string, f Mutation) Action {
	return MakeAction(edit{m: m, kind: kind, severity: severity, f: f, enabled: func(doc sceneline.Document) bool {
		_, err := arrange.ResolvePattern(doc, id)
		return err == nil
	}})
}

// Timeline actions

func (m *Model) CreatePatternAt(trackID sceneline.ID, position, duration float64) Action {
	return m.action("CreatePatternAt", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		doc, _, err := m.timeline.CreatePatternAt(doc, trackID, position, duration)
		return doc, err
	})
}

func (m *Model) MovePattern(id string, position float64) Action {
	return m.patternAction("MovePattern", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		return m.timeline.MovePattern(doc, id, position)
	})
}

func (m *Model) MovePatterns(ids []string, delta float64) Action {
	return m.action("MovePatterns", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return m.timeline.MovePatterns(doc, ids, delta)
	})
}

func (m *Model) ResizePattern(id string, duration float64) Action {
	return m.patternAction("ResizePattern", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		return m.timeline.ResizePattern(doc, id, duration)
	})
}

func (m *Model) TrimStart(id string, delta float64) Action {
	return m.patternAction("TrimStart", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		return m.timeline.TrimStart(doc, id, delta)
	})
}

func (m *Model) TrimEnd(id string, delta float64) Action {
	return m.patternAction("TrimEnd", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		return m.timeline.TrimEnd(doc, id, delta)
	})
}

func (m *Model) SplitPattern(id string, at float64) Action {
	return m.patternAction("SplitPattern", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		doc, _, err := m.timeline.SplitPattern(doc, id, at)
		return doc, err
	})
}

func (m *Model) DuplicatePattern(id string, withOffset bool) Action {
	return m.patternAction("DuplicatePattern", MajorChange, id, func(doc sceneline.Document) (sceneline.Document, error) {
		var err error
		if withOffset {
			doc, _, err = m.timeline.DuplicatePatternWithOffset(doc, id)
		} else {
			doc, _, err = m.timeline.DuplicatePattern(doc, id)
		}
		return doc, err
	})
}

func (m *Model) DeletePatterns(ids ...string) Action {
	return m.action("DeletePatterns", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.DeletePatterns(doc, ids)
	})
}

func (m *Model) UnlinkPatterns(ids ...string) Action {
	return m.action("UnlinkPatterns", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.UnlinkPatterns(doc, ids)
	})
}

// Pattern content actions. These take native pattern names. Step edits are
// minor changes; repeated edits of the same cell share an undo step.

func (m *Model) SetBarCount(pattern string, count int) Action {
	return m.action("SetBarCount", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SetBarCount(doc, pattern, count)
	})
}

func (m *Model) SetStepValue(pattern string, bar, step int, lane arrange.Lane, value int) Action {
	kind := fmt.Sprintf("SetStepValue.%s.%s.%d.%d", lane, pattern, bar, step)
	return m.action(kind, MinorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SetStepValue(doc, pattern, bar, step, lane, value)
	})
}

func (m *Model) SetStepNote(pattern string, bar, step int, note string) Action {
	return m.action("SetStepNote", MinorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SetStepNote(doc, pattern, bar, step, note)
	})
}

func (m *Model) ToggleGate(pattern string, bar, step int) Action {
	return m.action("ToggleGate", MinorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.ToggleGate(doc, pattern, bar, step)
	})
}

func (m *Model) UpdateBarParameter(pattern string, bar int, param arrange.BarParameter, value int) Action {
	kind := fmt.Sprintf("UpdateBarParameter.%s.%s.%d", param, pattern, bar)
	return m.action(kind, MinorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.UpdateBarParameter(doc, pattern, bar, param, value)
	})
}

// Scene and track actions

func (m *Model) SetSceneAdvance(sceneID sceneline.ID, advance sceneline.Advance) Action {
	return m.action("SetSceneAdvance", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SetSceneAdvance(doc, sceneID, advance)
	})
}

func (m *Model) SetSceneLength(sceneID sceneline.ID, length int) Action {
	return m.action("SetSceneLength", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SetSceneLength(doc, sceneID, length)
	})
}

func (m *Model) RenameScene(sceneID sceneline.ID, name string) Action {
	return m.action("RenameScene", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.RenameSceneByID(doc, sceneID, name)
	})
}

func (m *Model) DeleteScene(sceneID sceneline.ID) Action {
	return m.action("DeleteScene", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.DeleteSceneByID(doc, sceneID)
	})
}

func (m *Model) AddTrack(name string) Action {
	return m.action("AddTrack", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		doc, _, err := arrange.AddTrack(doc, name)
		return doc, err
	})
}

func (m *Model) RemoveTrack(trackID sceneline.ID) Action {
	return m.action("RemoveTrack", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.RemoveTrack(doc, trackID)
	})
}

func (m *Model) MoveTrackUp(trackID sceneline.ID) Action {
	return MakeAction(edit{m: m, kind: "MoveTrackUp", f: func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.MoveTrackUp(doc, trackID)
	}, enabled: func(doc sceneline.Document) bool {
		key, err := arrange.TrackKey(doc, trackID)
		return err == nil && doc.Metadata.TrackOrder.Index(key) > 0
	}})
}

func (m *Model) MoveTrackDown(trackID sceneline.ID) Action {
	return MakeAction(edit{m: m, kind: "MoveTrackDown", f: func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.MoveTrackDown(doc, trackID)
	}, enabled: func(doc sceneline.Document) bool {
		key, err := arrange.TrackKey(doc, trackID)
		i := doc.Metadata.TrackOrder.Index(key)
		return err == nil && i >= 0 && i < len(doc.Metadata.TrackOrder)-1
	}})
}

func (m *Model) SelectSong(name string) Action {
	return m.action("SelectSong", MajorChange, func(doc sceneline.Document) (sceneline.Document, error) {
		return arrange.SelectSong(doc, name)
	})
}
