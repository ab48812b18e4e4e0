package arrange

import (
	"slices"

	"github.com/vsariola/sceneline"
)

// SetSceneAdvance sets how the scene moves on to the next one.
func SetSceneAdvance(doc sceneline.Document, sceneID sceneline.ID, advance sceneline.Advance) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if !advance.Valid() {
			return invalid("unknown advance mode %q", advance)
		}
		return d.editScene(sceneID, func(s *sceneline.Scene) error {
			s.Advance = advance
			return nil
		})
	})
}

// SetSceneInitialMutes replaces the set of tracks muted when the scene
// starts. Track identifiers that do not resolve are dropped silently.
func SetSceneInitialMutes(doc sceneline.Document, sceneID sceneline.ID, trackIDs []sceneline.ID) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		var mutes []string
		for _, id := range trackIDs {
			if k, err := d.trackKey(id); err == nil {
				mutes = append(mutes, k)
			}
		}
		slices.Sort(mutes)
		mutes = slices.Compact(mutes)
		return d.editScene(sceneID, func(s *sceneline.Scene) error {
			s.InitialMutes = mutes
			return nil
		})
	})
}

// SetSceneLength sets the length of the scene in bars. Every scene after it
// moves accordingly.
func SetSceneLength(doc sceneline.Document, sceneID sceneline.ID, length int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if length <= 0 {
			return invalid("scene length %d", length)
		}
		return d.editScene(sceneID, func(s *sceneline.Scene) error {
			s.Length = length
			return nil
		})
	})
}

// SetSceneGBar sets the global bar length of the scene in steps.
func SetSceneGBar(doc sceneline.Document, sceneID sceneline.ID, gbar int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		if gbar <= 0 {
			return invalid("scene gbar %d", gbar)
		}
		return d.editScene(sceneID, func(s *sceneline.Scene) error {
			s.GBar = gbar
			return nil
		})
	})
}

// RenameSceneByID renames the scene with the stable identifier.
func RenameSceneByID(doc sceneline.Document, sceneID sceneline.ID, newName string) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		name, err := d.sceneKey(sceneID)
		if err != nil {
			return err
		}
		return d.renameScene(name, newName)
	})
}

// DeleteSceneByID deletes the scene with the stable identifier.
func DeleteSceneByID(doc sceneline.Document, sceneID sceneline.ID) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		name, err := d.sceneKey(sceneID)
		if err != nil {
			return err
		}
		return d.deleteScene(name)
	})
}

// MoveScene moves the scene to the index in the scene order, clamped to the
// bounds of the order. The positions of the scenes follow.
func MoveScene(doc sceneline.Document, sceneID sceneline.ID, index int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error {
		name, err := d.sceneKey(sceneID)
		if err != nil {
			return err
		}
		if d.meta.SceneOrder.Index(name) < 0 {
			d.meta.SceneOrder = d.meta.SceneOrder.Insert(len(d.meta.SceneOrder), name)
		}
		d.meta.SceneOrder = d.meta.SceneOrder.Move(name, index)
		return nil
	})
}

func (d *draft) editScene(id sceneline.ID, f func(s *sceneline.Scene) error) error {
	name, err := d.sceneKey(id)
	if err != nil {
		return err
	}
	s, ok := d.scene(name)
	if !ok {
		return notFound("scene %q", name)
	}
	if err := f(&s); err != nil {
		return err
	}
	d.setScene(name, s)
	return nil
}
