package arrange

import (
	"errors"
	"fmt"

	"github.com/vsariola/sceneline"
)

// The batch operations apply a single-pattern operation to each identifier
// in turn. They are sequential and best effort, not transactional: every
// item is resolved against the document left by the previous item, so a
// scene created for an earlier item can be reused by a later one, and an
// item that fails is skipped without undoing the items before it. The
// returned error joins the failures of the skipped items; the returned
// document is the result of all the items that succeeded.

// MovePatterns moves each placed pattern delta beats from its current
// position.
func (t Timeline) MovePatterns(doc sceneline.Document, ids []string, delta float64) (sceneline.Document, error) {
	return batch(doc, ids, func(doc sceneline.Document, id string) (sceneline.Document, error) {
		return apply(doc, func(d *draft) error {
			loc, start, _, err := d.placed(id)
			if err != nil {
				return err
			}
			return t.move(d, loc, start+delta)
		})
	})
}

// DeletePatterns deletes the pattern behind each placement.
func DeletePatterns(doc sceneline.Document, ids []string) (sceneline.Document, error) {
	return batch(doc, ids, DeletePatternByID)
}

// UnlinkPatterns removes each placement.
func UnlinkPatterns(doc sceneline.Document, ids []string) (sceneline.Document, error) {
	return batch(doc, ids, UnlinkPattern)
}

func batch(doc sceneline.Document, ids []string, f func(sceneline.Document, string) (sceneline.Document, error)) (sceneline.Document, error) {
	var errs []error
	for _, id := range ids {
		next, err := f(doc, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		doc = next
	}
	return doc, errors.Join(errs...)
}
