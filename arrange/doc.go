/*
Package arrange contains the editing operations of a sceneline Document.

A document stores an arrangement in the rigid form of the hardware
sequencer: scenes that assign at most one pattern per track, patterns made of
fixed length bars. The functions in this package present the same document as
a continuous timeline measured in beats, where every placed pattern has a
position and a duration, and translate timeline edits (move, resize, split,
duplicate...) back to edits of scenes and patterns.

Positions are never stored. The start of a scene is the sum of the durations
of the scenes before it in the scene order, so any position computed before a
mutation is stale after it; recompute, do not cache.

Every operation is a pure function: it takes a Document and a request and
returns a new Document, never modifying its input. The returned document
shares all unmodified parts with the input, so keeping old documents around
for undo is cheap. When an operation fails, it returns the input document
unchanged together with an error wrapping either ErrNotFound (an identifier
did not resolve) or ErrInvalid (the request was out of range or would
collide with existing names).

Entities are referred to by their stable identifiers (sceneline.ID) for
scenes and tracks, and by composite identifiers for placed patterns; see
PatternID. The mutation primitives (CreateScene, Assign, RenamePattern...)
instead take the native keys of the document and do no resolution.
*/
package arrange
