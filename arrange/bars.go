package arrange

import (
	"slices"

	"github.com/vsariola/sceneline"
)

// Bar count limits of SetBarCount.
const (
	MinBarCount = 1
	MaxBarCount = 16
)

// SetBarCount changes the number of bars of the pattern. Bars removed from
// the end are pushed onto the removed-bar stack of the pattern, the bar
// nearest to the kept ones ending up on top. Growing pops bars off that
// stack first, restoring what was removed, and appends default bars only
// once the stack is empty. Shrinking by k bars and then growing by k bars
// thus restores the original bars exactly. The stack is kept in the sidecar
// under the stable identifier of the pattern, so it survives renames and
// saving.
func SetBarCount(doc sceneline.Document, pattern string, count int) (sceneline.Document, error) {
	return apply(doc, func(d *draft) error { return d.setBarCount(pattern, count) })
}

func (d *draft) setBarCount(name string, count int) error {
	p, ok := d.pattern(name)
	if !ok {
		return notFound("pattern %q", name)
	}
	if count < MinBarCount || count > MaxBarCount {
		return invalid("bar count %d not in %d..%d", count, MinBarCount, MaxBarCount)
	}
	if !p.Editable() {
		p.BarCount = count
		d.setPattern(name, p)
		return nil
	}
	id := d.meta.Mappings.Patterns.ID(name)
	cache := d.meta.BarCache[id]
	bars := p.Bars
	switch {
	case count < len(bars):
		cache = append(slices.Clone(bars[count:]), cache...)
		bars = slices.Clone(bars[:count])
	case count > len(bars):
		bars = slices.Clone(bars)
		for len(bars) < count {
			if len(cache) > 0 {
				bars = append(bars, cache[0])
				cache = cache[1:]
				continue
			}
			bars = append(bars, sceneline.DefaultBar())
		}
		cache = slices.Clone(cache)
	}
	p.Bars = bars
	p.BarCount = count
	d.setPattern(name, p)
	d.meta = d.meta.WithBarCache(id, cache)
	return nil
}
