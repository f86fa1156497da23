package watch

import (
	"errors"
	"time"

	"github.com/brnsen/rigwatch/param"
)

// maxItems bounds the watch list to a fixed-capacity table, matching the
// module's other fixed-size stores (param.Store, j1939.TransportProtocol).
const maxItems = 64

var (
	// ErrAlreadyExists is returned by Add when identity already has an entry.
	ErrAlreadyExists = errors.New("watch: identity already has a watch item")
	// ErrListFull is returned by Add when the list is at capacity.
	ErrListFull = errors.New("watch: list is full")
	// ErrPageOutOfRange is returned by Add when page is outside [0, NumPages).
	ErrPageOutOfRange = errors.New("watch: page index out of range")
	// ErrNotFound is returned by operations addressing an absent identity.
	ErrNotFound = errors.New("watch: no watch item for identity")
)

// List is the fixed-capacity watch list of spec.md §4.6, backed by a
// parameter store it reads from but does not own.
type List struct {
	store *param.Store
	items [maxItems]Item
	inUse [maxItems]bool
	count int
}

// NewList creates an empty watch list reading from store.
func NewList(store *param.Store) *List {
	return &List{store: store}
}

func (l *List) indexOf(id param.Identity) int {
	for i := range l.items {
		if l.inUse[i] && l.items[i].Identity == id {
			return i
		}
	}
	return -1
}

// Add installs a new watch item for id at (page, position) with the given
// widget kind, and returns its index. It fails if id already has an entry,
// the list is full, or page is out of range (spec.md §4.6).
func (l *List) Add(id param.Identity, widget Widget, page, position int) (int, error) {
	if page < 0 || page >= NumPages {
		return -1, ErrPageOutOfRange
	}
	if l.indexOf(id) >= 0 {
		return -1, ErrAlreadyExists
	}
	if l.count >= maxItems {
		return -1, ErrListFull
	}
	for i := range l.inUse {
		if !l.inUse[i] {
			l.items[i] = newItem(id, widget, page, position)
			l.inUse[i] = true
			l.count++
			return i, nil
		}
	}
	return -1, ErrListFull
}

// Remove deletes id's watch item.
func (l *List) Remove(id param.Identity) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.inUse[idx] = false
	l.items[idx] = Item{}
	l.count--
	return nil
}

// SetThresholds updates id's severity boundaries.
func (l *List) SetThresholds(id param.Identity, t Thresholds) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.items[idx].Thresholds = t
	return nil
}

// SetGaugeRange updates id's display gauge range.
func (l *List) SetGaugeRange(id param.Identity, min, max float64) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.items[idx].Gauge = GaugeRange{Min: min, Max: max}
	return nil
}

// SetCustomLabel overrides id's display label and unit.
func (l *List) SetCustomLabel(id param.Identity, label, unit string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.items[idx].Label = label
	l.items[idx].Unit = unit
	return nil
}

// Update recomputes severity for every enabled item whose parameter is
// currently valid (spec.md §4.6). now is unused by the severity
// computation itself but accepted for symmetry with the store's freshness
// API and so a future staleness policy can be added without changing the
// call signature.
func (l *List) Update(now time.Time) {
	for i := range l.items {
		if !l.inUse[i] || !l.items[i].Enabled {
			continue
		}
		v, ok := l.store.Get(l.items[i].Identity)
		if !ok {
			continue
		}
		l.items[i].Severity = l.items[i].Thresholds.Severity(v)
	}
}

// PageItems returns the enabled entries on page, in position order.
func (l *List) PageItems(page int) []Item {
	var out []Item
	for i := range l.items {
		if l.inUse[i] && l.items[i].Enabled && l.items[i].Page == page {
			out = append(out, l.items[i])
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Position < out[j-1].Position; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// HighestAlert returns the highest severity currently held by any enabled
// item.
func (l *List) HighestAlert() Severity {
	highest := SeverityNone
	for i := range l.items {
		if l.inUse[i] && l.items[i].Enabled && l.items[i].Severity > highest {
			highest = l.items[i].Severity
		}
	}
	return highest
}

// AlertCount returns the number of enabled items at or above level.
func (l *List) AlertCount(level Severity) int {
	n := 0
	for i := range l.items {
		if l.inUse[i] && l.items[i].Enabled && l.items[i].Severity >= level {
			n++
		}
	}
	return n
}
