package setlist

import (
	"fmt"
	"time"

	"github.com/osa030/setlistmaker/internal/domain/timecode"
)

// Date holds raw date components. They are not validated as a calendar
// date; the performer types the year and picks month/day freely.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Today returns the current local date.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// String renders the date as "YYYY/MM/DD" with month and day
// zero-padded to two digits.
func (d Date) String() string {
	return fmt.Sprintf("%d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Document represents a whole show: metadata plus the ordered running
// order. Item order is performance order and is the single source of
// truth; there is no separate index or ID field.
type Document struct {
	Artist      string
	Date        Date
	Event       string
	Items       []Item
	UseDuration bool // When false, durations are retained but not shown or aggregated
}

// New creates an empty document dated today.
func New(artist string) *Document {
	return &Document{Artist: artist, Date: Today()}
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.Items)
}

// IsEmpty reports whether the running order has no entries.
func (d *Document) IsEmpty() bool {
	return len(d.Items) == 0
}

// Append adds an entry at the end of the running order.
func (d *Document) Append(item Item) {
	d.Items = append(d.Items, item)
}

// At returns the entry at index i.
func (d *Document) At(i int) (Item, bool) {
	if i < 0 || i >= len(d.Items) {
		return Item{}, false
	}
	return d.Items[i], true
}

// Update replaces the entry at index i.
func (d *Document) Update(i int, item Item) bool {
	if i < 0 || i >= len(d.Items) {
		return false
	}
	d.Items[i] = item
	return true
}

// RemoveAt deletes the entry at index i, preserving the order of the
// remaining entries.
func (d *Document) RemoveAt(i int) bool {
	if i < 0 || i >= len(d.Items) {
		return false
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	return true
}

// Swap exchanges the adjacent entries at i and j. Only adjacent swaps
// are allowed; reordering is a sequence of single-step moves.
func (d *Document) Swap(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	if i < 0 || j != i+1 || j >= len(d.Items) {
		return false
	}
	d.Items[i], d.Items[j] = d.Items[j], d.Items[i]
	return true
}

// TotalSeconds sums the parsed durations of all song entries. MC
// entries never contribute, regardless of their duration field.
func (d *Document) TotalSeconds() int {
	total := 0
	for _, item := range d.Items {
		if item.IsMC {
			continue
		}
		total += timecode.Parse(item.Duration)
	}
	return total
}

// Clone returns a deep copy for export components, which must never
// retain or mutate the editing session's document.
func (d *Document) Clone() *Document {
	c := *d
	c.Items = make([]Item, len(d.Items))
	copy(c.Items, d.Items)
	return &c
}
