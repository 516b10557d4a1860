package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"
)

// Bag - ограниченный список диагностик одного прогона.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func clampLimit(n int) uint16 {
	v, err := safecast.Conv[uint16](n)
	switch {
	case err == nil:
		return v
	case n < 0:
		return 0
	}
	return ^uint16(0)
}

// NewBag creates a bag holding at most max diagnostics, clamped to the uint16 range.
func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), max: limit}
}

// Add reports false when the bag is full and d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) hasAtLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool   { return b.hasAtLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.hasAtLeast(SevWarning) }
func (b *Bag) Len() int          { return len(b.items) }

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends other, raising the limit so nothing from other is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.max = max(b.max, clampLimit(len(b.items)+len(other.items)))
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}

// Sort: файл, начало, конец, затем более серьёзные раньше и код по возрастанию.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic per code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		file uint32
		s, e uint32
	}
	seen := make(map[key]bool, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, uint32(d.Primary.File), d.Primary.Start, d.Primary.End}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	})
}
