package core

import "sort"

// Ordered is implemented by anything that lives in an ordered sibling list:
// content blocks inside a note, and notes inside the board itself.
type Ordered interface {
	// Key returns the stable identity of the item.
	Key() string

	// OrderKey returns the fractional order key that defines render sequence.
	OrderKey() float64

	// SetOrderKey replaces the order key.
	SetOrderKey(v float64)
}

// InsertAfter computes the order key for a new sibling inserted right after
// anchorID. The midpoint anchor.Order+0.5 is cheap and always sorts between
// the anchor and its successor because Renumber keeps siblings on consecutive
// integers. An empty list yields 0. A missing anchor on a non-empty list
// returns ErrAnchorNotFound; callers decide between append-at-end and
// surfacing the error.
func InsertAfter[T Ordered](siblings []T, anchorID string) (float64, error) {
	if len(siblings) == 0 {
		return 0, nil
	}
	for _, s := range siblings {
		if s.Key() == anchorID {
			return s.OrderKey() + 0.5, nil
		}
	}
	return 0, ErrAnchorNotFound
}

// AppendOrder returns the order key that places a new item after every
// current sibling. This is the fallback for ErrAnchorNotFound.
func AppendOrder[T Ordered](siblings []T) float64 {
	max := -1.0
	for _, s := range siblings {
		if s.OrderKey() > max {
			max = s.OrderKey()
		}
	}
	return max + 1
}

// Renumber sorts siblings by their current order key and reassigns
// consecutive integers 0..n-1, bounding floating-point drift from repeated
// midpoint insertions. The sort is stable: equal keys keep their prior array
// position, which makes Renumber idempotent.
func Renumber[T Ordered](siblings []T) []T {
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].OrderKey() < siblings[j].OrderKey()
	})
	for i, s := range siblings {
		s.SetOrderKey(float64(i))
	}
	return siblings
}

// Move removes the item with itemID, splices it back in at targetIndex
// (clamped to the list bounds) and renumbers. Returns ErrNotFound when the
// item is not a sibling.
func Move[T Ordered](siblings []T, itemID string, targetIndex int) ([]T, error) {
	from := -1
	for i, s := range siblings {
		if s.Key() == itemID {
			from = i
			break
		}
	}
	if from == -1 {
		return siblings, ErrNotFound
	}

	item := siblings[from]
	rest := append(append([]T{}, siblings[:from]...), siblings[from+1:]...)

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(rest) {
		targetIndex = len(rest)
	}

	out := make([]T, 0, len(siblings))
	out = append(out, rest[:targetIndex]...)
	out = append(out, item)
	out = append(out, rest[targetIndex:]...)

	// Orders must reflect the splice before Renumber sorts by them.
	for i, s := range out {
		s.SetOrderKey(float64(i))
	}
	return Renumber(out), nil
}
