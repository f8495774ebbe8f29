// Package watch turns raw, possibly missing samples of a process variable into
// edges that the splitting logic can react to.
package watch

import (
	"cmp"
	"fmt"
)

// A Sample holds the previous and the latest observation of a variable.
//
// A pair is valid only when both observations are present. After a missing
// observation, the next valid one re-establishes the pair with previous equal
// to latest, so that no edge is reported across the gap.
type Sample[T comparable] struct {
	previous    T
	hasPrevious bool
	latest      T
	hasLatest   bool
}

// Update records a new observation. When ok is false, the observation is
// treated as missing and the pair becomes invalid.
func (s *Sample[T]) Update(v T, ok bool) {
	if !ok {
		s.Invalidate()
		return
	}

	if !s.hasLatest {
		s.previous, s.hasPrevious = v, true
		s.latest, s.hasLatest = v, true

		return
	}

	s.previous, s.hasPrevious = s.latest, true
	s.latest = v
}

// Set records a present observation.
func (s *Sample[T]) Set(v T) {
	s.Update(v, true)
}

// Invalidate records a missing observation. The latest value moves to
// previous so that the gap is visible, and latest becomes absent.
func (s *Sample[T]) Invalidate() {
	var zero T

	s.previous, s.hasPrevious = s.latest, s.hasLatest
	s.latest, s.hasLatest = zero, false
}

// Reset forgets every observation.
func (s *Sample[T]) Reset() {
	*s = Sample[T]{}
}

// Valid reports whether both observations are present.
func (s *Sample[T]) Valid() bool {
	return s.hasLatest && s.hasPrevious
}

// Pair returns the previous and latest observation.
func (s *Sample[T]) Pair() (old, cur T, ok bool) {
	if !s.Valid() {
		return old, cur, false
	}

	return s.previous, s.latest, true
}

// Current returns the latest observation of a valid pair.
func (s *Sample[T]) Current() (T, bool) {
	if !s.Valid() {
		var zero T
		return zero, false
	}

	return s.latest, true
}

// String formats the latest observation of a valid pair, or "[invalid]".
func (s *Sample[T]) String() string {
	if !s.Valid() {
		return "[invalid]"
	}

	return fmt.Sprint(s.latest)
}

// Previous returns the previous observation of a valid pair.
func (s *Sample[T]) Previous() (T, bool) {
	if !s.Valid() {
		var zero T
		return zero, false
	}

	return s.previous, true
}

// Changed reports whether the value differs between the two observations.
func (s *Sample[T]) Changed() bool {
	return s.Valid() && s.previous != s.latest
}

// ChangedTo reports whether the value changed and is now v.
func (s *Sample[T]) ChangedTo(v T) bool {
	return s.Changed() && s.latest == v
}

// ChangedFrom reports whether the value changed and was v.
func (s *Sample[T]) ChangedFrom(v T) bool {
	return s.Changed() && s.previous == v
}

// ChangedFromTo reports whether the value changed from a to b.
func (s *Sample[T]) ChangedFromTo(a, b T) bool {
	return s.Changed() && s.previous == a && s.latest == b
}

// Increased reports whether the latest observation of s is greater than the
// previous one.
func Increased[T cmp.Ordered](s *Sample[T]) bool {
	old, cur, ok := s.Pair()
	return ok && cur > old
}

// Decreased reports whether the latest observation of s is less than the
// previous one.
func Decreased[T cmp.Ordered](s *Sample[T]) bool {
	old, cur, ok := s.Pair()
	return ok && cur < old
}
