package relation

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Set is an unordered collection of unique identifiers.
//
// Methods never modify the receiver; a nil Set is a valid empty set.
type Set[T cmp.Ordered] map[T]struct{}

// NewSet returns a set holding items.
func NewSet[T cmp.Ordered](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Contains reports whether x is a member of s.
func (s Set[T]) Contains(x T) bool {
	_, ok := s[x]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s Set[T]) Sorted() []T {
	items := lo.Keys(s)
	slices.Sort(items)
	return items
}

// Clone returns an independent copy of s.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for x := range s {
		out[x] = struct{}{}
	}
	return out
}

// Union returns s ∪ other.
func (s Set[T]) Union(other Set[T]) Set[T] {
	out := s.Clone()
	for x := range other {
		out[x] = struct{}{}
	}
	return out
}

// Intersect returns s ∩ other.
func (s Set[T]) Intersect(other Set[T]) Set[T] {
	out := make(Set[T])
	for x := range s {
		if other.Contains(x) {
			out[x] = struct{}{}
		}
	}
	return out
}

// Difference returns s \ other.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	out := make(Set[T])
	for x := range s {
		if !other.Contains(x) {
			out[x] = struct{}{}
		}
	}
	return out
}

// SubsetOf reports whether every member of s is in other.
func (s Set[T]) SubsetOf(other Set[T]) bool {
	return lo.EveryBy(lo.Keys(s), other.Contains)
}

// Equal reports whether s and other hold the same members.
func (s Set[T]) Equal(other Set[T]) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}
