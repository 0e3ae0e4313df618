package relation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Pair is an ordered pair (From, To) of a relation.
type Pair[T cmp.Ordered] struct {
	From T
	To   T
}

// P is shorthand for Pair{From: from, To: to}.
func P[T cmp.Ordered](from, to T) Pair[T] {
	return Pair[T]{From: from, To: to}
}

// Reverse returns (To, From).
func (p Pair[T]) Reverse() Pair[T] { return Pair[T]{From: p.To, To: p.From} }

func (p Pair[T]) String() string { return fmt.Sprintf("(%v,%v)", p.From, p.To) }

func comparePairs[T cmp.Ordered](a, b Pair[T]) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

// Relation is an immutable set of ordered pairs.
//
// The zero value is the empty relation and is ready to use.
type Relation[T cmp.Ordered] struct {
	pairs map[Pair[T]]struct{}
}

// New builds a relation from pairs. Duplicates collapse.
func New[T cmp.Ordered](pairs ...Pair[T]) Relation[T] {
	m := make(map[Pair[T]]struct{}, len(pairs))
	for _, p := range pairs {
		m[p] = struct{}{}
	}
	return Relation[T]{pairs: m}
}

// filter returns the pairs of r for which keep is true.
func (r Relation[T]) filter(keep func(Pair[T]) bool) Relation[T] {
	m := make(map[Pair[T]]struct{})
	for p := range r.pairs {
		if keep(p) {
			m[p] = struct{}{}
		}
	}
	return Relation[T]{pairs: m}
}

// Len returns the number of pairs.
func (r Relation[T]) Len() int { return len(r.pairs) }

// IsEmpty reports whether r has no pairs.
func (r Relation[T]) IsEmpty() bool { return len(r.pairs) == 0 }

// Contains reports whether (from, to) is in r.
func (r Relation[T]) Contains(from, to T) bool {
	_, ok := r.pairs[Pair[T]{From: from, To: to}]
	return ok
}

// Pairs returns the pairs of r sorted by From, then To.
func (r Relation[T]) Pairs() []Pair[T] {
	out := make([]Pair[T], 0, len(r.pairs))
	for p := range r.pairs {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePairs[T])
	return out
}

// Equal reports whether r and other hold exactly the same pairs.
func (r Relation[T]) Equal(other Relation[T]) bool {
	if len(r.pairs) != len(other.pairs) {
		return false
	}
	for p := range r.pairs {
		if _, ok := other.pairs[p]; !ok {
			return false
		}
	}
	return true
}

func (r Relation[T]) String() string {
	parts := make([]string, 0, len(r.pairs))
	for _, p := range r.Pairs() {
		parts = append(parts, p.String())
	}
	return "Relation{" + strings.Join(parts, ", ") + "}"
}

// Union returns r with pairs added.
func (r Relation[T]) Union(pairs ...Pair[T]) Relation[T] {
	m := make(map[Pair[T]]struct{}, len(r.pairs)+len(pairs))
	for p := range r.pairs {
		m[p] = struct{}{}
	}
	for _, p := range pairs {
		m[p] = struct{}{}
	}
	return Relation[T]{pairs: m}
}

// UnionWith returns r ∪ other.
func (r Relation[T]) UnionWith(other Relation[T]) Relation[T] {
	m := make(map[Pair[T]]struct{}, len(r.pairs)+len(other.pairs))
	for p := range r.pairs {
		m[p] = struct{}{}
	}
	for p := range other.pairs {
		m[p] = struct{}{}
	}
	return Relation[T]{pairs: m}
}

// Without returns r with the given pairs removed.
func (r Relation[T]) Without(pairs ...Pair[T]) Relation[T] {
	drop := New(pairs...)
	return r.filter(func(p Pair[T]) bool { return !drop.Contains(p.From, p.To) })
}

// Domain returns {a : (a,b) ∈ r}.
func (r Relation[T]) Domain() Set[T] {
	s := make(Set[T])
	for p := range r.pairs {
		s[p.From] = struct{}{}
	}
	return s
}

// Range returns {b : (a,b) ∈ r}.
func (r Relation[T]) Range() Set[T] {
	s := make(Set[T])
	for p := range r.pairs {
		s[p.To] = struct{}{}
	}
	return s
}

// Support returns Domain ∪ Range.
func (r Relation[T]) Support() Set[T] {
	s := make(Set[T])
	for p := range r.pairs {
		s[p.From] = struct{}{}
		s[p.To] = struct{}{}
	}
	return s
}

// Image returns {b : (a,b) ∈ r, a ∈ s}.
func (r Relation[T]) Image(s Set[T]) Set[T] {
	out := make(Set[T])
	for p := range r.pairs {
		if s.Contains(p.From) {
			out[p.To] = struct{}{}
		}
	}
	return out
}

// Restrict keeps the pairs whose endpoints are both in s.
func (r Relation[T]) Restrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return s.Contains(p.From) && s.Contains(p.To) })
}

// AntiRestrict keeps the pairs whose endpoints are both outside s.
func (r Relation[T]) AntiRestrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return !s.Contains(p.From) && !s.Contains(p.To) })
}

// DomainRestrict keeps the pairs whose From is in s.
func (r Relation[T]) DomainRestrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return s.Contains(p.From) })
}

// RangeRestrict keeps the pairs whose To is in s.
func (r Relation[T]) RangeRestrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return s.Contains(p.To) })
}

// DomainAntiRestrict keeps the pairs whose From is not in s.
func (r Relation[T]) DomainAntiRestrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return !s.Contains(p.From) })
}

// RangeAntiRestrict keeps the pairs whose To is not in s.
func (r Relation[T]) RangeAntiRestrict(s Set[T]) Relation[T] {
	return r.filter(func(p Pair[T]) bool { return !s.Contains(p.To) })
}

// successors indexes r by From.
func (r Relation[T]) successors() map[T][]T {
	succ := make(map[T][]T)
	for p := range r.pairs {
		succ[p.From] = append(succ[p.From], p.To)
	}
	return succ
}

// closureStep returns {(x,z) : (x,y) ∈ r, (y,z) ∈ r}.
func (r Relation[T]) closureStep() []Pair[T] {
	succ := r.successors()
	var out []Pair[T]
	for p := range r.pairs {
		for _, z := range succ[p.To] {
			out = append(out, Pair[T]{From: p.From, To: z})
		}
	}
	return out
}

// TransitiveClosure returns the smallest transitive superset of r.
//
// Each pass adds the composition of the current relation with itself and the
// loop stops as soon as a pass discovers no new pair.
func (r Relation[T]) TransitiveClosure() Relation[T] {
	work := r
	for {
		before := work.Len()
		work = work.Union(work.closureStep()...)
		if work.Len() == before {
			return work
		}
	}
}

// ReflexiveClosure returns r with (x,x) added for every x in the support.
func (r Relation[T]) ReflexiveClosure() Relation[T] {
	support := r.Support()
	loops := make([]Pair[T], 0, len(support))
	for x := range support {
		loops = append(loops, Pair[T]{From: x, To: x})
	}
	return r.Union(loops...)
}

// TransitivelyRedundantPairs returns the pairs whose individual removal does
// not change the size of the transitive closure.
func (r Relation[T]) TransitivelyRedundantPairs() []Pair[T] {
	want := r.TransitiveClosure().Len()
	var redundant []Pair[T]
	for _, p := range r.Pairs() {
		if r.Without(p).TransitiveClosure().Len() == want {
			redundant = append(redundant, p)
		}
	}
	return redundant
}

// TransitivelyMinimal returns r without its transitively redundant pairs.
// For acyclic relations the result is the transitive reduction of r and has
// the same transitive closure.
func (r Relation[T]) TransitivelyMinimal() Relation[T] {
	return r.Without(r.TransitivelyRedundantPairs()...)
}

// AntisymmetricDedupe keeps a single direction of every symmetric pair.
// Where both (a,b) and (b,a) are present only the one with a < b survives;
// one-directional pairs and self-loops are kept unchanged.
func (r Relation[T]) AntisymmetricDedupe() Relation[T] {
	return r.filter(func(p Pair[T]) bool {
		if p.From == p.To || !r.Contains(p.To, p.From) {
			return true
		}
		return cmp.Less(p.From, p.To)
	})
}
