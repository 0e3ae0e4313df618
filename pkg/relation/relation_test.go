package relation

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func chain() Relation[string] {
	return New(P("A", "B"), P("B", "C"), P("A", "C"))
}

func TestNew_Dedupes(t *testing.T) {
	r := New(P("a", "b"), P("a", "b"), P("b", "a"))
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestZeroValue(t *testing.T) {
	var r Relation[string]
	if !r.IsEmpty() {
		t.Error("zero Relation should be empty")
	}
	if got := r.TransitiveClosure(); !got.IsEmpty() {
		t.Errorf("TransitiveClosure() of empty = %v", got)
	}
	if got := r.Union(P("x", "y")); got.Len() != 1 {
		t.Errorf("Union() on zero value = %v", got)
	}
}

func TestUnion_DoesNotMutate(t *testing.T) {
	r := New(P("a", "b"))
	_ = r.Union(P("b", "c"))
	_ = r.UnionWith(New(P("c", "d")))
	if r.Len() != 1 {
		t.Errorf("receiver mutated: %v", r)
	}
}

func TestDomainRangeSupport(t *testing.T) {
	r := New(P("a", "b"), P("b", "c"))
	if got := r.Domain(); !got.Equal(NewSet("a", "b")) {
		t.Errorf("Domain() = %v", got.Sorted())
	}
	if got := r.Range(); !got.Equal(NewSet("b", "c")) {
		t.Errorf("Range() = %v", got.Sorted())
	}
	if got := r.Support(); !got.Equal(NewSet("a", "b", "c")) {
		t.Errorf("Support() = %v", got.Sorted())
	}
}

func TestRestrictions(t *testing.T) {
	r := New(P("a", "b"), P("b", "c"), P("c", "a"))
	s := NewSet("a", "b")

	tests := []struct {
		name string
		got  Relation[string]
		want Relation[string]
	}{
		{"Restrict", r.Restrict(s), New(P("a", "b"))},
		{"AntiRestrict", r.AntiRestrict(NewSet("a")), New(P("b", "c"))},
		{"DomainRestrict", r.DomainRestrict(s), New(P("a", "b"), P("b", "c"))},
		{"RangeRestrict", r.RangeRestrict(s), New(P("a", "b"), P("c", "a"))},
		{"DomainAntiRestrict", r.DomainAntiRestrict(s), New(P("c", "a"))},
		{"RangeAntiRestrict", r.RangeAntiRestrict(s), New(P("b", "c"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestImage(t *testing.T) {
	r := New(P("a", "b"), P("a", "c"), P("b", "d"))
	if got := r.Image(NewSet("a")); !got.Equal(NewSet("b", "c")) {
		t.Errorf("Image({a}) = %v", got.Sorted())
	}
	if got := r.Image(NewSet("z")); got.Len() != 0 {
		t.Errorf("Image({z}) = %v, want empty", got.Sorted())
	}
}

func TestTransitiveClosure_Chain(t *testing.T) {
	r := New(P("a", "b"), P("b", "c"), P("c", "d"))
	got := r.TransitiveClosure()
	want := New(P("a", "b"), P("b", "c"), P("c", "d"), P("a", "c"), P("b", "d"), P("a", "d"))
	if !got.Equal(want) {
		t.Errorf("TransitiveClosure() = %v, want %v", got, want)
	}
}

func TestTransitiveClosure_Cycle(t *testing.T) {
	r := New(P("a", "b"), P("b", "a"))
	got := r.TransitiveClosure()
	want := New(P("a", "b"), P("b", "a"), P("a", "a"), P("b", "b"))
	if !got.Equal(want) {
		t.Errorf("TransitiveClosure() = %v, want %v", got, want)
	}
}

func TestReflexiveClosure(t *testing.T) {
	r := New(P("a", "b"))
	got := r.ReflexiveClosure()
	want := New(P("a", "b"), P("a", "a"), P("b", "b"))
	if !got.Equal(want) {
		t.Errorf("ReflexiveClosure() = %v, want %v", got, want)
	}
}

func TestTransitivelyMinimal_Scenario(t *testing.T) {
	r := chain()

	redundant := r.TransitivelyRedundantPairs()
	if len(redundant) != 1 || redundant[0] != P("A", "C") {
		t.Errorf("TransitivelyRedundantPairs() = %v, want [(A,C)]", redundant)
	}

	reduced := r.TransitivelyMinimal()
	if !reduced.Equal(New(P("A", "B"), P("B", "C"))) {
		t.Errorf("TransitivelyMinimal() = %v", reduced)
	}
	if !reduced.TransitiveClosure().Equal(r.TransitiveClosure()) {
		t.Error("closure changed by reduction")
	}
	if !r.TransitiveClosure().Equal(chain()) {
		t.Errorf("TransitiveClosure() = %v, want %v", r.TransitiveClosure(), chain())
	}
}

func TestAntisymmetricDedupe_Scenario(t *testing.T) {
	r := New(P("X", "Y"), P("Y", "X"))
	got := r.AntisymmetricDedupe()
	if got.Len() != 1 {
		t.Fatalf("AntisymmetricDedupe() = %v, want exactly one pair", got)
	}
	if !got.Contains("X", "Y") {
		t.Errorf("AntisymmetricDedupe() = %v, want (X,Y)", got)
	}
}

func TestAntisymmetricDedupe_KeepsOneWayAndLoops(t *testing.T) {
	r := New(P("a", "b"), P("c", "c"), P("d", "e"), P("e", "d"))
	got := r.AntisymmetricDedupe()
	want := New(P("a", "b"), P("c", "c"), P("d", "e"))
	if !got.Equal(want) {
		t.Errorf("AntisymmetricDedupe() = %v, want %v", got, want)
	}
}

func TestPairs_Sorted(t *testing.T) {
	r := New(P("b", "a"), P("a", "c"), P("a", "b"))
	got := fmt.Sprint(r.Pairs())
	if got != "[(a,b) (a,c) (b,a)]" {
		t.Errorf("Pairs() = %s", got)
	}
}

// =============================================================================
// Properties over generated relations
// =============================================================================

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("m%02d", i)
	}
	return out
}

// randomRelation draws pairs over n identifiers with probability p.
// When acyclic is set only pairs (i, j) with i < j are drawn.
func randomRelation(rng *rand.Rand, n int, p float64, acyclic bool) Relation[string] {
	names := ids(n)
	var pairs []Pair[string]
	for i := range names {
		for j := range names {
			if acyclic && i >= j {
				continue
			}
			if rng.Float64() < p {
				pairs = append(pairs, P(names[i], names[j]))
			}
		}
	}
	return New(pairs...)
}

const propertyRuns = 50

func TestProperty_ClosureIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < propertyRuns; i++ {
		r := randomRelation(rng, 8, 0.2, false)
		once := r.TransitiveClosure()
		if twice := once.TransitiveClosure(); !twice.Equal(once) {
			t.Fatalf("closure not idempotent for %v", r)
		}
	}
}

func TestProperty_ReflexiveSuperset(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < propertyRuns; i++ {
		r := randomRelation(rng, 8, 0.2, false)
		rc := r.ReflexiveClosure()
		for _, p := range r.Pairs() {
			if !rc.Contains(p.From, p.To) {
				t.Fatalf("ReflexiveClosure() lost %v", p)
			}
		}
		for x := range r.Support() {
			if !rc.Contains(x, x) {
				t.Fatalf("ReflexiveClosure() missing (%s,%s)", x, x)
			}
		}
	}
}

func TestProperty_MinimalPreservesReachability(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < propertyRuns; i++ {
		r := randomRelation(rng, 7, 0.35, true)
		reduced := r.TransitivelyMinimal()
		if !reduced.TransitiveClosure().Equal(r.TransitiveClosure()) {
			t.Fatalf("reduction of %v changed reachability: %v", r, reduced)
		}
	}
}

func TestProperty_MinimalIrredundant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < propertyRuns; i++ {
		r := randomRelation(rng, 7, 0.35, true)
		reduced := r.TransitivelyMinimal()
		want := reduced.TransitiveClosure().Len()
		for _, p := range reduced.Pairs() {
			if reduced.Without(p).TransitiveClosure().Len() == want {
				t.Fatalf("pair %v of %v is still redundant", p, reduced)
			}
		}
	}
}

func TestProperty_DedupeIdempotentAndExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < propertyRuns; i++ {
		r := randomRelation(rng, 8, 0.3, false)
		once := r.AntisymmetricDedupe()
		if twice := once.AntisymmetricDedupe(); !twice.Equal(once) {
			t.Fatalf("dedupe not idempotent for %v", r)
		}
		for _, p := range r.Pairs() {
			if p.From == p.To || !r.Contains(p.To, p.From) {
				continue
			}
			fwd, back := once.Contains(p.From, p.To), once.Contains(p.To, p.From)
			if fwd == back {
				t.Fatalf("symmetric pair %v: kept forward=%v backward=%v", p, fwd, back)
			}
		}
	}
}
