// Package relation provides an immutable binary relation over ordered
// identifiers, together with the small set algebra it needs.
//
// # Overview
//
// A [Relation] is a set of ordered pairs (a, b) meaning "a relates to b". The
// package attaches no meaning to a pair: callers decide whether a relation
// holds prerequisites, corequisites, suggestions or exclusions.
//
// Every operation returns a new value and leaves its receiver untouched, so a
// Relation (or a [Set]) can be shared freely between goroutines once built.
//
// # Closures and Reduction
//
// [Relation.TransitiveClosure] repeats a naive join until the number of pairs
// stops growing. Cyclic relations terminate because the pair set is bounded by
// the square of the support.
//
// [Relation.TransitivelyMinimal] removes every pair whose removal leaves the
// size of the transitive closure unchanged. For acyclic relations this is the
// transitive reduction: an edge A→C disappears when A→B→C already implies it.
//
// Both are polynomial and intended for small relations (tens to low hundreds
// of identifiers). The redundancy check recomputes a closure per pair.
//
// # Usage
//
//	r := relation.New(
//	    relation.P("A", "B"),
//	    relation.P("B", "C"),
//	    relation.P("A", "C"),
//	)
//	min := r.TransitivelyMinimal()          // {(A,B), (B,C)}
//	reach := r.TransitiveClosure().Image(relation.NewSet("A")) // {B, C}
package relation
