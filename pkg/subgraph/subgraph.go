package subgraph

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	apperr "github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/relation"
)

// Options selects what is drawn.
type Options struct {
	Kinds        []curriculum.Kind    // active dependency kinds; empty means none
	HideRequired bool                 // drop the programme's required modules
	HideOrphans  bool                 // drop modules touching no drawn edge
	Whitelist    relation.Set[string] // when non-empty, draw only what it implies
}

// AllKinds returns Options with every dependency kind active.
func AllKinds() Options {
	return Options{Kinds: slices.Clone(curriculum.AllKinds)}
}

// Validate checks that every kind is known.
func (o Options) Validate() error {
	for _, k := range o.Kinds {
		if !k.Valid() {
			return apperr.New(apperr.ErrCodeInvalidKind, "unknown dependency kind %q", k)
		}
	}
	return nil
}

// Active reports whether kind k is selected.
func (o Options) Active(k curriculum.Kind) bool { return slices.Contains(o.Kinds, k) }

// Node is a drawn module with its zero-based year.
type Node struct {
	ID   string
	Year int
}

// Subgraph is the visible part of one programme.
type Subgraph struct {
	Programme string
	Universe  relation.Set[string]
	Kinds     []curriculum.Kind // active kinds, in curriculum.AllKinds order
	Edges     map[curriculum.Kind]relation.Relation[string]
	Choices   []curriculum.ChoiceGroup
	Years     []relation.Set[string] // programme years ∩ universe
	years     map[string]int
}

// Nodes returns the universe sorted by year, then identifier.
func (s *Subgraph) Nodes() []Node {
	out := make([]Node, 0, s.Universe.Len())
	for _, id := range s.Universe.Sorted() {
		out = append(out, Node{ID: id, Year: s.years[id]})
	}
	slices.SortStableFunc(out, func(a, b Node) int { return a.Year - b.Year })
	return out
}

// YearOf returns the year of a drawn module.
func (s *Subgraph) YearOf(id string) (int, bool) {
	y, ok := s.years[id]
	return y, ok
}

// NodeCount returns the number of drawn modules.
func (s *Subgraph) NodeCount() int { return s.Universe.Len() }

// EdgeCount returns the number of drawn pairs plus choice groups.
func (s *Subgraph) EdgeCount() int {
	n := len(s.Choices)
	for _, r := range s.Edges {
		n += r.Len()
	}
	return n
}

// IsEmpty reports whether nothing is drawn.
func (s *Subgraph) IsEmpty() bool { return s.Universe.Len() == 0 }

// Computer derives visible subgraphs from one set of dependencies.
//
// The reflexive-transitive closure of each kind, needed for whitelists, is
// memoized. A Computer is safe for concurrent use.
type Computer struct {
	deps    *curriculum.Dependencies
	implied *lru.Cache[curriculum.Kind, relation.Relation[string]]
}

// NewComputer returns a Computer over deps.
func NewComputer(deps *curriculum.Dependencies) *Computer {
	// Size is fixed and positive, so New cannot fail.
	cache, _ := lru.New[curriculum.Kind, relation.Relation[string]](len(curriculum.AllKinds))
	return &Computer{deps: deps, implied: cache}
}

// reach returns the reflexive-transitive closure of kind k.
func (c *Computer) reach(k curriculum.Kind) relation.Relation[string] {
	if r, ok := c.implied.Get(k); ok {
		return r
	}
	r := c.deps.Relation(k).TransitiveClosure().ReflexiveClosure()
	c.implied.Add(k, r)
	return r
}

// Implied returns every module reachable from a whitelisted module through
// any of kinds, including the whitelisted modules that take part in some
// relation of those kinds.
func (c *Computer) Implied(whitelist relation.Set[string], kinds []curriculum.Kind) relation.Set[string] {
	out := make(relation.Set[string])
	for _, k := range kinds {
		out = out.Union(c.reach(k).DomainRestrict(whitelist).Range())
	}
	return out
}

// Compute derives the visible subgraph of p.
func (c *Computer) Compute(p *curriculum.Programme, opts Options) (*Subgraph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	kinds := activeKinds(opts)

	universe := p.AllModules()
	if opts.HideRequired {
		universe = universe.Difference(p.Required())
	}
	if opts.Whitelist.Len() > 0 {
		universe = universe.Intersect(c.Implied(opts.Whitelist, kinds))
	}

	edges := make(map[curriculum.Kind]relation.Relation[string], len(kinds))
	for _, k := range kinds {
		edges[k] = c.deps.Relation(k).Restrict(universe)
	}
	if r, ok := edges[curriculum.Prerequisite]; ok {
		edges[curriculum.Prerequisite] = r.TransitivelyMinimal()
	}
	if r, ok := edges[curriculum.Exclusion]; ok {
		edges[curriculum.Exclusion] = r.AntisymmetricDedupe()
	}

	var choices []curriculum.ChoiceGroup
	for _, g := range c.deps.Choices(kinds...) {
		if rg, ok := g.Restrict(universe); ok {
			choices = append(choices, rg)
		}
	}

	if opts.HideOrphans {
		touched := make(relation.Set[string])
		for _, r := range edges {
			touched = touched.Union(r.Support())
		}
		for _, g := range choices {
			touched[g.From] = struct{}{}
			for _, t := range g.Targets {
				touched[t] = struct{}{}
			}
		}
		universe = universe.Intersect(touched)
		// Edges and choices already lie inside the touched set.
	}

	years := p.Years()
	for i := range years {
		years[i] = years[i].Intersect(universe)
	}

	yearOf := make(map[string]int, universe.Len())
	for id := range universe {
		y, err := p.YearOf(id)
		if err != nil {
			return nil, err
		}
		yearOf[id] = y
	}

	return &Subgraph{
		Programme: p.Name(),
		Universe:  universe,
		Kinds:     kinds,
		Edges:     edges,
		Choices:   choices,
		Years:     years,
		years:     yearOf,
	}, nil
}

// activeKinds returns the selected kinds in curriculum.AllKinds order,
// without duplicates.
func activeKinds(opts Options) []curriculum.Kind {
	var out []curriculum.Kind
	for _, k := range curriculum.AllKinds {
		if opts.Active(k) {
			out = append(out, k)
		}
	}
	return out
}

// Failure records a programme whose subgraph could not be computed.
type Failure struct {
	Programme string
	Err       error
}

func (f Failure) Error() string { return fmt.Sprintf("programme %q: %v", f.Programme, f.Err) }

func (f Failure) Unwrap() error { return f.Err }

// ComputeAll computes every programme independently. A failing programme does
// not stop the others: successes are returned alongside one Failure per
// failed programme.
func (c *Computer) ComputeAll(programmes []*curriculum.Programme, opts Options) ([]*Subgraph, []Failure) {
	var (
		out      []*Subgraph
		failures []Failure
	)
	for _, p := range programmes {
		s, err := c.Compute(p, opts)
		if err != nil {
			failures = append(failures, Failure{Programme: p.Name(), Err: err})
			continue
		}
		out = append(out, s)
	}
	return out, failures
}
