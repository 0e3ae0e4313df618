package curriculum

import (
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/modgraph/pkg/relation"
)

// Dependency is one entry of a module's dependency list: either a single
// module or a group of alternatives of which one suffices.
type Dependency struct {
	Module string   // single dependency
	OneOf  []string // alternatives; used when Module is empty
}

// Single returns a dependency on one module.
func Single(id string) Dependency { return Dependency{Module: id} }

// OneOf returns a choice between alternatives.
func OneOf(ids ...string) Dependency { return Dependency{OneOf: ids} }

// IsChoice reports whether d offers alternatives.
func (d Dependency) IsChoice() bool { return d.Module == "" }

// Modules returns every module named by d.
func (d Dependency) Modules() []string {
	if d.IsChoice() {
		return d.OneOf
	}
	return []string{d.Module}
}

// ModuleSpec holds a module's dependency lists, one per kind.
type ModuleSpec struct {
	Pre  []Dependency `mapstructure:"pre"`
	Co   []Dependency `mapstructure:"co"`
	Sug  []Dependency `mapstructure:"sug"`
	Excl []Dependency `mapstructure:"excl"`
}

// List returns the dependency list for kind k.
func (m ModuleSpec) List(k Kind) []Dependency {
	switch k {
	case Prerequisite:
		return m.Pre
	case Corequisite:
		return m.Co
	case Suggestion:
		return m.Sug
	case Exclusion:
		return m.Excl
	}
	return nil
}

// ChoiceGroup is a variant-arity edge: From depends, under Kind, on exactly
// one of Targets. Targets are sorted and unique.
type ChoiceGroup struct {
	Kind    Kind
	From    string
	Targets []string
}

// Key identifies the group for sorting and deduplication.
func (g ChoiceGroup) Key() string {
	return string(g.Kind) + "\x00" + g.From + "\x00" + strings.Join(g.Targets, "\x00")
}

// Restrict keeps the targets inside universe. It reports false when From is
// outside universe or no target survives.
func (g ChoiceGroup) Restrict(universe relation.Set[string]) (ChoiceGroup, bool) {
	if !universe.Contains(g.From) {
		return ChoiceGroup{}, false
	}
	targets := lo.Filter(g.Targets, func(id string, _ int) bool { return universe.Contains(id) })
	if len(targets) == 0 {
		return ChoiceGroup{}, false
	}
	return ChoiceGroup{Kind: g.Kind, From: g.From, Targets: targets}, true
}

// Dependencies is the built form of all module dependency lists: one relation
// per kind plus the choice groups.
type Dependencies struct {
	relations map[Kind]relation.Relation[string]
	choices   []ChoiceGroup
}

// BuildDependencies turns module specs into one relation per kind, holding the
// pair (module, dependency) for every plain entry. Choice entries with two or
// more distinct alternatives become ChoiceGroups; a choice with a single
// alternative is a plain entry. The specs are not modified.
func BuildDependencies(modules map[string]ModuleSpec) *Dependencies {
	pairs := make(map[Kind][]relation.Pair[string])
	seen := make(map[string]bool)
	var choices []ChoiceGroup

	for _, id := range slices.Sorted(maps.Keys(modules)) {
		spec := modules[id]
		for _, k := range AllKinds {
			for _, dep := range spec.List(k) {
				targets := lo.Uniq(dep.Modules())
				switch {
				case len(targets) == 0:
					continue
				case len(targets) == 1:
					pairs[k] = append(pairs[k], relation.P(id, targets[0]))
				default:
					slices.Sort(targets)
					g := ChoiceGroup{Kind: k, From: id, Targets: targets}
					if !seen[g.Key()] {
						seen[g.Key()] = true
						choices = append(choices, g)
					}
				}
			}
		}
	}

	d := &Dependencies{
		relations: make(map[Kind]relation.Relation[string], len(AllKinds)),
		choices:   choices,
	}
	for _, k := range AllKinds {
		d.relations[k] = relation.New(pairs[k]...)
	}
	return d
}

// Relation returns the relation for kind k (empty for unknown kinds).
func (d *Dependencies) Relation(k Kind) relation.Relation[string] {
	return d.relations[k]
}

// Choices returns the choice groups, optionally limited to the given kinds.
func (d *Dependencies) Choices(kinds ...Kind) []ChoiceGroup {
	if len(kinds) == 0 {
		return slices.Clone(d.choices)
	}
	return lo.Filter(d.choices, func(g ChoiceGroup, _ int) bool { return slices.Contains(kinds, g.Kind) })
}

// Referenced returns every module named by any relation or choice group.
func (d *Dependencies) Referenced() relation.Set[string] {
	out := make(relation.Set[string])
	for _, r := range d.relations {
		out = out.Union(r.Support())
	}
	for _, g := range d.choices {
		out[g.From] = struct{}{}
		for _, t := range g.Targets {
			out[t] = struct{}{}
		}
	}
	return out
}

// EdgeCount returns the number of pairs across all kinds plus choice groups.
func (d *Dependencies) EdgeCount() int {
	n := len(d.choices)
	for _, r := range d.relations {
		n += r.Len()
	}
	return n
}
