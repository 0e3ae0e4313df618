package curriculum

import (
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/relation"
)

// Programme groups module identifiers by year and marks the required ones.
//
// A Programme is never modified after construction.
type Programme struct {
	name     string
	years    []relation.Set[string]
	required relation.Set[string]
	yearOf   map[string]int
}

// NewProgramme builds a programme from ordered year-groups and a required set.
func NewProgramme(name string, years [][]string, required []string) *Programme {
	sets := make([]relation.Set[string], len(years))
	for i, y := range years {
		sets[i] = relation.NewSet(y...)
	}
	return newProgramme(name, sets, relation.NewSet(required...))
}

func newProgramme(name string, years []relation.Set[string], required relation.Set[string]) *Programme {
	p := &Programme{
		name:     name,
		years:    years,
		required: required,
		yearOf:   make(map[string]int),
	}
	// Later years overwrite earlier ones; Conflicts reports the overlap.
	for i, y := range years {
		for id := range y {
			p.yearOf[id] = i
		}
	}
	return p
}

// Name returns the programme name.
func (p *Programme) Name() string { return p.name }

// YearCount returns the number of year-groups.
func (p *Programme) YearCount() int { return len(p.years) }

// Years returns a copy of the year-groups in order.
func (p *Programme) Years() []relation.Set[string] {
	out := make([]relation.Set[string], len(p.years))
	for i, y := range p.years {
		out[i] = y.Clone()
	}
	return out
}

// Required returns a copy of the required set.
func (p *Programme) Required() relation.Set[string] { return p.required.Clone() }

// AllModules returns the union of all year-groups.
func (p *Programme) AllModules() relation.Set[string] {
	all := make(relation.Set[string])
	for _, y := range p.years {
		for id := range y {
			all[id] = struct{}{}
		}
	}
	return all
}

// YearOf returns the zero-based year of module id.
// It fails with an UNKNOWN_MODULE error when id is in no year-group.
func (p *Programme) YearOf(id string) (int, error) {
	y, ok := p.yearOf[id]
	if !ok {
		return 0, errors.UnknownModuleIn(p.name, id)
	}
	return y, nil
}

// Conflicts returns the modules listed in more than one year-group, mapped to
// every year they appear in.
func (p *Programme) Conflicts() map[string][]int {
	seen := make(map[string][]int)
	for i, y := range p.years {
		for id := range y {
			seen[id] = append(seen[id], i)
		}
	}
	out := make(map[string][]int)
	for id, ys := range seen {
		if len(ys) > 1 {
			out[id] = ys
		}
	}
	return out
}

// Include returns a new programme named like p whose years are the positional
// union of p's and others' years and whose required set is the union of all
// required sets. A shorter sequence contributes empty trailing years, so the
// result does not depend on the order of others.
func (p *Programme) Include(others ...*Programme) *Programme {
	return p.merge(others, func(a, b relation.Set[string]) relation.Set[string] { return a.Union(b) })
}

// Choice is like Include but keeps only the modules required by every
// programme: the result describes alternative pathways of which a student
// follows one.
func (p *Programme) Choice(others ...*Programme) *Programme {
	return p.merge(others, func(a, b relation.Set[string]) relation.Set[string] { return a.Intersect(b) })
}

func (p *Programme) merge(others []*Programme, required func(a, b relation.Set[string]) relation.Set[string]) *Programme {
	years := p.Years()
	req := p.Required()
	for _, o := range others {
		for len(years) < len(o.years) {
			years = append(years, relation.NewSet[string]())
		}
		for i, y := range o.years {
			years[i] = years[i].Union(y)
		}
		req = required(req, o.required)
	}
	return newProgramme(p.name, years, req)
}
