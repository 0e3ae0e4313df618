package curriculum

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/relation"
)

// ProgrammeSpec is a programme as written in configuration, before includes
// are resolved.
//
// Include merges other programmes in full. Choice names alternative
// pathways of which a student follows one: their years are merged like an
// include, but only modules required by every alternative become required.
type ProgrammeSpec struct {
	Years    [][]string `mapstructure:"years"`
	Required []string   `mapstructure:"required"`
	Include  []string   `mapstructure:"include"`
	Choice   []string   `mapstructure:"choice"`
}

// Catalog is a fully loaded curriculum: module specs, the dependency
// relations built from them and the resolved programmes.
type Catalog struct {
	modules    map[string]ModuleSpec
	deps       *Dependencies
	programmes map[string]*Programme
}

// NewCatalog builds dependency relations and resolves programme includes.
//
// Includes and choices resolve transitively: if A includes B and B includes
// C, A receives C's years too. It fails with INVALID_MODULE_ID when any
// module identifier is malformed, with UNKNOWN_PROGRAMME when an include or
// choice names a missing programme and with INCLUDE_CYCLE when they loop.
func NewCatalog(modules map[string]ModuleSpec, programmes map[string]ProgrammeSpec) (*Catalog, error) {
	for _, id := range slices.Sorted(maps.Keys(modules)) {
		if err := validateModule(id, modules[id]); err != nil {
			return nil, err
		}
	}

	r := &includeResolver{
		specs:    programmes,
		resolved: make(map[string]*Programme, len(programmes)),
		visiting: make(map[string]bool),
	}
	for _, name := range slices.Sorted(maps.Keys(programmes)) {
		if err := validateProgramme(name, programmes[name]); err != nil {
			return nil, err
		}
		if _, err := r.resolve(name, nil); err != nil {
			return nil, err
		}
	}

	return &Catalog{
		modules:    maps.Clone(modules),
		deps:       BuildDependencies(modules),
		programmes: r.resolved,
	}, nil
}

func validateModule(id string, spec ModuleSpec) error {
	if err := errors.ValidateModuleID(id); err != nil {
		return err
	}
	for _, k := range AllKinds {
		for _, d := range spec.List(k) {
			for _, target := range d.Modules() {
				if err := errors.ValidateModuleID(target); err != nil {
					return fmt.Errorf("module %q %s list: %w", id, k, err)
				}
			}
		}
	}
	return nil
}

func validateProgramme(name string, spec ProgrammeSpec) error {
	if err := errors.ValidateProgrammeName(name); err != nil {
		return err
	}
	for i, year := range spec.Years {
		for _, id := range year {
			if err := errors.ValidateModuleID(id); err != nil {
				return fmt.Errorf("programme %q year %d: %w", name, i+1, err)
			}
		}
	}
	for _, id := range spec.Required {
		if err := errors.ValidateModuleID(id); err != nil {
			return fmt.Errorf("programme %q required: %w", name, err)
		}
	}
	return nil
}

type includeResolver struct {
	specs    map[string]ProgrammeSpec
	resolved map[string]*Programme
	visiting map[string]bool
}

func (r *includeResolver) resolve(name string, path []string) (*Programme, error) {
	if p, ok := r.resolved[name]; ok {
		return p, nil
	}
	spec, ok := r.specs[name]
	if !ok {
		if len(path) > 0 {
			return nil, errors.New(errors.ErrCodeUnknownProgramme,
				"programme %q includes unknown programme %q", path[len(path)-1], name)
		}
		return nil, errors.UnknownProgramme(name)
	}
	path = append(path, name)
	if r.visiting[name] {
		return nil, errors.New(errors.ErrCodeIncludeCycle, "programme include cycle: %s", strings.Join(path, " -> "))
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	p := NewProgramme(name, spec.Years, spec.Required)
	included, err := r.resolveAll(spec.Include, path)
	if err != nil {
		return nil, err
	}
	alternatives, err := r.resolveAll(spec.Choice, path)
	if err != nil {
		return nil, err
	}
	if len(alternatives) > 0 {
		included = append(included, alternatives[0].Choice(alternatives[1:]...))
	}
	if len(included) > 0 {
		p = p.Include(included...)
	}
	r.resolved[name] = p
	return p, nil
}

func (r *includeResolver) resolveAll(names []string, path []string) ([]*Programme, error) {
	out := make([]*Programme, 0, len(names))
	for _, n := range names {
		q, err := r.resolve(n, path)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Dependencies returns the dependency relations of all modules.
func (c *Catalog) Dependencies() *Dependencies { return c.deps }

// Modules returns the module identifiers that have a spec entry, sorted.
func (c *Catalog) Modules() []string { return slices.Sorted(maps.Keys(c.modules)) }

// Module returns the spec of module id.
func (c *Catalog) Module(id string) (ModuleSpec, bool) {
	m, ok := c.modules[id]
	return m, ok
}

// ProgrammeNames returns every programme name, sorted.
func (c *Catalog) ProgrammeNames() []string { return slices.Sorted(maps.Keys(c.programmes)) }

// Programme returns the resolved programme called name.
func (c *Catalog) Programme(name string) (*Programme, error) {
	p, ok := c.programmes[name]
	if !ok {
		return nil, errors.UnknownProgramme(name)
	}
	return p, nil
}

// Programmes returns every resolved programme, sorted by name.
func (c *Catalog) Programmes() []*Programme {
	out := make([]*Programme, 0, len(c.programmes))
	for _, name := range c.ProgrammeNames() {
		out = append(out, c.programmes[name])
	}
	return out
}

// Placed returns every module that has a year in at least one programme.
func (c *Catalog) Placed() relation.Set[string] {
	out := make(relation.Set[string])
	for _, p := range c.programmes {
		out = out.Union(p.AllModules())
	}
	return out
}

// Validate reports configuration faults that rendering tolerates but a
// careful author wants to know about:
//   - dependencies on modules no programme places in a year (UNKNOWN_MODULE)
//   - required modules missing from their programme's years (UNKNOWN_MODULE)
//   - modules listed in more than one year of a programme (INVALID_INPUT)
//
// Findings are sorted by programme, then module.
func (c *Catalog) Validate() []error {
	var findings []error

	placed := c.Placed()
	for _, id := range c.deps.Referenced().Difference(placed).Sorted() {
		findings = append(findings, errors.New(errors.ErrCodeUnknownModule,
			"module %q is referenced as a dependency but has no assigned year in any programme", id))
	}

	for _, p := range c.Programmes() {
		for _, id := range p.required.Difference(p.AllModules()).Sorted() {
			findings = append(findings, errors.New(errors.ErrCodeUnknownModule,
				"programme %q: required module %q has no assigned year", p.Name(), id))
		}
		conflicts := p.Conflicts()
		for _, id := range slices.Sorted(maps.Keys(conflicts)) {
			years := conflicts[id]
			findings = append(findings, errors.New(errors.ErrCodeInvalidInput,
				"programme %q: module %q appears in years %s; using year %d",
				p.Name(), id, fmtYears(years), years[len(years)-1]+1))
		}
	}
	return findings
}

func fmtYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprint(y + 1)
	}
	return strings.Join(parts, ", ")
}
