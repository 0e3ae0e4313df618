package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/relation"
)

func TestBuildDependencies(t *testing.T) {
	modules := map[string]ModuleSpec{
		"C": {Pre: []Dependency{Single("B")}, Excl: []Dependency{Single("D")}},
		"B": {Pre: []Dependency{Single("A")}, Co: []Dependency{Single("E")}},
		"D": {Excl: []Dependency{Single("C")}, Sug: []Dependency{Single("A")}},
	}

	d := BuildDependencies(modules)

	assert.True(t, d.Relation(Prerequisite).Equal(relation.New(relation.P("C", "B"), relation.P("B", "A"))))
	assert.True(t, d.Relation(Corequisite).Equal(relation.New(relation.P("B", "E"))))
	assert.True(t, d.Relation(Suggestion).Equal(relation.New(relation.P("D", "A"))))
	assert.True(t, d.Relation(Exclusion).Equal(relation.New(relation.P("C", "D"), relation.P("D", "C"))))
	assert.Empty(t, d.Choices())
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, d.Referenced().Sorted())
	assert.Equal(t, 6, d.EdgeCount())
}

func TestBuildDependencies_ChoiceGroups(t *testing.T) {
	modules := map[string]ModuleSpec{
		"X": {Pre: []Dependency{
			Single("A"),
			OneOf("C", "B"),
			OneOf("B", "C"), // duplicate group
			OneOf("D"),      // degenerate choice is a plain pair
			OneOf(),         // ignored
		}},
	}

	d := BuildDependencies(modules)

	assert.True(t, d.Relation(Prerequisite).Equal(relation.New(relation.P("X", "A"), relation.P("X", "D"))))
	require.Len(t, d.Choices(), 1)
	assert.Equal(t, ChoiceGroup{Kind: Prerequisite, From: "X", Targets: []string{"B", "C"}}, d.Choices()[0])
	assert.Empty(t, d.Choices(Corequisite))
	// the spec was not reordered in place
	assert.Equal(t, []string{"C", "B"}, modules["X"].Pre[1].OneOf)
}

func TestChoiceGroup_Restrict(t *testing.T) {
	g := ChoiceGroup{Kind: Prerequisite, From: "X", Targets: []string{"A", "B"}}

	got, ok := g.Restrict(relation.NewSet("X", "B"))
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, got.Targets)

	_, ok = g.Restrict(relation.NewSet("A", "B"))
	assert.False(t, ok, "source outside universe")
	_, ok = g.Restrict(relation.NewSet("X"))
	assert.False(t, ok, "no target left")
}

func TestNewCatalog_ResolvesIncludesTransitively(t *testing.T) {
	progs := map[string]ProgrammeSpec{
		"joint": {Years: [][]string{{"J1"}}, Include: []string{"maths"}},
		"maths": {Years: [][]string{{"M1"}, {"M2"}}, Required: []string{"M1"}, Include: []string{"core"}},
		"core":  {Years: [][]string{{"C1"}}, Required: []string{"C1"}},
	}

	c, err := NewCatalog(nil, progs)
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "joint", "maths"}, c.ProgrammeNames())
	joint, err := c.Programme("joint")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"C1", "J1", "M1"}, {"M2"}}, yearsOf(joint))
	assert.Equal(t, []string{"C1", "M1"}, joint.Required().Sorted())
}

func TestNewCatalog_UnknownInclude(t *testing.T) {
	_, err := NewCatalog(nil, map[string]ProgrammeSpec{
		"a": {Include: []string{"ghost"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownProgramme))
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestNewCatalog_IncludeCycle(t *testing.T) {
	_, err := NewCatalog(nil, map[string]ProgrammeSpec{
		"a": {Include: []string{"b"}},
		"b": {Include: []string{"a"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIncludeCycle))
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestNewCatalog_ResolvesChoice(t *testing.T) {
	progs := map[string]ProgrammeSpec{
		"cs":   {Years: [][]string{{"CS1"}}, Required: []string{"CS1"}, Include: []string{"core"}, Choice: []string{"ai", "sec"}},
		"core": {Years: [][]string{{"C1"}}, Required: []string{"C1"}},
		"ai":   {Years: [][]string{{"A1", "X"}, {"A2"}}, Required: []string{"A1", "X"}},
		"sec":  {Years: [][]string{{"S1", "X"}}, Required: []string{"S1", "X"}},
	}

	c, err := NewCatalog(nil, progs)
	require.NoError(t, err)

	cs, err := c.Programme("cs")
	require.NoError(t, err)
	assert.Equal(t, "cs", cs.Name())
	assert.Equal(t, [][]string{{"A1", "C1", "CS1", "S1", "X"}, {"A2"}}, yearsOf(cs))
	// only modules every alternative requires
	assert.Equal(t, []string{"C1", "CS1", "X"}, cs.Required().Sorted())
}

func TestNewCatalog_ChoiceErrors(t *testing.T) {
	_, err := NewCatalog(nil, map[string]ProgrammeSpec{
		"a": {Choice: []string{"b", "ghost"}},
		"b": {},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownProgramme))
	assert.Contains(t, err.Error(), `"ghost"`)

	_, err = NewCatalog(nil, map[string]ProgrammeSpec{
		"a": {Choice: []string{"b"}},
		"b": {Include: []string{"a"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeIncludeCycle))
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestNewCatalog_InvalidModuleID(t *testing.T) {
	tests := []struct {
		name       string
		modules    map[string]ModuleSpec
		programmes map[string]ProgrammeSpec
		want       string
	}{
		{"module key", map[string]ModuleSpec{"bad\nid": {}}, nil, "control characters"},
		{"dependency", map[string]ModuleSpec{"A": {Pre: []Dependency{Single(`a"b`)}}}, nil, `module "A" pre list`},
		{"choice alternative", map[string]ModuleSpec{"A": {Excl: []Dependency{OneOf("B", `c\d`)}}}, nil, `module "A" excl list`},
		{"year", nil, map[string]ProgrammeSpec{"p": {Years: [][]string{{"A"}, {`a"b`}}}}, `programme "p" year 2`},
		{"required", nil, map[string]ProgrammeSpec{"p": {Required: []string{""}}}, `programme "p" required`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.modules, tt.programmes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidModuleID))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCatalog_UnknownProgramme(t *testing.T) {
	c, err := NewCatalog(nil, map[string]ProgrammeSpec{"a": {}})
	require.NoError(t, err)
	_, err = c.Programme("b")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownProgramme))
}

func TestCatalog_Validate(t *testing.T) {
	c, err := NewCatalog(
		map[string]ModuleSpec{
			"A": {Pre: []Dependency{Single("Ghost")}},
		},
		map[string]ProgrammeSpec{
			"bsc": {Years: [][]string{{"A"}, {"A", "B"}}, Required: []string{"Missing"}},
		},
	)
	require.NoError(t, err)

	findings := c.Validate()
	require.Len(t, findings, 3)
	assert.True(t, errors.Is(findings[0], errors.ErrCodeUnknownModule))
	assert.Contains(t, findings[0].Error(), `"Ghost"`)
	assert.Contains(t, findings[1].Error(), `required module "Missing"`)
	assert.True(t, errors.Is(findings[2], errors.ErrCodeInvalidInput))
	assert.Contains(t, findings[2].Error(), "appears in years 1, 2; using year 2")
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"pre", "prerequisite"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Prerequisite, k)
	}
	_, err := ParseKind("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidKind))
	assert.Equal(t, "mutual exclusion", Exclusion.Name())
}
