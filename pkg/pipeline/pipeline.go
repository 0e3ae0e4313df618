// Package pipeline provides the load → compute → render pipeline behind the
// modgraph CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and resolve the curriculum document
//  2. Compute: derive the visible subgraph of each requested programme
//  3. Render: emit DOT, or JSON, or rasterise the DOT with Graphviz
//
// Each stage can be run independently or as part of the complete pipeline.
// Programmes are computed independently: when every programme is requested,
// a failing programme is reported in [Result.Failures] and left out of the
// output while the others still render.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "modules.json",
//	    Programme: "bsc-cs",
//	    Format:    "svg",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
	mio "github.com/matzehuels/modgraph/pkg/io"
	"github.com/matzehuels/modgraph/pkg/relation"
	"github.com/matzehuels/modgraph/pkg/render"
	"github.com/matzehuels/modgraph/pkg/render/nodelink"
	"github.com/matzehuels/modgraph/pkg/subgraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config
// =============================================================================

const (
	// DefaultRankDir lays years out right to left.
	DefaultRankDir = "RL"

	// DefaultRankSep is the gap between ranks in inches.
	DefaultRankSep = 1.5

	// DefaultFormat is the output format.
	DefaultFormat = render.FormatDOT
)

// DefaultInput is the curriculum document read when none is given.
const DefaultInput = mio.DefaultFile

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Input  string `json:"input,omitempty"`
	Strict bool   `json:"strict,omitempty"` // fail when the catalog has validation findings

	// Compute options
	Programme    string            `json:"programme,omitempty"` // empty means every programme
	Kinds        []curriculum.Kind `json:"kinds,omitempty"`     // nil means all; empty means none
	HideRequired bool              `json:"hide_required,omitempty"`
	HideOrphans  bool              `json:"hide_orphans,omitempty"`
	Whitelist    []string          `json:"whitelist,omitempty"`

	// Render options
	Format      render.Format `json:"format,omitempty"`
	RankDir     string        `json:"rankdir,omitempty"`
	RankSep     float64       `json:"ranksep,omitempty"`
	YearColours []string      `json:"year_colours,omitempty"`
	Refresh     bool          `json:"refresh,omitempty"` // ignore cached artifacts

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Catalog is the loaded curriculum.
	Catalog *curriculum.Catalog

	// Graphs are the successfully computed subgraphs, in programme order.
	Graphs []*subgraph.Subgraph

	// Failures lists programmes that could not be computed.
	Failures []subgraph.Failure

	// DOT is the generated graph description.
	DOT string

	// Artifact is the output in the requested format.
	Artifact []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount    int
	ProgrammeCount int
	NodeCount      int
	EdgeCount      int
	LoadTime       time.Duration
	ComputeTime    time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := render.ParseFormat(format)
	return err
}

// ValidateKinds checks that every kind is known.
func ValidateKinds(kinds []curriculum.Kind) error {
	return subgraph.Options{Kinds: kinds}.Validate()
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if err := errors.ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	if o.RankSep < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ranksep must not be negative, got %g", o.RankSep)
	}
	if err := ValidateKinds(o.Kinds); err != nil {
		return err
	}
	if o.Programme != "" {
		if err := errors.ValidateProgrammeName(o.Programme); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetDefaults fills in unset fields.
func (o *Options) SetDefaults() {
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Kinds == nil {
		o.Kinds = slices.Clone(curriculum.AllKinds)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.RankSep == 0 {
		o.RankSep = DefaultRankSep
	}
	if len(o.YearColours) == 0 {
		o.YearColours = slices.Clone(nodelink.DefaultYearColours)
	}
}

// SubgraphOptions returns the compute-stage options.
func (o *Options) SubgraphOptions() subgraph.Options {
	opts := subgraph.Options{
		Kinds:        slices.Clone(o.Kinds),
		HideRequired: o.HideRequired,
		HideOrphans:  o.HideOrphans,
	}
	if len(o.Whitelist) > 0 {
		opts.Whitelist = relation.NewSet(o.Whitelist...)
	}
	return opts
}

// DOTOptions returns the DOT generation options.
func (o *Options) DOTOptions() nodelink.Options {
	return nodelink.Options{
		RankDir:     o.RankDir,
		RankSep:     o.RankSep,
		YearColours: slices.Clone(o.YearColours),
	}
}

// KindsExcept returns every kind not listed in suppressed, in canonical order.
// The result is never nil, so suppressing every kind draws no edges.
func KindsExcept(suppressed ...curriculum.Kind) []curriculum.Kind {
	out := make([]curriculum.Kind, 0, len(curriculum.AllKinds))
	for _, k := range curriculum.AllKinds {
		if !slices.Contains(suppressed, k) {
			out = append(out, k)
		}
	}
	return out
}
