package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modgraph/pkg/cache"
	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
	mio "github.com/matzehuels/modgraph/pkg/io"
	"github.com/matzehuels/modgraph/pkg/observability"
	"github.com/matzehuels/modgraph/pkg/render"
	"github.com/matzehuels/modgraph/pkg/render/nodelink"
	"github.com/matzehuels/modgraph/pkg/subgraph"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete load → compute → render pipeline.
//
// A failure to load, an unknown explicit programme, or a failure of the
// single requested programme aborts the run. When every programme is
// requested, failing programmes are returned in Result.Failures and the
// rest are rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	cat, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Catalog = cat
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ModuleCount = len(cat.Modules())
	result.Stats.ProgrammeCount = len(cat.ProgrammeNames())

	r.Logger.Info("loaded curriculum",
		"modules", result.Stats.ModuleCount,
		"programmes", result.Stats.ProgrammeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Compute
	computeStart := time.Now()
	graphs, failures, err := r.Compute(ctx, cat, opts)
	if err != nil {
		return nil, err
	}
	result.Graphs = graphs
	result.Failures = failures
	result.Stats.ComputeTime = time.Since(computeStart)
	for _, g := range graphs {
		result.Stats.NodeCount += g.NodeCount()
		result.Stats.EdgeCount += g.EdgeCount()
	}

	r.Logger.Info("computed subgraphs",
		"programmes", len(graphs),
		"failed", len(failures),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Render
	renderStart := time.Now()
	result.DOT = nodelink.ToDOT(graphs, opts.DOTOptions())
	artifact, hit, err := r.RenderWithCacheInfo(ctx, graphs, result.DOT, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the curriculum document named by opts.Input. With opts.Strict
// set, any validation finding fails the load.
func (r *Runner) Load(ctx context.Context, opts Options) (*curriculum.Catalog, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)

	start := time.Now()
	cat, err := mio.ImportFile(opts.Input)
	if err == nil && opts.Strict {
		err = strictCheck(cat)
	}
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Input, len(cat.Modules()), len(cat.ProgrammeNames()), time.Since(start), nil)
	return cat, nil
}

func strictCheck(cat *curriculum.Catalog) error {
	findings := cat.Validate()
	if len(findings) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, stderrors.Join(findings...),
		"%d validation finding(s)", len(findings))
}

// Compute derives the visible subgraph of the requested programme, or of
// every programme when opts.Programme is empty. The returned error is set
// only for an unknown or failing explicit programme.
func (r *Runner) Compute(ctx context.Context, cat *curriculum.Catalog, opts Options) ([]*subgraph.Subgraph, []subgraph.Failure, error) {
	opts.SetDefaults()
	sopts := opts.SubgraphOptions()
	if err := sopts.Validate(); err != nil {
		return nil, nil, err
	}
	computer := subgraph.NewComputer(cat.Dependencies())

	if opts.Programme != "" {
		p, err := cat.Programme(opts.Programme)
		if err != nil {
			return nil, nil, err
		}
		g, err := r.computeOne(ctx, computer, p, sopts)
		if err != nil {
			return nil, nil, err
		}
		return []*subgraph.Subgraph{g}, nil, nil
	}

	var (
		graphs   []*subgraph.Subgraph
		failures []subgraph.Failure
	)
	for _, p := range cat.Programmes() {
		g, err := r.computeOne(ctx, computer, p, sopts)
		if err != nil {
			r.Logger.Warn("programme failed", "programme", p.Name(), "error", err)
			failures = append(failures, subgraph.Failure{Programme: p.Name(), Err: err})
			continue
		}
		graphs = append(graphs, g)
	}
	return graphs, failures, nil
}

func (r *Runner) computeOne(ctx context.Context, c *subgraph.Computer, p *curriculum.Programme, opts subgraph.Options) (*subgraph.Subgraph, error) {
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, p.Name())
	start := time.Now()

	g, err := c.Compute(p, opts)
	if err != nil {
		hooks.OnComputeComplete(ctx, p.Name(), 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnComputeComplete(ctx, p.Name(), g.NodeCount(), g.EdgeCount(), time.Since(start), nil)

	r.Logger.Debug("computed programme",
		"programme", p.Name(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())
	if g.IsEmpty() && len(opts.Whitelist) > 0 {
		r.Logger.Debug("whitelist implies no modules", "programme", p.Name())
	}
	return g, nil
}

// RenderWithCacheInfo produces the artifact for opts.Format and reports
// whether it came from the cache. Only Graphviz output is cached; DOT and
// JSON are cheaper to regenerate than to look up.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, graphs []*subgraph.Subgraph, dot string, opts Options) ([]byte, bool, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(opts.Format))
	start := time.Now()

	data, hit, err := r.render(ctx, graphs, dot, opts)
	hooks.OnRenderComplete(ctx, string(opts.Format), len(data), time.Since(start), err)
	return data, hit, err
}

func (r *Runner) render(ctx context.Context, graphs []*subgraph.Subgraph, dot string, opts Options) ([]byte, bool, error) {
	switch {
	case opts.Format == render.FormatDOT:
		return []byte(dot), false, nil
	case opts.Format == render.FormatJSON:
		var buf bytes.Buffer
		if err := mio.WriteJSON(graphs, &buf); err != nil {
			return nil, false, err
		}
		return buf.Bytes(), false, nil
	case opts.Format.Rasterised():
		return r.rasterise(ctx, dot, opts)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
	}
}

func (r *Runner) rasterise(ctx context.Context, dot string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey([]byte(dot), string(opts.Format))
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	data, err := nodelink.Render(ctx, dot, opts.Format)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, graphs []*subgraph.Subgraph, opts Options) ([]byte, error) {
	opts.SetDefaults()
	data, _, err := r.RenderWithCacheInfo(ctx, graphs, nodelink.ToDOT(graphs, opts.DOTOptions()), opts)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
