package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/pipeline"
	"github.com/matzehuels/modgraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
// Zero values fall back to the loaded configuration.
type renderOpts struct {
	input     string   // curriculum document
	whitelist []string // modules after "--"
	output    string   // output file; empty means stdout
	programme string   // single programme; empty means all
	format    string   // dot, svg, png, jpg or json
	rankDir   string   // LR, RL, TB or BT
	rankSep   float64  // gap between ranks in inches

	noPre, noCo, noSug, noExcl bool // suppressed kinds

	hideRequired bool
	hideOrphans  bool
	noCache      bool
	watch        bool
	strict       bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file] [-- module...]",
		Short: "Render programme dependency graphs",
		Long: `Render the visible dependency graph of one programme, or of every programme,
as a single Graphviz digraph with one rank per year.

Modules listed after "--" form a whitelist: only modules they depend on
(through the shown relation kinds) are drawn.`,
		Example: `  modgraph render modules.json
  modgraph render -p bsc-cs -S -E -f svg -o bsc-cs.svg
  modgraph render modules.toml -- CS301 CS302`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, modules := splitArgs(args, cmd.ArgsLenAtDash())
			if len(files) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "expected at most one input file, got %d", len(files))
			}
			if len(files) == 1 {
				opts.input = files[0]
			}
			opts.whitelist = modules

			popts, err := c.pipelineOptions(&opts)
			if err != nil {
				return err
			}
			if opts.watch {
				return c.watchRender(cmd.Context(), popts, &opts, cmd.OutOrStdout())
			}
			return c.runRender(cmd.Context(), popts, &opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.noPre, "no-prerequisites", "P", false, "hide prerequisite edges")
	f.BoolVarP(&opts.noCo, "no-corequisites", "C", false, "hide corequisite edges")
	f.BoolVarP(&opts.noSug, "no-suggestions", "S", false, "hide suggestion edges")
	f.BoolVarP(&opts.noExcl, "no-exclusions", "E", false, "hide exclusion edges")
	f.BoolVarP(&opts.hideRequired, "hide-required", "R", false, "hide required modules")
	f.BoolVarP(&opts.hideOrphans, "hide-orphans", "O", false, "hide modules without edges")
	f.StringVarP(&opts.programme, "programme", "p", "", "render only this programme")
	f.StringVarP(&opts.rankDir, "rankdir", "r", "", "rank direction: LR, RL (default), TB, BT")
	f.Float64Var(&opts.rankSep, "ranksep", 0, "gap between years in inches (default 1.5)")
	f.StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg, png, jpg, json")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.watch, "watch", false, "re-render whenever the input file changes")
	f.BoolVar(&opts.strict, "strict", false, "fail when the curriculum has validation findings")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(render.Formats))
		for i, f := range render.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rankdir", cobra.FixedCompletions(
		[]string{"LR", "RL", "TB", "BT"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// splitArgs separates positional arguments before "--" from those after it.
// dash is cobra's ArgsLenAtDash: -1 when no "--" was given.
func splitArgs(args []string, dash int) (before, after []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

// pipelineOptions merges flags over the loaded configuration and validates
// the result.
func (c *CLI) pipelineOptions(opts *renderOpts) (pipeline.Options, error) {
	cfg := c.Config
	var suppressed []curriculum.Kind
	for k, off := range map[curriculum.Kind]bool{
		curriculum.Prerequisite: opts.noPre,
		curriculum.Corequisite:  opts.noCo,
		curriculum.Suggestion:   opts.noSug,
		curriculum.Exclusion:    opts.noExcl,
	} {
		if off {
			suppressed = append(suppressed, k)
		}
	}

	for _, id := range opts.whitelist {
		if err := errors.ValidateModuleID(id); err != nil {
			return pipeline.Options{}, err
		}
	}

	popts := pipeline.Options{
		Input:        firstNonEmpty(opts.input, cfg.Input),
		Strict:       opts.strict || cfg.Strict,
		Programme:    firstNonEmpty(opts.programme, cfg.Programme),
		Kinds:        pipeline.KindsExcept(suppressed...),
		HideRequired: opts.hideRequired,
		HideOrphans:  opts.hideOrphans,
		Whitelist:    opts.whitelist,
		Format:       render.Format(firstNonEmpty(opts.format, cfg.Format)),
		RankDir:      strings.ToUpper(firstNonEmpty(opts.rankDir, cfg.RankDir)),
		RankSep:      opts.rankSep,
		YearColours:  cfg.YearColours,
	}
	if popts.RankSep == 0 {
		popts.RankSep = cfg.RankSep
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return popts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// errProgrammesFailed reports that some programmes were left out of the output.
func errProgrammesFailed(n int) error {
	return errors.New(errors.ErrCodeInvalidInput, "%d programme(s) could not be rendered", n)
}

// runRender executes the pipeline once and writes the artifact. Programmes
// that fail are reported on the status stream and make the run fail after
// the remaining programmes have been written.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts *renderOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if popts.Format.Rasterised() {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s with Graphviz...", popts.Format))
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		if err != nil {
			spin.StopWithError("Rendering failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}

	placed := result.Catalog.Placed()
	for _, id := range popts.Whitelist {
		if _, ok := result.Catalog.Module(id); !ok && !placed.Contains(id) {
			printWarning("module %q is not in the curriculum", id)
		}
	}
	for _, f := range result.Failures {
		printError("%s", f.Error())
	}

	if err := writeArtifact(opts.output, stdout, result.Artifact); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d programme(s)", len(result.Graphs)))
	if opts.output != "" {
		printSuccess("Wrote %s", popts.Format)
		printFile(opts.output)
		printStats(len(result.Graphs), result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	}

	if len(result.Failures) > 0 {
		return errProgrammesFailed(len(result.Failures))
	}
	return nil
}

// writeArtifact writes data to path, or to stdout when path is empty.
func writeArtifact(path string, stdout io.Writer, data []byte) error {
	out, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput returns a writer for the given path, or stdout if path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
