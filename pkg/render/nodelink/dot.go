package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/render"
	"github.com/matzehuels/modgraph/pkg/subgraph"
)

// EdgeStyle holds the DOT attributes for one dependency kind.
type EdgeStyle struct {
	Colour       string // plain dependencies
	ChoiceColour string // "one of" groups
	ArrowHead    string
	Line         string
}

// EdgeStyles maps each kind to its edge attributes.
var EdgeStyles = map[curriculum.Kind]EdgeStyle{
	curriculum.Prerequisite: {Colour: "red3", ChoiceColour: "pink3", ArrowHead: "open", Line: "solid"},
	curriculum.Corequisite:  {Colour: "purple3", ChoiceColour: "plum3", ArrowHead: "empty", Line: "solid"},
	curriculum.Suggestion:   {Colour: "steelblue", ChoiceColour: "steelblue2", ArrowHead: "halfopen", Line: "dashed"},
	curriculum.Exclusion:    {Colour: "red", ChoiceColour: "red", ArrowHead: "none", Line: "bold"},
}

// DefaultYearColours are the node fill colours for years 1 to 4.
var DefaultYearColours = []string{"snow", "slategray1", "slategray2", "slategray3"}

// Options configures DOT generation.
type Options struct {
	RankDir     string   // LR, RL, TB or BT
	RankSep     float64  // gap between ranks, in inches
	YearColours []string // fill colour per year; later years wrap around
}

// DefaultOptions returns right-to-left ranks 1.5in apart with the default
// year colours.
func DefaultOptions() Options {
	return Options{RankDir: "RL", RankSep: 1.5, YearColours: DefaultYearColours}
}

func (o Options) yearColour(year int) string {
	colours := o.YearColours
	if len(colours) == 0 {
		colours = DefaultYearColours
	}
	return colours[year%len(colours)]
}

// ToDOT converts subgraphs to a single Graphviz digraph.
// Programmes are written in the order given.
func ToDOT(graphs []*subgraph.Subgraph, opts Options) string {
	if opts.RankDir == "" {
		opts.RankDir = "RL"
	}
	if opts.RankSep == 0 {
		opts.RankSep = 1.5
	}

	var buf bytes.Buffer
	buf.WriteString("digraph Modules {\n")
	fmt.Fprintf(&buf, "  rankdir = %s\n", opts.RankDir)
	fmt.Fprintf(&buf, "  ranksep = %s\n", strconv.FormatFloat(opts.RankSep, 'g', -1, 64))

	for _, s := range graphs {
		writeProgramme(&buf, s, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeProgramme(buf *bytes.Buffer, s *subgraph.Subgraph, opts Options) {
	fmt.Fprintf(buf, "\n  // programme %s\n", s.Programme)

	for _, n := range s.Nodes() {
		fmt.Fprintf(buf, "  %q [style=filled, fillcolor=%s, tooltip=%q]\n",
			n.ID, opts.yearColour(n.Year), fmt.Sprintf("%s %d %s", s.Programme, n.Year+1, n.ID))
	}

	for _, year := range s.Years {
		if year.Len() == 0 {
			continue
		}
		ids := year.Sorted()
		for i, id := range ids {
			ids[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "  {rank=same %s}\n", strings.Join(ids, " "))
	}

	for _, k := range s.Kinds {
		st := EdgeStyles[k]
		for _, p := range s.Edges[k].Pairs() {
			fmt.Fprintf(buf, "  %q -> %q [color=%s, arrowhead=%s, style=%s]\n",
				p.From, p.To, st.Colour, st.ArrowHead, st.Line)
		}
	}

	for _, g := range s.Choices {
		st := EdgeStyles[g.Kind]
		tip := "one of: " + strings.Join(g.Targets, ", ")
		for _, t := range g.Targets {
			fmt.Fprintf(buf, "  %q -> %q [color=%s, arrowhead=%s, style=%s, tooltip=%q]\n",
				g.From, t, st.ChoiceColour, st.ArrowHead, st.Line, tip)
		}
	}
}

var graphvizFormats = map[render.Format]graphviz.Format{
	render.FormatSVG: graphviz.SVG,
	render.FormatPNG: graphviz.PNG,
	render.FormatJPG: graphviz.JPG,
}

// Render lays out a DOT graph with Graphviz and encodes it as format, which
// must be svg, png or jpg.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return nil, fmt.Errorf("graphviz cannot render %s", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == render.FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, render.FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox so the
// SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
