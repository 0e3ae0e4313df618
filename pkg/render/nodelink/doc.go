// Package nodelink renders curriculum subgraphs as Graphviz node-link
// diagrams.
//
// # Overview
//
// [ToDOT] writes one digraph for any number of programme subgraphs. Every
// visible module becomes a filled node coloured by its year, with a tooltip
// naming programme, year and module. Each year becomes a same-rank group so
// Graphviz lays years out in columns (or rows, depending on rankdir).
//
// Edges are styled by dependency kind:
//
//	kind  colour     arrowhead  style
//	pre   red3       open       solid
//	co    purple3    empty      solid
//	sug   steelblue  halfopen   dashed
//	excl  red        none       bold
//
// Choice groups ("one of") use a lighter colour per kind (pink3, plum3,
// steelblue2, red) and carry a "one of: ..." tooltip, so a reader can tell
// them from hard dependencies.
//
// # Usage
//
//	dot := nodelink.ToDOT(subgraphs, nodelink.DefaultOptions())
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Output is deterministic: nodes, ranks and edges are emitted in sorted
// order.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG, PNG
// and JPG rendering. No external Graphviz installation is needed.
package nodelink
