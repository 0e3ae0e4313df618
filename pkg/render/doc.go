// Package render turns computed curriculum subgraphs into output documents.
//
// # Overview
//
// Rendering is the last, thin stage of the modgraph pipeline. It consumes
// [subgraph.Subgraph] values and never reasons about dependencies itself.
//
//   - Output format names and validation live in this package ([Format]).
//   - Graphviz DOT generation and in-process rasterisation live in the
//     [nodelink] subpackage.
//
// # Formats
//
//   - dot: Graphviz source text, the native output
//   - svg, png, jpg: rendered in-process by go-graphviz from the DOT source
//   - json: the computed subgraphs for programmatic consumers (see pkg/io)
//
// [subgraph.Subgraph]: github.com/matzehuels/modgraph/pkg/subgraph
// [nodelink]: github.com/matzehuels/modgraph/pkg/render/nodelink
package render
