// Package pkg provides the core libraries for modgraph curriculum graphs.
//
// # Overview
//
// modgraph draws the dependency structure of a curriculum: which modules are
// prerequisites, corequisites, suggestions or mutual exclusions of which,
// grouped by the year a programme places them in. The pkg directory is
// organized into four main areas:
//
//  1. [relation], [curriculum], [subgraph] - Domain logic
//  2. [render], [render/nodelink] - DOT generation and Graphviz output
//  3. [io] - Curriculum documents (JSON, TOML, HCL) and JSON export
//  4. [pipeline], [cache], [observability] - Orchestration and infrastructure
//
// # Architecture
//
// The typical data flow through modgraph:
//
//	modules.json / .toml / .hcl
//	         ↓
//	    [io] package (decode into a catalog)
//	         ↓
//	    [curriculum] package (programmes + one relation per kind)
//	         ↓
//	    [subgraph] package (universe, restricted and reduced edges)
//	         ↓
//	    [render/nodelink] package (DOT, or SVG/PNG/JPG via Graphviz)
//
// # Quick Start
//
//	cat, _ := io.ImportFile("modules.json")
//	p, _ := cat.Programme("bsc-cs")
//
//	c := subgraph.NewComputer(cat.Dependencies())
//	g, _ := c.Compute(p, subgraph.AllKinds())
//
//	dot := nodelink.ToDOT([]*subgraph.Subgraph{g}, nodelink.DefaultOptions())
//	fmt.Print(dot)
//
// # Main Packages
//
// [relation] - Immutable binary relations with restriction, image,
// transitive closure, transitive reduction and antisymmetric dedupe.
//
// [curriculum] - Dependency kinds, programmes, choice groups and the catalog
// that resolves programme includes.
//
// [subgraph] - The visible-subgraph computer: required and orphan hiding and
// whitelist closure.
//
// [pipeline] - Complete load → compute → render pipeline used by the CLI.
//
// [cache] - Artifact cache with file, Redis and null backends.
//
// [relation]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/relation
// [curriculum]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/curriculum
// [subgraph]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/subgraph
// [render]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/modgraph/pkg/observability
package pkg
