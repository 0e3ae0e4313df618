// Package io loads curriculum documents and exports computed subgraphs.
//
// # Overview
//
// A curriculum document has two top-level mappings:
//
//	{
//	  "modules": {
//	    "CS201": {"pre": ["CS101", ["MA100", "MA101"]], "excl": ["CS202"]},
//	    "CS202": {"excl": ["CS201"]}
//	  },
//	  "programmes": {
//	    "bsc-cs": {
//	      "years": [["CS101", "MA100", "MA101"], ["CS201", "CS202"]],
//	      "required": ["CS101"],
//	      "include": ["common"]
//	    }
//	  }
//	}
//
// # Module Fields
//
// Each module may list dependencies under "pre", "co", "sug" and "excl". An
// entry is a module identifier or a list of alternatives, of which one
// suffices. Numeric identifiers such as 201 are read as "201". Unknown keys
// are ignored.
//
// # Programme Fields
//
//   - years: ordered list of year-groups (lists of module identifiers)
//   - required: modules every student takes
//   - include: names of programmes merged into this one
//   - choice: names of alternative pathways; their years are merged, but
//     only modules required by all of them become required
//
// # Formats
//
// [ImportFile] picks the decoder from the file extension:
//
//   - .json: JSON (also the fallback for unknown extensions)
//   - .toml: TOML, with [modules.ID] and [programmes.NAME] tables
//   - .hcl: HCL, with module "ID" { ... } and programme "NAME" { ... } blocks
//
// All three are normalised into one generic document and decoded with
// mapstructure, so they accept exactly the same content.
//
// # Export
//
// [WriteJSON] writes computed subgraphs, including choice groups, for tools
// that consume the graph programmatically rather than visually.
package io
