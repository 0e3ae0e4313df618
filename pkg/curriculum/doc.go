// Package curriculum models course modules, their dependency kinds and the
// multi-year programmes they are grouped into.
//
// # Dependency Kinds
//
// A module may list other modules under four closed [Kind]s: prerequisites
// ("pre"), corequisites ("co"), suggestions ("sug") and mutual exclusions
// ("excl"). [BuildDependencies] turns those lists into one
// [relation.Relation] per kind, with pairs (module, dependency).
//
// An entry may also be a list of alternatives ("one of these"). Such an entry
// becomes a [ChoiceGroup] instead of ordinary pairs, so consumers can tell a
// hard requirement from a choice.
//
// # Programmes
//
// A [Programme] is an ordered sequence of year-groups plus a required subset.
// Programmes are immutable: [Programme.Include] and [Programme.Choice] return
// new values. A [Catalog] resolves "include" and "choice" references between
// programmes once, at load time.
//
// # Year Lookup
//
// A module listed in several year-groups of one programme is a configuration
// fault. [Programme.YearOf] resolves it to the last (highest) year it appears
// in, and [Programme.Conflicts] lists every such module so [Catalog.Validate]
// can report it.
package curriculum
