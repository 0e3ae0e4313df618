// Package subgraph computes the part of a curriculum that is drawn for one
// programme.
//
// Given a [curriculum.Programme], the active dependency kinds, display flags
// and an optional whitelist, [Computer.Compute] narrows the node universe and
// the edges in a fixed order:
//
//  1. start from every module in the programme's years
//  2. drop required modules (HideRequired)
//  3. keep only modules implied by the whitelist: everything reachable from a
//     whitelisted module through any active kind, plus the module itself
//  4. restrict every active relation to the universe
//  5. reduce prerequisites to their transitively minimal form
//  6. keep one direction of each mutual exclusion
//  7. drop modules touching no surviving edge (HideOrphans)
//  8. restrict the year-groups to the universe
//
// Step 7 runs after 5 and 6 because reduction can orphan a module.
//
// A whitelist naming modules outside the programme is not an error; it only
// contributes nothing. An empty result is a valid, empty [Subgraph].
package subgraph
