// Package engine implements the hamstercage operations on top of a loaded
// manifest: adding entries, applying the repository onto the target,
// saving the target back, diffing, removing and listing.
//
// Every operation that works on the active tags resolves its entries with
// manifest.Resolve, so the first active tag that lists a path wins. Hooks
// run before and after the per entry work, once per active tag.
//
// Nothing is rolled back: the first error aborts the operation and changes
// made up to that point stay in place.
package engine
