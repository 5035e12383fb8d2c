// Package datatable is the reusable table engine behind every list screen of
// the console.
//
// A [Table] is configured once with row data, column descriptors and behavior
// flags, and from then on owns the view state of one mounted table: the search
// query, the active filter, the sort, the page and the selection. Every change
// to any of those inputs re-derives the visible page in a single synchronous
// pass. The engine never fetches, persists or validates rows and never
// inspects the row type except through the functions in [Config].
//
// # Pipeline
//
// Each recompute runs the stages in a fixed order:
//
//  1. Search: case-insensitive substring match over the configured search fields
//  2. Filter: equality against the active categorical filter value
//  3. Sort: stable, type-aware ordering by one column
//  4. Paginate: slice the ordered rows into the current page
//
// Search and filter narrow the candidate set before sort and paginate operate
// on it. The page index is clamped after every pass so a shrinking result set
// never leaves the view on an empty page.
//
// # Row identity
//
// Rows are identified by [Config.Key]. The key extractor is required; there is
// no positional fallback, because positions move under sort and filter and a
// selection would silently attach to the wrong row.
//
// # Faults
//
// An accessor that panics, returns nil, or returns a structured value without
// a string projection degrades to "no value" for that row: no match for search
// and filter, last place for sort. The count of contained faults is reported
// in [DerivedView.Faults] instead of aborting the pass.
//
// # Concurrency
//
// A Table is not safe for concurrent use. Callers that share one between
// goroutines must serialize access themselves.
package datatable
