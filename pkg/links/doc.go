// Package links drives reconciliation over the configured link list.
//
// Resolve turns configuration entries into absolute (original, link) pairs.
// A Runner then reconciles each pair in order. A failing pair is recorded in
// the Report and logged; the remaining pairs are still processed. Report.Err
// is non-nil when any pair failed.
package links
