// Package diag defines the diagnostic model shared by the lexical,
// layout and grammar layers.
//
//   - Diagnostic is the central record: severity, stable code, message,
//     primary span and optional notes.
//   - Reporter decouples producers from storage; BagReporter aggregates
//     into a Bag which supports sorting, deduplication and merging.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt and orchestration in internal/driver.
package diag
