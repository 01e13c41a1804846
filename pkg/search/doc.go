// Package search implements the unified search pipeline for property book
// data: debounced query input, a parallel fan-out over the four searchable
// categories (properties, people, transfers, reference catalog),
// per-category normalization and scoring, and a relevance-ranked merge.
//
// # Pipeline
//
// Text input flows through a Debouncer, which emits a trigger once the input
// quiesces (and an immediate clear when it drops below the minimum length).
// Each trigger becomes one Aggregator.Search call. The aggregator fetches
// every enabled category concurrently, converts each category's native
// records into Result values with a relevance score, concatenates the
// categories in a fixed order and stable-sorts by score descending.
//
// # Scoring
//
// Property records are matched client-side and scored per field: name
// matches weigh 0.4, serial numbers 0.3, NSN/LIN 0.2 and descriptions 0.1,
// summed per record. People and reference catalog records come from
// server-side searches, so every returned record is included with a flat
// weight (0.8 and 0.7). Transfers are matched client-side on status text or
// numeric id and weigh a flat 0.6. Scores order results within one search
// only; they are not comparable across searches.
//
// # Staleness
//
// Category fetches complete in no particular order, so results from an
// abandoned query can arrive after a newer query already rendered. Every
// Search call is tagged with a generation; Publish rejects any batch whose
// generation is no longer current. Surfaces must render only published
// batches.
package search
