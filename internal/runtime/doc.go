// Package runtime orchestrates organism evolution.
//
// A Runtime owns an append-only organism registry, a logical clock that
// ticks once per evolution call, a token generator for report correlation,
// and an iteration budget for the open-ended run loops. Construction is via
// functional options; the zero option set yields the default configuration,
// UUIDv7 tokens, and the default iteration budget.
//
// Evolution is single-threaded and fully synchronous. Nothing here locks:
// one organism must be driven by at most one evolve/collapse/sovereignty
// sequence at a time, and concurrent callers either serialize externally
// or work on independent organisms.
//
// Each cycle iteration applies, in fixed order: the evolution law to every
// gene and to the aggregate, decoherence suppression, coherence and
// information elevation, then an aggregate emergence recompute. Suppression
// and elevation always follow the raw evolution step within the same
// iteration. Zero iterations is a byte-identical no-op.
//
// Collapse checks report on the aggregate only. A decoherence collapse also
// flips the aggregate polarity through the duality operator, once per call;
// a seal is reported but never enforced here. The seal-gated run loops in
// this package are the callers that do enforce it.
package runtime
