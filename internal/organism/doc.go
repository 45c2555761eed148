// Package organism models genes and the organisms that group them.
//
// A Gene is a named holder of one CRSM7 state. An Organism is an ordered
// gene collection plus its own aggregate state - a separate, independently
// evolved slot, never derived from the gene states. Insertion order is kept
// for reporting; it has no effect on any computed value.
//
// ManifoldState is the read-only snapshot callers get back: the seven
// scalars of one state, frozen at projection time.
package organism
