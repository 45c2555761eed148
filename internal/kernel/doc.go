// Package kernel executes the DMA reduction over gene collections.
//
// Each gene contributes (gradient - Γ) scaled by the duality projection of
// its coherence; Execute sums the contributions and Stream yields them one
// gene at a time. Genes at positive polarity project through Π+ and
// contribute exactly zero.
package kernel
