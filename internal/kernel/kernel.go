package kernel

import (
	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// Kernel computes per-gene DMA contributions and their sum.
type Kernel struct {
	cfg     crsm.Config
	duality crsm.DualityOperator
}

// New returns a kernel bound to the given configuration.
func New(cfg crsm.Config) *Kernel {
	return &Kernel{
		cfg:     cfg,
		duality: crsm.NewDualityOperator(),
	}
}

// Gradient computes the temporal gradient of a gene's coherence.
//
// dt keeps the signature aligned with the evolution step but does not enter
// the result: the gradient is a function of the current state only.
func (k *Kernel) Gradient(g *organism.Gene, dt float64) float64 {
	_ = dt
	return k.cfg.Alpha * k.cfg.DetFactor() * g.State.Lambda
}

// Decoherence returns the gene's current decoherence.
func (k *Kernel) Decoherence(g *organism.Gene) float64 {
	return g.State.Gamma
}

// ApplyDuality projects the gene's coherence through the duality operator
// selected by its polarity.
func (k *Kernel) ApplyDuality(g *organism.Gene) float64 {
	return k.duality.Apply(g.State.Lambda, g.State.Rho)
}

// GeneValue computes one gene's DMA contribution.
func (k *Kernel) GeneValue(g *organism.Gene, dt float64) float64 {
	return (k.Gradient(g, dt) - k.Decoherence(g)) * k.ApplyDuality(g)
}

// Execute sums the DMA contributions of all genes. An empty collection
// sums to zero.
func (k *Kernel) Execute(genes []*organism.Gene, dt float64) float64 {
	total := 0.0
	for _, g := range genes {
		total += k.GeneValue(g, dt)
	}
	return total
}

// CheckEmergence reports whether every gene meets the emergence criterion.
//
// Each gene's emergence is recomputed before its check. The scan stops at
// the first gene below threshold, leaving later genes untouched. A gene
// exactly at threshold passes.
func (k *Kernel) CheckEmergence(genes []*organism.Gene) bool {
	for _, g := range genes {
		g.State.ComputeEmergence(k.cfg)
		if g.State.Xi < k.cfg.EmergenceThreshold {
			return false
		}
	}
	return true
}
