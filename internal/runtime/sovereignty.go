package runtime

import (
	"math"

	"github.com/ENKI-420/dnalang/internal/organism"
)

// ComputeSovereignty returns the sovereignty index of the aggregate state:
// Ω_sov = Λ·(1−Γ)·min(1, Ξ/threshold).
//
// The aggregate emergence is recomputed first, so the index always reflects
// the current Λ, Γ, and Φ.
func (r *Runtime) ComputeSovereignty(o *organism.Organism) float64 {
	o.State.ComputeEmergence(r.cfg)
	emergenceFactor := math.Min(1.0, o.State.Xi/r.cfg.EmergenceThreshold)
	return o.State.Lambda * (1.0 - o.State.Gamma) * emergenceFactor
}

// CheckSovereignty reports whether the sovereignty index meets the
// threshold.
func (r *Runtime) CheckSovereignty(o *organism.Organism) bool {
	return r.ComputeSovereignty(o) >= r.cfg.SovereigntyThreshold
}
