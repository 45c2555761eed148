package runtime

import "github.com/ENKI-420/dnalang/internal/organism"

// CollapseReport holds the outcome of a collapse check on the aggregate
// state.
type CollapseReport struct {
	// GammaCollapsed reports aggregate Γ at or under the tolerance.
	GammaCollapsed bool `json:"gamma_collapsed" yaml:"gamma_collapsed"`
	// LambdaPhiMax reports the Λ·Φ product over its seal threshold.
	LambdaPhiMax bool `json:"lambda_phi_max" yaml:"lambda_phi_max"`
	// Sealed mirrors LambdaPhiMax. Sealing is reported, never enforced
	// here; the run loops act on it.
	Sealed bool `json:"sealed" yaml:"sealed"`
}

// CheckCollapseConditions evaluates the two collapse predicates against
// the aggregate state.
//
// A decoherence collapse (Γ ≤ tolerance) also flips the aggregate polarity
// through the duality operator. The flip happens once per call: repeated
// calls while the condition persists re-apply the operator each time.
//
// The seal predicate (Λ over its threshold and Λ·Φ over its own) is
// independent of the decoherence collapse and mutates nothing.
func (r *Runtime) CheckCollapseConditions(o *organism.Organism) CollapseReport {
	var report CollapseReport

	if o.State.Gamma <= r.cfg.GammaTolerance {
		report.GammaCollapsed = true
		o.State.Rho = r.duality.Apply(o.State.Lambda, o.State.Rho)
	}

	lambdaPhi := o.State.Lambda * o.State.Phi
	if o.State.Lambda > r.cfg.LambdaSealThreshold && lambdaPhi > r.cfg.LambdaPhiSealThreshold {
		report.LambdaPhiMax = true
		report.Sealed = true
	}

	if report.GammaCollapsed || report.Sealed {
		r.logger.Debug("collapse conditions",
			"organism", o.Name,
			"gamma_collapsed", report.GammaCollapsed,
			"sealed", report.Sealed)
	}
	return report
}
