package runtime

import (
	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// CycleReport summarizes one RunEvolutionCycle call.
type CycleReport struct {
	// Token correlates the report with logs.
	Token string `json:"token" yaml:"token"`
	// Iterations is the number of iterations performed.
	Iterations int `json:"iterations" yaml:"iterations"`
	// Dt is the time step used per iteration.
	Dt float64 `json:"dt" yaml:"dt"`
	// Manifold is the aggregate state after the last iteration.
	Manifold organism.ManifoldState `json:"manifold" yaml:"manifold"`
	// DMA is the organism's aggregate DMA value after the last iteration.
	DMA float64 `json:"dma" yaml:"dma"`
}

// Evolve applies the evolution law to every gene state and, separately, to
// the aggregate state. The two are decoupled: the aggregate is stepped by
// the same law, never derived from the genes. One clock tick is stamped
// per call.
func (r *Runtime) Evolve(o *organism.Organism, dt float64) {
	for _, g := range o.Genes {
		g.State = crsm.EvolveState(r.cfg, g.State, dt)
	}
	o.State = crsm.EvolveState(r.cfg, o.State, dt)
	r.epoch += dt
	r.clock.Next()
}

// SuppressDecoherence multiplies every gene's and the aggregate's
// decoherence by factor, re-flooring each at the tolerance.
func (r *Runtime) SuppressDecoherence(o *organism.Organism, factor float64) {
	for _, g := range o.Genes {
		g.State.Gamma = floorGamma(g.State.Gamma*factor, r.cfg.GammaTolerance)
	}
	o.State.Gamma = floorGamma(o.State.Gamma*factor, r.cfg.GammaTolerance)
}

// ElevateCoherence multiplies every gene's and the aggregate's coherence
// by factor, capped at the ceiling, and information by the same factor,
// uncapped.
func (r *Runtime) ElevateCoherence(o *organism.Organism, factor float64) {
	for _, g := range o.Genes {
		g.State.Lambda = capLambda(g.State.Lambda*factor, r.cfg.LambdaCeiling)
		g.State.Phi *= factor
	}
	o.State.Lambda = capLambda(o.State.Lambda*factor, r.cfg.LambdaCeiling)
	o.State.Phi *= factor
}

// RunEvolutionCycle performs iterations evolution cycles. Each iteration
// runs, in order: evolve, suppress, elevate, then an aggregate emergence
// recompute. Zero iterations leaves the organism byte-identical.
func (r *Runtime) RunEvolutionCycle(o *organism.Organism, iterations int, dt float64) CycleReport {
	token := r.tokens.Generate()
	r.logger.Debug("evolution cycle start",
		"token", token, "organism", o.Name, "iterations", iterations, "dt", dt)

	for i := 0; i < iterations; i++ {
		r.stepCycle(o, dt)
	}

	report := CycleReport{
		Token:      token,
		Iterations: iterations,
		Dt:         dt,
		Manifold:   o.Manifold(),
		DMA:        r.ExecuteDMA(o),
	}
	r.logger.Debug("evolution cycle done",
		"token", token, "organism", o.Name, "xi", report.Manifold.Emergence)
	return report
}

func floorGamma(gamma, tolerance float64) float64 {
	if gamma < tolerance {
		return tolerance
	}
	return gamma
}

func capLambda(lambda, ceiling float64) float64 {
	if lambda > ceiling {
		return ceiling
	}
	return lambda
}
