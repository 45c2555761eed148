package runtime

import "github.com/ENKI-420/dnalang/internal/organism"

// RunReport summarizes a seal-gated run loop.
type RunReport struct {
	// Token correlates the report with logs.
	Token string `json:"token" yaml:"token"`
	// Iterations is the number of iterations actually performed.
	Iterations int `json:"iterations" yaml:"iterations"`
	// Dt is the time step used per iteration.
	Dt float64 `json:"dt" yaml:"dt"`
	// Sealed reports whether the loop stopped on a seal.
	Sealed bool `json:"sealed" yaml:"sealed"`
	// Sovereign is the final sovereignty verdict.
	Sovereign bool `json:"sovereign" yaml:"sovereign"`
	// Sovereignty is the final sovereignty index.
	Sovereignty float64 `json:"sovereignty" yaml:"sovereignty"`
	// Collapse is the last collapse check of the run.
	Collapse CollapseReport `json:"collapse" yaml:"collapse"`
	// Manifold is the aggregate state at the end of the run.
	Manifold organism.ManifoldState `json:"manifold" yaml:"manifold"`
}

// Run performs up to iterations evolution cycles, checking collapse
// conditions after each. The loop stops early once a check reports a seal;
// remaining iterations are skipped, honoring the no-evolution-after-seal
// rule.
func (r *Runtime) Run(o *organism.Organism, iterations int, dt float64) RunReport {
	token := r.tokens.Generate()
	report := RunReport{Token: token, Dt: dt}

	for i := 0; i < iterations; i++ {
		r.stepCycle(o, dt)
		report.Iterations++
		report.Collapse = r.CheckCollapseConditions(o)
		if report.Collapse.Sealed {
			report.Sealed = true
			break
		}
	}

	r.finishRun(o, &report)
	return report
}

// RunToSovereignty cycles until the organism reaches sovereignty, bounded
// by the iteration budget. A seal stops the loop even when sovereignty has
// not been reached; callers distinguish the outcomes via the report.
// Exhausting the budget returns the report so far alongside an
// IterationsExceededError.
func (r *Runtime) RunToSovereignty(o *organism.Organism, dt float64) (RunReport, error) {
	token := r.tokens.Generate()
	report := RunReport{Token: token, Dt: dt}
	budget := NewIterationBudget(r.maxIterations)

	for {
		if err := budget.Check(token); err != nil {
			report.Iterations = budget.Current() - 1
			r.finishRun(o, &report)
			r.logger.Debug("sovereignty run exhausted budget",
				"token", token, "organism", o.Name, "limit", r.maxIterations)
			return report, err
		}

		r.stepCycle(o, dt)
		report.Iterations = budget.Current()
		report.Collapse = r.CheckCollapseConditions(o)
		if report.Collapse.Sealed {
			report.Sealed = true
			break
		}
		if r.CheckSovereignty(o) {
			break
		}
	}

	r.finishRun(o, &report)
	return report, nil
}

// stepCycle runs one cycle iteration: evolve, suppress, elevate, recompute
// aggregate emergence.
func (r *Runtime) stepCycle(o *organism.Organism, dt float64) {
	r.Evolve(o, dt)
	r.SuppressDecoherence(o, r.cfg.SuppressionFactor)
	r.ElevateCoherence(o, r.cfg.ElevationFactor)
	o.State.ComputeEmergence(r.cfg)
}

// finishRun fills the trailing report fields from the final aggregate
// state.
func (r *Runtime) finishRun(o *organism.Organism, report *RunReport) {
	report.Sovereignty = r.ComputeSovereignty(o)
	report.Sovereign = report.Sovereignty >= r.cfg.SovereigntyThreshold
	report.Manifold = o.Manifold()
}
