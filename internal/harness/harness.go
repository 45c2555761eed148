package harness

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/genome"
	"github.com/ENKI-420/dnalang/internal/organism"
	"github.com/ENKI-420/dnalang/internal/runtime"
	"github.com/ENKI-420/dnalang/internal/testutil"
)

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Materialize the organism from the genome reference
//  2. Create a fresh runtime with a fixed run token
//  3. Apply operations in order
//  4. Capture final observables (sovereignty before the manifold
//     snapshot, since the sovereignty check refreshes the aggregate
//     emergence)
//  5. Evaluate expectations and record failures on the result
func Run(scenario *Scenario) (*Result, error) {
	org, cfg, err := materializeGenome(&scenario.Genome)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	tokens := testutil.NewFixedTokenGenerator(scenario.RunToken)
	rt, err := runtime.New(
		runtime.WithConfig(cfg),
		runtime.WithTokenGenerator(tokens),
		runtime.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if _, err := rt.LoadOrganism(org); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult(scenario.Name, tokens.Generate())
	for i, op := range scenario.Operations {
		if err := applyOperation(rt, org, op, result); err != nil {
			return nil, fmt.Errorf("scenario %s: operations[%d]: %w", scenario.Name, i, err)
		}
	}

	finalize(rt, org, result)

	for _, errMsg := range EvaluateExpectations(result, scenario.Expectations) {
		result.AddError(errMsg)
	}

	return result, nil
}

// applyOperation dispatches one scenario operation to the runtime.
func applyOperation(rt *runtime.Runtime, org *organism.Organism, op Operation, result *Result) error {
	switch op.Op {
	case OpCycle:
		result.Cycles = append(result.Cycles, rt.RunEvolutionCycle(org, op.Iterations, op.Dt))
	case OpEvolve:
		rt.Evolve(org, op.Dt)
	case OpSuppress:
		factor := op.Factor
		if factor == 0 {
			factor = rt.Config().SuppressionFactor
		}
		rt.SuppressDecoherence(org, factor)
	case OpElevate:
		factor := op.Factor
		if factor == 0 {
			factor = rt.Config().ElevationFactor
		}
		rt.ElevateCoherence(org, factor)
	case OpCollapseCheck:
		result.Collapse = rt.CheckCollapseConditions(org)
		result.CollapseChecked = true
	case OpSovereignty:
		// The value lands on the result in finalize; mid-scenario the
		// operation matters for its aggregate emergence refresh.
		rt.ComputeSovereignty(org)
	default:
		return fmt.Errorf("unknown operation %q", op.Op)
	}
	return nil
}

// finalize captures the final observables on the result.
//
// ComputeSovereignty refreshes the aggregate emergence, so it must run
// before the manifold snapshot.
func finalize(rt *runtime.Runtime, org *organism.Organism, result *Result) {
	result.Sovereignty = rt.ComputeSovereignty(org)
	result.Sovereign = rt.CheckSovereignty(org)
	result.Manifold = org.Manifold()
	for _, g := range org.Genes {
		result.GeneOrder = append(result.GeneOrder, g.ID)
		result.Genes[g.ID] = organism.FromState(g.State)
	}
	result.DMA = rt.ExecuteDMA(org)
	result.Ticks = rt.Ticks()
}

// materializeGenome builds the organism a scenario runs against,
// together with the configuration it was built under.
func materializeGenome(ref *GenomeRef) (*organism.Organism, crsm.Config, error) {
	base := crsm.DefaultConfig()

	switch {
	case ref.Standard:
		return organism.NewStandard(base), base, nil

	case ref.Dir != "":
		loaded, errs := genome.LoadGenomes(ref.Dir, genome.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, crsm.Config{}, fmt.Errorf("load genomes from %s: %w", ref.Dir, errs[0])
		}
		spec := loaded.Genome(ref.Name)
		if spec == nil {
			return nil, crsm.Config{}, fmt.Errorf("genome %q not found in %s", ref.Name, ref.Dir)
		}
		return genome.Build(spec, base)

	default:
		name := ref.Name
		if name == "" {
			name = "inline"
		}
		spec := &genome.GenomeSpec{Name: name}
		for _, seed := range ref.Genes {
			spec.Genes = append(spec.Genes, seedToGeneSpec(seed, base))
		}
		return genome.Build(spec, base)
	}
}

// seedToGeneSpec resolves an inline seed's defaults against the base
// configuration.
func seedToGeneSpec(seed GeneSeed, base crsm.Config) genome.GeneSpec {
	name := seed.Name
	if name == "" {
		name = strings.ToUpper(seed.ID)
	}
	rho := seed.Rho
	if rho == 0 {
		rho = 1.0
	}
	theta := seed.Theta
	if theta == 0 {
		theta = base.ThetaCritical
	}
	return genome.GeneSpec{
		ID:     seed.ID,
		Name:   name,
		Lambda: seed.Lambda,
		Gamma:  seed.Gamma,
		Phi:    seed.Phi,
		Rho:    rho,
		Theta:  theta,
		Tau:    seed.Tau,
	}
}
