package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENKI-420/dnalang/internal/crsm"
)

// TestEvolveDecoupled verifies genes and the aggregate each step under the
// law independently, with stale emergence on both.
func TestEvolveDecoupled(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())

	r.Evolve(org, 1.0)

	gene := org.Genes[0].State
	assert.InDelta(t, 0.563600982475698, gene.Lambda, 1e-12)
	assert.InDelta(t, 0.009048374180359595, gene.Gamma, 1e-12)
	assert.InDelta(t, 5.005, gene.Phi, 1e-12)
	assert.Equal(t, 1.0, gene.Tau)
	assert.Zero(t, gene.Xi)
	assert.Equal(t, 1.0, gene.Rho)

	agg := org.State
	assert.InDelta(t, 0.9795385075427632, agg.Lambda, 1e-12)
	assert.InDelta(t, 0.010858049016431514, agg.Gamma, 1e-12)
	assert.InDelta(t, 7.69879, agg.Phi, 1e-12)
	assert.Equal(t, 1.0, agg.Tau)
	assert.Zero(t, agg.Xi)
}

// TestEvolveTicksAndEpoch verifies one tick per call and epoch
// accumulation across calls.
func TestEvolveTicksAndEpoch(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())

	for i := 0; i < 4; i++ {
		r.Evolve(org, 0.5)
	}

	assert.Equal(t, int64(4), r.Ticks())
	assert.Equal(t, 2.0, r.Epoch())
	assert.Equal(t, 2.0, org.State.Tau)
}

// TestSuppressDecoherence verifies the multiply and the floor for genes
// and aggregate alike.
func TestSuppressDecoherence(t *testing.T) {
	r := newTestRuntime(t)
	cfg := r.Config()
	org := probeOrganism(t, cfg)
	org.State.Gamma = 0.04

	r.SuppressDecoherence(org, 0.9)

	assert.Equal(t, 0.01*0.9, org.Genes[0].State.Gamma)
	assert.Equal(t, 0.04*0.9, org.State.Gamma)
}

// TestSuppressDecoherenceFloor verifies suppression never drives
// decoherence under the tolerance.
func TestSuppressDecoherenceFloor(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())
	org.Genes[0].State.Gamma = 1.1e-9
	org.State.Gamma = 1e-9

	r.SuppressDecoherence(org, 0.9)

	assert.Equal(t, 1e-9, org.Genes[0].State.Gamma)
	assert.Equal(t, 1e-9, org.State.Gamma)
}

// TestElevateCoherence verifies the coherence cap and the uncapped
// information growth.
func TestElevateCoherence(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())
	org.State.Lambda = 0.995
	org.State.Phi = 100.0

	r.ElevateCoherence(org, 1.01)

	assert.Equal(t, 0.5*1.01, org.Genes[0].State.Lambda)
	assert.Equal(t, 5.0*1.01, org.Genes[0].State.Phi)
	assert.Equal(t, 0.999, org.State.Lambda)
	assert.Equal(t, 100.0*1.01, org.State.Phi)
}

// TestRunEvolutionCycleZeroIterations verifies a zero-iteration cycle
// leaves every field of every state bit-for-bit unchanged.
func TestRunEvolutionCycleZeroIterations(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())
	geneBefore := org.Genes[0].State
	aggBefore := org.State

	report := r.RunEvolutionCycle(org, 0, 1.0)

	assert.Equal(t, geneBefore, org.Genes[0].State)
	assert.Equal(t, aggBefore, org.State)
	assert.Zero(t, report.Iterations)
	assert.Equal(t, 1.0, report.Dt)
	assert.Equal(t, "test-run-default", report.Token)
	assert.Equal(t, aggBefore.Lambda, report.Manifold.Coherence)
	assert.Zero(t, r.Ticks())
}

// TestRunEvolutionCycleSingleIteration verifies the strict per-iteration
// order evolve, suppress, elevate against precomputed values.
func TestRunEvolutionCycleSingleIteration(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())

	report := r.RunEvolutionCycle(org, 1, 1.0)

	gene := org.Genes[0].State
	assert.InDelta(t, 0.569236992300455, gene.Lambda, 1e-12)
	assert.InDelta(t, 0.008143536762323636, gene.Gamma, 1e-12)
	assert.InDelta(t, 5.05505, gene.Phi, 1e-12)
	assert.Equal(t, 1.0, gene.Tau)

	agg := org.State
	assert.InDelta(t, 0.9893338926181908, agg.Lambda, 1e-12)
	assert.InDelta(t, 0.009772244114788362, agg.Gamma, 1e-12)
	assert.InDelta(t, 7.7757779, agg.Phi, 1e-12)
	assert.Equal(t, 1.0, agg.Tau)

	assert.Equal(t, 1, report.Iterations)
	assert.InDelta(t, 787.2133081796335, report.Manifold.Emergence, 1e-9)
}

// TestRunEvolutionCycleRecomputesAggregateXi verifies every iteration ends
// with a fresh aggregate emergence.
func TestRunEvolutionCycleRecomputesAggregateXi(t *testing.T) {
	r := newTestRuntime(t)
	cfg := r.Config()
	org := probeOrganism(t, cfg)

	r.RunEvolutionCycle(org, 3, 1.0)

	want := org.State.Lambda * org.State.Phi / org.State.Gamma
	assert.InDelta(t, want, org.State.Xi, 1e-9)
	assert.NotZero(t, org.State.Xi)
}

// TestRunEvolutionCycleTicks verifies one clock tick per iteration.
func TestRunEvolutionCycleTicks(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())

	r.RunEvolutionCycle(org, 5, 1.0)

	assert.Equal(t, int64(5), r.Ticks())
	assert.Equal(t, 5.0, r.Epoch())
}

// TestRunEvolutionCycleDMA verifies the report carries the aggregate DMA
// value, zero here through the plus projection.
func TestRunEvolutionCycleDMA(t *testing.T) {
	r := newTestRuntime(t)
	org := probeOrganism(t, r.Config())

	report := r.RunEvolutionCycle(org, 2, 1.0)

	assert.Zero(t, report.DMA)
}

// TestCycleBoundsHold verifies the invariants over a long run: coherence
// capped, decoherence floored.
func TestCycleBoundsHold(t *testing.T) {
	r := newTestRuntime(t)
	cfg := r.Config()
	org := probeOrganism(t, cfg)

	r.RunEvolutionCycle(org, 50, 1.0)

	states := []crsm.State{org.Genes[0].State, org.State}
	for _, s := range states {
		require.LessOrEqual(t, s.Lambda, cfg.LambdaCeiling)
		require.GreaterOrEqual(t, s.Gamma, cfg.GammaTolerance)
	}
}
