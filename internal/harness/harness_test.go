package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StandardSeed(t *testing.T) {
	scenario := &Scenario{
		Name:        "standard",
		Description: "Standard organism before any evolution",
		Genome:      GenomeRef{Standard: true},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "standard", result.Scenario)
	assert.Equal(t, "test-run-default", result.RunToken)

	assert.Equal(t, 0.869, result.Manifold.Coherence)
	assert.Equal(t, 0.012, result.Manifold.Decoherence)
	assert.Equal(t, 7.6901, result.Manifold.Information)
	assert.InDelta(t, 556.891408, result.Manifold.Emergence, 1e-4)
	assert.Equal(t, 1.0, result.Manifold.Polarity)
	assert.Equal(t, 51.843, result.Manifold.Torsion)
	assert.Zero(t, result.Manifold.Epoch)

	assert.Equal(t, []string{"aura", "aiden", "cccce", "sentinel", "z3bra"}, result.GeneOrder)
	require.Contains(t, result.Genes, "aura")
	assert.Equal(t, 0.89, result.Genes["aura"].Coherence)
	assert.InDelta(t, 7209.0, result.Genes["aura"].Emergence, 1e-6)

	assert.InDelta(t, 0.858572, result.Sovereignty, 1e-9)
	assert.False(t, result.Sovereign)
	// Standard genes are all Π+, so their DMA contributions vanish.
	assert.Zero(t, result.DMA)
	assert.Equal(t, int64(0), result.Ticks)
	assert.False(t, result.CollapseChecked)
	assert.Empty(t, result.Cycles)
}

func TestRun_InlineGeneDefaults(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_defaults",
		Description: "Inline seeds fill polarity and torsion defaults",
		Genome: GenomeRef{Genes: []GeneSeed{
			{ID: "probe", Lambda: 0.5, Gamma: 0.01, Phi: 5.0},
		}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Contains(t, result.Genes, "probe")
	probe := result.Genes["probe"]
	assert.Equal(t, 1.0, probe.Polarity)
	assert.Equal(t, 51.843, probe.Torsion)
	assert.InDelta(t, 250.0, probe.Emergence, 1e-9)

	// The aggregate is seeded independently of the genes.
	assert.Equal(t, 0.869, result.Manifold.Coherence)
}

func TestRun_InlineNegativePolarity(t *testing.T) {
	scenario := &Scenario{
		Name:        "inline_negative",
		Description: "A rho of -1 survives materialization",
		Genome: GenomeRef{Genes: []GeneSeed{
			{ID: "cathode", Lambda: 0.6, Gamma: 0.02, Phi: 4.0, Rho: -1},
		}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Contains(t, result.Genes, "cathode")
	assert.Equal(t, -1.0, result.Genes["cathode"].Polarity)
	// A Π− gene contributes its full gene value, so the aggregate DMA
	// is non-zero.
	assert.NotZero(t, result.DMA)
}

func TestRun_GenomeFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.cue"), []byte(`package lab

genome: lab: {
	description: "Lowered sovereignty threshold"
	genes: {
		core: {lambda: 0.9, gamma: 0.001, phi: 8.0}
	}
	constants: {sovereignty_threshold: 0.5}
}
`), 0644))

	scenario := &Scenario{
		Name:        "from_dir",
		Description: "Genome loaded from a directory with a constant override",
		Genome:      GenomeRef{Dir: dir, Name: "lab"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	require.Contains(t, result.Genes, "core")
	assert.Equal(t, 0.9, result.Genes["core"].Coherence)
	assert.InDelta(t, 7200.0, result.Genes["core"].Emergence, 1e-6)

	// The aggregate Ω of roughly 0.86 clears the overridden threshold.
	assert.True(t, result.Sovereign)
}

func TestRun_GenomeNotFoundInDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.cue"), []byte(`package lab

genome: lab: {
	genes: {
		core: {lambda: 0.9, gamma: 0.001, phi: 8.0}
	}
}
`), 0644))

	scenario := &Scenario{
		Name:        "missing_genome",
		Description: "Requested genome absent from the directory",
		Genome:      GenomeRef{Dir: dir, Name: "phantom"},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `genome "phantom" not found in`)
}

func TestRun_OperationSequence(t *testing.T) {
	scenario := &Scenario{
		Name:        "sequence",
		Description: "Every operation kind in one scenario",
		Genome:      GenomeRef{Standard: true},
		RunToken:    "run-seq-1",
		Operations: []Operation{
			{Op: OpCycle, Iterations: 2, Dt: 0.1},
			{Op: OpEvolve, Dt: 0.5},
			{Op: OpSuppress},
			{Op: OpElevate},
			{Op: OpCollapseCheck},
			{Op: OpSovereignty},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, "run-seq-1", result.RunToken)
	// Two cycle iterations plus one explicit evolve.
	assert.Equal(t, int64(3), result.Ticks)
	assert.InDelta(t, 0.7, result.Manifold.Epoch, 1e-12)

	require.Len(t, result.Cycles, 1)
	assert.Equal(t, "run-seq-1", result.Cycles[0].Token)
	assert.Equal(t, 2, result.Cycles[0].Iterations)
	assert.Equal(t, 0.1, result.Cycles[0].Dt)

	assert.True(t, result.CollapseChecked)
	assert.False(t, result.Collapse.GammaCollapsed)
	assert.False(t, result.Collapse.Sealed)
}

func TestRun_SuppressFactorDefault(t *testing.T) {
	scenario := &Scenario{
		Name:        "suppress_default",
		Description: "Suppress without a factor uses the configured default",
		Genome:      GenomeRef{Standard: true},
		Operations:  []Operation{{Op: OpSuppress}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	// 0.012 · 0.9
	assert.InDelta(t, 0.0108, result.Manifold.Decoherence, 1e-12)
	// 0.001 · 0.9
	assert.InDelta(t, 0.0009, result.Genes["aura"].Decoherence, 1e-12)
}

func TestRun_SuppressFactorOverride(t *testing.T) {
	scenario := &Scenario{
		Name:        "suppress_override",
		Description: "Suppress with an explicit factor",
		Genome:      GenomeRef{Standard: true},
		Operations:  []Operation{{Op: OpSuppress, Factor: 0.5}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.InDelta(t, 0.006, result.Manifold.Decoherence, 1e-12)
}

func TestRun_ElevateCapsCoherence(t *testing.T) {
	scenario := &Scenario{
		Name:        "elevate_cap",
		Description: "Elevation respects the coherence ceiling",
		Genome: GenomeRef{Genes: []GeneSeed{
			{ID: "hot", Lambda: 0.8, Gamma: 0.001, Phi: 5.0},
		}},
		Operations: []Operation{{Op: OpElevate, Factor: 1.5}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	// 0.8 · 1.5 exceeds the ceiling; information scales uncapped.
	assert.Equal(t, 0.999, result.Genes["hot"].Coherence)
	assert.InDelta(t, 7.5, result.Genes["hot"].Information, 1e-12)
	assert.Equal(t, 0.999, result.Manifold.Coherence)
}

func TestRun_ElevateFactorDefault(t *testing.T) {
	scenario := &Scenario{
		Name:        "elevate_default",
		Description: "Elevate without a factor uses the configured default",
		Genome:      GenomeRef{Standard: true},
		Operations:  []Operation{{Op: OpElevate}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	// 0.869 · 1.01
	assert.InDelta(t, 0.87769, result.Manifold.Coherence, 1e-12)
	// 7.6901 · 1.01
	assert.InDelta(t, 7.767001, result.Manifold.Information, 1e-9)
}

func TestRun_EvolveAdvancesEpoch(t *testing.T) {
	scenario := &Scenario{
		Name:        "evolve_once",
		Description: "A single evolution step moves every scalar",
		Genome:      GenomeRef{Standard: true},
		Operations:  []Operation{{Op: OpEvolve, Dt: 1.0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Ticks)
	assert.InDelta(t, 1.0, result.Manifold.Epoch, 1e-12)
	assert.Greater(t, result.Manifold.Coherence, 0.97)
	assert.Less(t, result.Manifold.Coherence, 0.999)
	assert.Less(t, result.Manifold.Decoherence, 0.012)
	assert.Greater(t, result.Manifold.Information, 7.6901)
}

func TestRun_ExpectationFailureMarksResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing",
		Description: "A wrong expectation fails the result, not the run",
		Genome:      GenomeRef{Standard: true},
		Expectations: []Expectation{
			{Field: "manifold.coherence", Op: ExpectEq, Value: 0.5},
			{Field: "manifold.torsion", Op: ExpectEq, Value: 51.843},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expectations[0]:")
	assert.Contains(t, result.Errors[0], "manifold.coherence")
}

func TestRun_UnknownOperation(t *testing.T) {
	// LoadScenario rejects this shape; a hand-built scenario must still
	// fail cleanly.
	scenario := &Scenario{
		Name:        "bad_op",
		Description: "Unknown operation",
		Genome:      GenomeRef{Standard: true},
		Operations:  []Operation{{Op: "warp"}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operations[0]: unknown operation "warp"`)
}

// TestRunExampleScenarios executes every scenario file under
// testdata/scenarios end to end and requires its expectations to hold.
func TestRunExampleScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenarioWithBasePath(path, "testdata")
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario %s failed: %v", scenario.Name, result.Errors)
		})
	}
}
