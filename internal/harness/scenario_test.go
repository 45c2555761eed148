package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes a scenario YAML file into dir and returns its path.
func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: seed_check
description: "Standard seed values"
run_token: run-token-001
genome:
  standard: true
operations:
  - op: cycle
    iterations: 3
    dt: 0.1
  - op: collapse_check
expectations:
  - field: manifold.coherence
    op: gte
    value: 0.9
  - field: collapse.sealed
    value: false
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "seed_check", scenario.Name)
	assert.Equal(t, "Standard seed values", scenario.Description)
	assert.Equal(t, "run-token-001", scenario.RunToken)
	assert.True(t, scenario.Genome.Standard)
	require.Len(t, scenario.Operations, 2)
	assert.Equal(t, OpCycle, scenario.Operations[0].Op)
	assert.Equal(t, 3, scenario.Operations[0].Iterations)
	assert.Equal(t, 0.1, scenario.Operations[0].Dt)
	assert.Equal(t, OpCollapseCheck, scenario.Operations[1].Op)
	require.Len(t, scenario.Expectations, 2)
	assert.Equal(t, "manifold.coherence", scenario.Expectations[0].Field)
	assert.Equal(t, ExpectGTE, scenario.Expectations[0].Op)
	assert.Equal(t, 0.9, scenario.Expectations[0].Value)
	assert.Equal(t, false, scenario.Expectations[1].Value)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingName(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
description: "Missing name"
genome:
  standard: true
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingDescription(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
genome:
  standard: true
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestLoadScenario_MissingGenome(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
description: "No genome"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of standard, dir, or genes is required")
}

func TestLoadScenario_GenomeSourcesExclusive(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
description: "Two sources"
genome:
  standard: true
  genes:
    - id: probe
      lambda: 0.5
      gamma: 0.01
      phi: 5.0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadScenario_DirRequiresName(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
description: "Dir without name"
genome:
  dir: `+dir+`
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required with dir")
}

func TestLoadScenario_GenomeDirNotFound(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
description: "Missing genome dir"
genome:
  dir: /nonexistent/genomes
  name: mesh
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: test
description: "Test"
genome:
  unclosed: [bracket
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_SeedValidation(t *testing.T) {
	tests := []struct {
		name     string
		geneYAML string
		wantErr  string
	}{
		{
			name: "valid_seed",
			geneYAML: `
    - id: probe
      lambda: 0.5
      gamma: 0.01
      phi: 5.0
`,
			wantErr: "",
		},
		{
			name: "missing_id",
			geneYAML: `
    - lambda: 0.5
      gamma: 0.01
      phi: 5.0
`,
			wantErr: "genome.genes[0]: id is required",
		},
		{
			name: "lambda_out_of_range",
			geneYAML: `
    - id: probe
      lambda: 1.5
      gamma: 0.01
      phi: 5.0
`,
			wantErr: "coherence seed must be in [0, 1]",
		},
		{
			name: "gamma_not_positive",
			geneYAML: `
    - id: probe
      lambda: 0.5
      gamma: 0
      phi: 5.0
`,
			wantErr: "decoherence seed must be positive",
		},
		{
			name: "negative_phi",
			geneYAML: `
    - id: probe
      lambda: 0.5
      gamma: 0.01
      phi: -1.0
`,
			wantErr: "information seed must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeScenario(t, dir, `
name: test
description: "Seed validation"
genome:
  genes:
`+tt.geneYAML)

			_, err := LoadScenario(path)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadScenario_OperationValidation(t *testing.T) {
	tests := []struct {
		name    string
		opYAML  string
		wantErr string
	}{
		{
			name: "cycle_valid",
			opYAML: `
  - op: cycle
    iterations: 5
    dt: 0.1
`,
			wantErr: "",
		},
		{
			name: "cycle_zero_iterations_valid",
			opYAML: `
  - op: cycle
    dt: 0.1
`,
			wantErr: "",
		},
		{
			name: "cycle_missing_dt",
			opYAML: `
  - op: cycle
    iterations: 5
`,
			wantErr: "dt must be positive for cycle",
		},
		{
			name: "cycle_negative_iterations",
			opYAML: `
  - op: cycle
    iterations: -1
    dt: 0.1
`,
			wantErr: "iterations must be non-negative",
		},
		{
			name: "cycle_with_factor",
			opYAML: `
  - op: cycle
    iterations: 1
    dt: 0.1
    factor: 0.5
`,
			wantErr: "factor does not apply to cycle",
		},
		{
			name: "evolve_valid",
			opYAML: `
  - op: evolve
    dt: 0.5
`,
			wantErr: "",
		},
		{
			name: "evolve_missing_dt",
			opYAML: `
  - op: evolve
`,
			wantErr: "dt must be positive for evolve",
		},
		{
			name: "suppress_default_factor",
			opYAML: `
  - op: suppress
`,
			wantErr: "",
		},
		{
			name: "suppress_factor_too_large",
			opYAML: `
  - op: suppress
    factor: 1.2
`,
			wantErr: "suppress factor must be in (0, 1]",
		},
		{
			name: "elevate_factor_below_one",
			opYAML: `
  - op: elevate
    factor: 0.5
`,
			wantErr: "elevate factor must be at least 1",
		},
		{
			name: "collapse_check_with_dt",
			opYAML: `
  - op: collapse_check
    dt: 0.1
`,
			wantErr: "collapse_check takes no parameters",
		},
		{
			name: "sovereignty_valid",
			opYAML: `
  - op: sovereignty
`,
			wantErr: "",
		},
		{
			name: "unknown_op",
			opYAML: `
  - op: teleport
`,
			wantErr: `unknown operation "teleport"`,
		},
		{
			name: "missing_op",
			opYAML: `
  - iterations: 1
    dt: 0.1
`,
			wantErr: "op is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeScenario(t, dir, `
name: test
description: "Operation validation"
genome:
  standard: true
operations:
`+tt.opYAML)

			_, err := LoadScenario(path)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadScenario_ExpectationValidation(t *testing.T) {
	tests := []struct {
		name    string
		expYAML string
		wantErr string
	}{
		{
			name: "valid_default_op",
			expYAML: `
  - field: manifold.coherence
    value: 0.869
`,
			wantErr: "",
		},
		{
			name: "missing_field",
			expYAML: `
  - value: 0.869
`,
			wantErr: "field is required",
		},
		{
			name: "unknown_field_root",
			expYAML: `
  - field: quantum.flux
    value: 1
`,
			wantErr: `unknown field "quantum.flux"`,
		},
		{
			name: "missing_value",
			expYAML: `
  - field: manifold.coherence
`,
			wantErr: "value is required",
		},
		{
			name: "unknown_op",
			expYAML: `
  - field: manifold.coherence
    op: near
    value: 0.869
`,
			wantErr: `unknown op "near"`,
		},
		{
			name: "negative_tolerance",
			expYAML: `
  - field: manifold.coherence
    value: 0.869
    tolerance: -0.1
`,
			wantErr: "tolerance must be non-negative",
		},
		{
			name: "tolerance_with_eq",
			expYAML: `
  - field: manifold.coherence
    op: eq
    value: 0.869
    tolerance: 0.1
`,
			wantErr: "tolerance only applies to approx",
		},
		{
			name: "tolerance_with_approx_valid",
			expYAML: `
  - field: manifold.coherence
    op: approx
    value: 0.869
    tolerance: 0.001
`,
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeScenario(t, dir, `
name: test
description: "Expectation validation"
genome:
  standard: true
expectations:
`+tt.expYAML)

			_, err := LoadScenario(path)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "typo_expectation_singular",
			yaml: `
name: test
description: Typo check
genome:
  standard: true
expectation:
  - field: dma
    value: 0
`,
			wantErr: "field expectation not found",
		},
		{
			name: "typo_in_operation",
			yaml: `
name: test
description: Typo check
genome:
  standard: true
operations:
  - op: cycle
    iteration: 3
    dt: 0.1
`,
			wantErr: "field iteration not found",
		},
		{
			name: "unknown_top_level_field",
			yaml: `
name: test
description: Typo check
genome:
  standard: true
organism: CRSM7_Z3MESH
`,
			wantErr: "field organism not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeScenario(t, dir, tt.yaml)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarioWithBasePath(t *testing.T) {
	dir := t.TempDir()
	genomesDir := filepath.Join(dir, "genomes")
	require.NoError(t, os.MkdirAll(genomesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(genomesDir, "mesh.cue"), []byte(`package test

genome: mesh: {
	genes: core: {lambda: 0.9, gamma: 0.001, phi: 8.0}
}
`), 0644))

	path := writeScenario(t, dir, `
name: test
description: "Relative genome dir"
genome:
  dir: genomes
  name: mesh
`)

	// Without a base path the relative dir misses.
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory not found")

	scenario, err := LoadScenarioWithBasePath(path, dir)
	require.NoError(t, err)
	assert.Equal(t, genomesDir, scenario.Genome.Dir)
}

func TestLoadScenarioWithBasePath_AbsoluteDirUntouched(t *testing.T) {
	dir := t.TempDir()
	genomesDir := filepath.Join(dir, "genomes")
	require.NoError(t, os.MkdirAll(genomesDir, 0755))

	path := writeScenario(t, dir, `
name: test
description: "Absolute genome dir"
genome:
  dir: `+genomesDir+`
  name: mesh
`)

	scenario, err := LoadScenarioWithBasePath(path, "/some/other/base")
	require.NoError(t, err)
	assert.Equal(t, genomesDir, scenario.Genome.Dir)
}

func TestOperationConstants(t *testing.T) {
	assert.Equal(t, "cycle", OpCycle)
	assert.Equal(t, "evolve", OpEvolve)
	assert.Equal(t, "suppress", OpSuppress)
	assert.Equal(t, "elevate", OpElevate)
	assert.Equal(t, "collapse_check", OpCollapseCheck)
	assert.Equal(t, "sovereignty", OpSovereignty)
}

func TestComparisonConstants(t *testing.T) {
	assert.Equal(t, "eq", ExpectEq)
	assert.Equal(t, "approx", ExpectApprox)
	assert.Equal(t, "lte", ExpectLTE)
	assert.Equal(t, "gte", ExpectGTE)
}

// TestLoadExampleScenarios validates the example scenario files in
// testdata/scenarios. These serve as documentation and regression tests.
func TestLoadExampleScenarios(t *testing.T) {
	tests := []struct {
		name           string
		scenarioFile   string
		wantOperations int
		wantExpects    int
	}{
		{
			name:           "standard_seed",
			scenarioFile:   "testdata/scenarios/standard_seed.yaml",
			wantOperations: 0,
			wantExpects:    13,
		},
		{
			name:           "evolution_cycle",
			scenarioFile:   "testdata/scenarios/evolution_cycle.yaml",
			wantOperations: 2,
			wantExpects:    13,
		},
		{
			name:           "inline_duality",
			scenarioFile:   "testdata/scenarios/inline_duality.yaml",
			wantOperations: 0,
			wantExpects:    8,
		},
		{
			name:           "genome_override",
			scenarioFile:   "testdata/scenarios/genome_override.yaml",
			wantOperations: 0,
			wantExpects:    7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario, err := LoadScenarioWithBasePath(tt.scenarioFile, "testdata")
			require.NoError(t, err, "failed to load example scenario %s", tt.scenarioFile)

			assert.Equal(t, tt.name, scenario.Name)
			assert.Len(t, scenario.Operations, tt.wantOperations)
			assert.Len(t, scenario.Expectations, tt.wantExpects)
		})
	}
}
