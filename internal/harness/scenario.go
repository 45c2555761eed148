package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios materialize an organism from a genome reference, drive it
// through a sequence of runtime operations, and assert on the resulting
// manifold, collapse, and sovereignty observables.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name when the scenario is run through RunWithGolden.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Genome selects the organism under test. Exactly one source must
	// be set: the built-in standard organism, a genome directory, or
	// inline gene seeds.
	Genome GenomeRef `yaml:"genome"`

	// Operations is the sequence of runtime operations to apply.
	// May be empty: a scenario with no operations snapshots the seeded
	// organism as-is, which is the usual shape for golden scenarios.
	Operations []Operation `yaml:"operations,omitempty"`

	// Expectations validate the final result. May be empty when the
	// scenario is golden-only.
	Expectations []Expectation `yaml:"expectations,omitempty"`

	// RunToken is an optional fixed run token for deterministic output.
	// If empty, the token defaults to "test-run-default".
	RunToken string `yaml:"run_token,omitempty"`
}

// GenomeRef names the organism a scenario runs against.
type GenomeRef struct {
	// Standard selects the built-in standard organism.
	Standard bool `yaml:"standard,omitempty"`

	// Dir is a directory of CUE genome files. Requires Name to pick
	// the genome out of the loaded set. Relative paths are resolved
	// against the scenario file location by LoadScenarioWithBasePath.
	Dir string `yaml:"dir,omitempty"`

	// Name is the genome to build when Dir is set. With inline Genes
	// it is optional and names the organism (default "inline").
	Name string `yaml:"name,omitempty"`

	// Genes seeds an organism directly, without a genome file.
	Genes []GeneSeed `yaml:"genes,omitempty"`
}

// GeneSeed is an inline gene seed.
//
// Zero values for rho and theta are read as unset: polarity defaults to
// +1 and torsion to the configured critical angle. A scenario that needs
// a Π− gene from the start seeds rho: -1.
type GeneSeed struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name,omitempty"`
	Lambda float64 `yaml:"lambda"`
	Gamma  float64 `yaml:"gamma"`
	Phi    float64 `yaml:"phi"`
	Rho    float64 `yaml:"rho,omitempty"`
	Theta  float64 `yaml:"theta,omitempty"`
	Tau    float64 `yaml:"tau,omitempty"`
}

// Operation is one runtime step in a scenario.
type Operation struct {
	// Op names the operation: cycle, evolve, suppress, elevate,
	// collapse_check, or sovereignty.
	Op string `yaml:"op"`

	// Iterations is the iteration count for cycle.
	Iterations int `yaml:"iterations,omitempty"`

	// Dt is the time step for cycle and evolve.
	Dt float64 `yaml:"dt,omitempty"`

	// Factor overrides the configured factor for suppress and elevate.
	// Zero means use the configuration default.
	Factor float64 `yaml:"factor,omitempty"`
}

// Operation name constants.
const (
	OpCycle         = "cycle"
	OpEvolve        = "evolve"
	OpSuppress      = "suppress"
	OpElevate       = "elevate"
	OpCollapseCheck = "collapse_check"
	OpSovereignty   = "sovereignty"
)

// Expectation validates one observable of the final result.
//
// Field paths:
//
//	manifold.<scalar>       aggregate state
//	genes.<id>.<scalar>     per-gene state
//	collapse.gamma_collapsed | collapse.lambda_phi_max | collapse.sealed
//	sovereignty.omega       sovereignty index
//	sovereignty.sovereign   sovereignty verdict
//	dma                     aggregate DMA value
//	ticks                   evolution calls stamped
//
// where <scalar> is one of coherence, decoherence, information,
// emergence, polarity, torsion, epoch.
type Expectation struct {
	// Field is the observable to check.
	Field string `yaml:"field"`

	// Op is the comparison: eq, approx, lte, or gte. Defaults to
	// approx for numeric fields; boolean fields only support eq.
	Op string `yaml:"op,omitempty"`

	// Value is the expected value: a number or a boolean, matching
	// the field's type.
	Value any `yaml:"value"`

	// Tolerance is the half-width for approx. Zero means the default
	// of 1e-9. Only meaningful with approx.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Comparison constants for Expectation.Op.
const (
	ExpectEq     = "eq"
	ExpectApprox = "approx"
	ExpectLTE    = "lte"
	ExpectGTE    = "gte"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the genome directory relative to the provided base path.
// This is useful when scenario files reference genome directories using
// relative paths.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expectation:" vs
	// "expectations:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the genome directory relative to the base path BEFORE
	// validation.
	if scenario.Genome.Dir != "" && !filepath.IsAbs(scenario.Genome.Dir) && basePath != "" {
		scenario.Genome.Dir = filepath.Join(basePath, scenario.Genome.Dir)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if err := validateGenomeRef(&s.Genome); err != nil {
		return err
	}

	for i, op := range s.Operations {
		if err := validateOperation(i, &op); err != nil {
			return err
		}
	}

	for i, exp := range s.Expectations {
		if err := validateExpectation(i, &exp); err != nil {
			return err
		}
	}

	return nil
}

// validateGenomeRef checks that exactly one genome source is set and
// that inline seeds carry legal values.
func validateGenomeRef(ref *GenomeRef) error {
	sources := 0
	if ref.Standard {
		sources++
	}
	if ref.Dir != "" {
		sources++
	}
	if len(ref.Genes) > 0 {
		sources++
	}
	if sources == 0 {
		return fmt.Errorf("genome: one of standard, dir, or genes is required")
	}
	if sources > 1 {
		return fmt.Errorf("genome: standard, dir, and genes are mutually exclusive")
	}

	if ref.Dir != "" {
		if ref.Name == "" {
			return fmt.Errorf("genome: name is required with dir")
		}
		if _, err := os.Stat(ref.Dir); os.IsNotExist(err) {
			return fmt.Errorf("genome: directory not found: %s", ref.Dir)
		}
	}

	for i, seed := range ref.Genes {
		if seed.ID == "" {
			return fmt.Errorf("genome.genes[%d]: id is required", i)
		}
		if seed.Lambda < 0 || seed.Lambda > 1 {
			return fmt.Errorf("genome.genes[%d]: coherence seed must be in [0, 1], got %v", i, seed.Lambda)
		}
		if seed.Gamma <= 0 {
			return fmt.Errorf("genome.genes[%d]: decoherence seed must be positive, got %v", i, seed.Gamma)
		}
		if seed.Phi < 0 {
			return fmt.Errorf("genome.genes[%d]: information seed must be non-negative, got %v", i, seed.Phi)
		}
	}

	return nil
}

// validateOperation validates a single operation based on its name.
// Parameters that an operation does not take must stay zero, which
// catches YAML indentation slips.
func validateOperation(index int, op *Operation) error {
	if op.Op == "" {
		return fmt.Errorf("operations[%d]: op is required", index)
	}

	switch op.Op {
	case OpCycle:
		if op.Iterations < 0 {
			return fmt.Errorf("operations[%d]: iterations must be non-negative for cycle", index)
		}
		if op.Dt <= 0 {
			return fmt.Errorf("operations[%d]: dt must be positive for cycle", index)
		}
		if op.Factor != 0 {
			return fmt.Errorf("operations[%d]: factor does not apply to cycle", index)
		}
	case OpEvolve:
		if op.Dt <= 0 {
			return fmt.Errorf("operations[%d]: dt must be positive for evolve", index)
		}
		if op.Iterations != 0 {
			return fmt.Errorf("operations[%d]: iterations does not apply to evolve", index)
		}
		if op.Factor != 0 {
			return fmt.Errorf("operations[%d]: factor does not apply to evolve", index)
		}
	case OpSuppress:
		if op.Factor < 0 || op.Factor > 1 {
			return fmt.Errorf("operations[%d]: suppress factor must be in (0, 1] or omitted, got %v", index, op.Factor)
		}
		if op.Iterations != 0 || op.Dt != 0 {
			return fmt.Errorf("operations[%d]: suppress takes only factor", index)
		}
	case OpElevate:
		if op.Factor != 0 && op.Factor < 1 {
			return fmt.Errorf("operations[%d]: elevate factor must be at least 1 or omitted, got %v", index, op.Factor)
		}
		if op.Iterations != 0 || op.Dt != 0 {
			return fmt.Errorf("operations[%d]: elevate takes only factor", index)
		}
	case OpCollapseCheck, OpSovereignty:
		if op.Iterations != 0 || op.Dt != 0 || op.Factor != 0 {
			return fmt.Errorf("operations[%d]: %s takes no parameters", index, op.Op)
		}
	default:
		return fmt.Errorf("operations[%d]: unknown operation %q", index, op.Op)
	}

	return nil
}

// validateExpectation validates a single expectation. Field resolution
// against gene IDs happens at evaluation time; here only the path root
// and the comparison are checked.
func validateExpectation(index int, e *Expectation) error {
	if e.Field == "" {
		return fmt.Errorf("expectations[%d]: field is required", index)
	}
	if !knownFieldRoot(e.Field) {
		return fmt.Errorf("expectations[%d]: unknown field %q", index, e.Field)
	}
	if e.Value == nil {
		return fmt.Errorf("expectations[%d]: value is required", index)
	}

	switch e.Op {
	case "", ExpectEq, ExpectApprox, ExpectLTE, ExpectGTE:
	default:
		return fmt.Errorf("expectations[%d]: unknown op %q", index, e.Op)
	}

	if e.Tolerance < 0 {
		return fmt.Errorf("expectations[%d]: tolerance must be non-negative", index)
	}
	if e.Tolerance != 0 && e.Op != "" && e.Op != ExpectApprox {
		return fmt.Errorf("expectations[%d]: tolerance only applies to approx", index)
	}

	return nil
}

// knownFieldRoot reports whether a field path starts at a resolvable
// root.
func knownFieldRoot(field string) bool {
	switch field {
	case "dma", "ticks", "sovereignty.omega", "sovereignty.sovereign":
		return true
	}
	for _, prefix := range []string{"manifold.", "genes.", "collapse."} {
		if strings.HasPrefix(field, prefix) && len(field) > len(prefix) {
			return true
		}
	}
	return false
}
