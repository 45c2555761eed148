package harness

import (
	"github.com/ENKI-420/dnalang/internal/organism"
	"github.com/ENKI-420/dnalang/internal/runtime"
)

// Result is the outcome of a scenario execution.
//
// All state is captured as manifold snapshots after the last operation,
// with the sovereignty refresh already applied to the aggregate.
type Result struct {
	// Scenario is the name of the scenario that produced this result.
	Scenario string `json:"scenario" yaml:"scenario"`

	// RunToken is the resolved run token the runtime stamped on
	// reports.
	RunToken string `json:"run_token" yaml:"run_token"`

	// Pass indicates overall success. True if every expectation held.
	Pass bool `json:"pass" yaml:"pass"`

	// Manifold is the final aggregate state.
	Manifold organism.ManifoldState `json:"manifold" yaml:"manifold"`

	// GeneOrder lists gene IDs in organism order, for deterministic
	// rendering of the Genes map.
	GeneOrder []string `json:"gene_order" yaml:"gene_order"`

	// Genes holds the final per-gene states, keyed by gene ID.
	Genes map[string]organism.ManifoldState `json:"genes" yaml:"genes"`

	// Cycles collects the report of every cycle operation, in order.
	Cycles []runtime.CycleReport `json:"cycles,omitempty" yaml:"cycles,omitempty"`

	// Collapse is the report of the last collapse_check operation.
	// Meaningful only when CollapseChecked is true.
	Collapse runtime.CollapseReport `json:"collapse" yaml:"collapse"`

	// CollapseChecked reports whether any collapse_check ran.
	CollapseChecked bool `json:"collapse_checked" yaml:"collapse_checked"`

	// Sovereignty is the final sovereignty index.
	Sovereignty float64 `json:"sovereignty" yaml:"sovereignty"`

	// Sovereign is the final sovereignty verdict.
	Sovereign bool `json:"sovereign" yaml:"sovereign"`

	// DMA is the aggregate DMA value of the final gene states.
	DMA float64 `json:"dma" yaml:"dma"`

	// Ticks is the number of evolution calls the scenario stamped.
	Ticks int64 `json:"ticks" yaml:"ticks"`

	// Errors contains expectation failure messages. Empty if Pass is
	// true.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult(scenario, runToken string) *Result {
	return &Result{
		Scenario: scenario,
		RunToken: runToken,
		Pass:     true,
		Genes:    make(map[string]organism.ManifoldState),
		Errors:   []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
