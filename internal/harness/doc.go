// Package harness provides conformance testing for the evolution runtime.
//
// The harness loads scenario files, materializes the organism each one
// names, drives a fresh runtime through a sequence of operations, and
// validates the final observables against expectations and golden
// snapshots.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario-name
//	description: "What this scenario validates"
//	genome:
//	  standard: true
//	operations:
//	  - op: cycle
//	    iterations: 3
//	    dt: 0.1
//	  - op: collapse_check
//	expectations:
//	  - field: sovereignty.sovereign
//	    op: eq
//	    value: false
//	  - field: manifold.coherence
//	    op: approx
//	    value: 0.92
//	    tolerance: 1e-6
//
// The genome block selects exactly one organism source: the built-in
// standard organism (standard: true), a directory of CUE genome files
// (dir plus name), or inline gene seeds (genes). Relative genome
// directories resolve against the scenario file location.
//
// # Operations
//
// The following operations are supported:
//
//   - cycle: full evolution cycles (iterations, dt)
//   - evolve: one raw evolution step (dt)
//   - suppress: decoherence suppression (factor, default from config)
//   - elevate: coherence elevation (factor, default from config)
//   - collapse_check: capture collapse conditions on the result
//   - sovereignty: refresh the sovereignty index mid-scenario
//
// # Expectations
//
// Expectation fields address the final observables:
//
//   - manifold.<scalar>: the aggregate state
//   - genes.<id>.<scalar>: one gene's state
//   - collapse.gamma_collapsed, collapse.lambda_phi_max, collapse.sealed
//   - sovereignty.omega, sovereignty.sovereign
//   - dma: the aggregate DMA value
//   - ticks: evolution calls stamped by the clock
//
// where <scalar> is one of coherence, decoherence, information,
// emergence, polarity, torsion, epoch. Comparisons are eq, approx
// (the default for numbers, tolerance 1e-9), lte, and gte.
//
// # Deterministic Execution
//
// Every scenario runs in a fresh runtime with a fixed token generator
// (run_token from the scenario, or "test-run-default") and discarded
// logs, so two runs of the same scenario produce identical results,
// including the rendered snapshot. This is what makes golden comparison
// byte-exact.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/steady.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
//
// Or compare against a golden snapshot inside a test:
//
//	if err := harness.RunWithGolden(t, scenario); err != nil {
//	    t.Fatal(err)
//	}
package harness
