package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result as a stable text block for golden
// comparison. Gene lines follow organism order; float formatting is
// fixed-precision so the bytes do not depend on platform rounding of
// the last ulp.
func Snapshot(result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", result.Scenario)
	fmt.Fprintf(&buf, "run_token: %s\n", result.RunToken)
	buf.WriteString("manifold:\n")
	buf.WriteString(result.Manifold.Report())
	buf.WriteByte('\n')
	buf.WriteString("genes:\n")
	for _, id := range result.GeneOrder {
		fmt.Fprintf(&buf, "  %s: %s\n", id, result.Genes[id].String())
	}
	if result.CollapseChecked {
		fmt.Fprintf(&buf, "collapse: gamma_collapsed=%t lambda_phi_max=%t sealed=%t\n",
			result.Collapse.GammaCollapsed, result.Collapse.LambdaPhiMax, result.Collapse.Sealed)
	}
	fmt.Fprintf(&buf, "sovereignty: omega=%.6f sovereign=%t\n", result.Sovereignty, result.Sovereign)
	fmt.Fprintf(&buf, "dma: %.9f\n", result.DMA)
	fmt.Fprintf(&buf, "ticks: %d\n", result.Ticks)
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file. The golden file is stored in
// testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an existing result's snapshot against a golden
// file. Useful when the caller has already run the scenario and wants
// to assert on the result without re-running.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
