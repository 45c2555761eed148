package harness

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ENKI-420/dnalang/internal/organism"
)

// defaultTolerance is the half-width used by approx when the
// expectation does not set one.
const defaultTolerance = 1e-9

// ExpectationError is returned when an expectation fails.
// It includes the expected and actual values to help debug the failure.
type ExpectationError struct {
	Field    string // Field path that was checked
	Op       string // Comparison that failed
	Expected string // Human-readable expected value
	Actual   string // Human-readable actual value
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "expectation failed: %s %s\n", e.Field, e.Op)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateExpectations evaluates all expectations against the result.
// Returns a slice of error messages for failed expectations.
func EvaluateExpectations(result *Result, expectations []Expectation) []string {
	var errors []string
	for i, exp := range expectations {
		if err := evaluateExpectation(result, exp); err != nil {
			errors = append(errors, fmt.Sprintf("expectations[%d]: %v", i, err))
		}
	}
	return errors
}

// evaluateExpectation resolves the field and applies the comparison.
func evaluateExpectation(result *Result, exp Expectation) error {
	actual, err := resolveField(result, exp.Field)
	if err != nil {
		return err
	}

	switch actual := actual.(type) {
	case bool:
		return compareBool(exp, actual)
	case float64:
		return compareFloat(exp, actual)
	default:
		return fmt.Errorf("field %q: unsupported type %T", exp.Field, actual)
	}
}

// compareBool checks a boolean field. Only eq applies.
func compareBool(exp Expectation, actual bool) error {
	if exp.Op != "" && exp.Op != ExpectEq {
		return fmt.Errorf("field %q is boolean; op must be %q, got %q", exp.Field, ExpectEq, exp.Op)
	}
	expected, ok := exp.Value.(bool)
	if !ok {
		return fmt.Errorf("field %q is boolean; expected value %v is %T", exp.Field, exp.Value, exp.Value)
	}
	if actual != expected {
		return &ExpectationError{
			Field:    exp.Field,
			Op:       ExpectEq,
			Expected: strconv.FormatBool(expected),
			Actual:   strconv.FormatBool(actual),
		}
	}
	return nil
}

// compareFloat checks a numeric field with the expectation's comparison.
func compareFloat(exp Expectation, actual float64) error {
	expected, err := toFloat(exp.Value)
	if err != nil {
		return fmt.Errorf("field %q: %w", exp.Field, err)
	}

	op := exp.Op
	if op == "" {
		op = ExpectApprox
	}

	switch op {
	case ExpectEq:
		if actual != expected {
			return &ExpectationError{
				Field:    exp.Field,
				Op:       op,
				Expected: formatFloat(expected),
				Actual:   formatFloat(actual),
			}
		}
	case ExpectApprox:
		tolerance := exp.Tolerance
		if tolerance == 0 {
			tolerance = defaultTolerance
		}
		if math.Abs(actual-expected) > tolerance {
			return &ExpectationError{
				Field:    exp.Field,
				Op:       op,
				Expected: fmt.Sprintf("%s ± %v", formatFloat(expected), tolerance),
				Actual:   formatFloat(actual),
			}
		}
	case ExpectLTE:
		if actual > expected {
			return &ExpectationError{
				Field:    exp.Field,
				Op:       op,
				Expected: "at most " + formatFloat(expected),
				Actual:   formatFloat(actual),
			}
		}
	case ExpectGTE:
		if actual < expected {
			return &ExpectationError{
				Field:    exp.Field,
				Op:       op,
				Expected: "at least " + formatFloat(expected),
				Actual:   formatFloat(actual),
			}
		}
	default:
		return fmt.Errorf("field %q: unknown op %q", exp.Field, op)
	}

	return nil
}

// resolveField looks up a field path on the result. The returned value
// is a float64 or a bool depending on the field.
func resolveField(result *Result, field string) (any, error) {
	switch field {
	case "dma":
		return result.DMA, nil
	case "ticks":
		return float64(result.Ticks), nil
	case "sovereignty.omega":
		return result.Sovereignty, nil
	case "sovereignty.sovereign":
		return result.Sovereign, nil
	}

	switch {
	case strings.HasPrefix(field, "manifold."):
		v, err := manifoldScalar(result.Manifold, strings.TrimPrefix(field, "manifold."))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		return v, nil

	case strings.HasPrefix(field, "genes."):
		rest := strings.TrimPrefix(field, "genes.")
		id, scalar, ok := strings.Cut(rest, ".")
		if !ok {
			return nil, fmt.Errorf("field %q: want genes.<id>.<scalar>", field)
		}
		m, exists := result.Genes[id]
		if !exists {
			return nil, fmt.Errorf("field %q: no gene %q in result", field, id)
		}
		v, err := manifoldScalar(m, scalar)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		return v, nil

	case strings.HasPrefix(field, "collapse."):
		if !result.CollapseChecked {
			return nil, fmt.Errorf("field %q: scenario has no collapse_check operation", field)
		}
		switch strings.TrimPrefix(field, "collapse.") {
		case "gamma_collapsed":
			return result.Collapse.GammaCollapsed, nil
		case "lambda_phi_max":
			return result.Collapse.LambdaPhiMax, nil
		case "sealed":
			return result.Collapse.Sealed, nil
		}
	}

	return nil, fmt.Errorf("unknown field %q", field)
}

// manifoldScalar picks one scalar out of a manifold snapshot by its
// long name.
func manifoldScalar(m organism.ManifoldState, scalar string) (float64, error) {
	switch scalar {
	case "coherence":
		return m.Coherence, nil
	case "decoherence":
		return m.Decoherence, nil
	case "information":
		return m.Information, nil
	case "emergence":
		return m.Emergence, nil
	case "polarity":
		return m.Polarity, nil
	case "torsion":
		return m.Torsion, nil
	case "epoch":
		return m.Epoch, nil
	}
	return 0, fmt.Errorf("unknown scalar %q", scalar)
}

// toFloat widens the YAML-parsed expectation value to float64.
// YAML integers arrive as int; floats as float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
