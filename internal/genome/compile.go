package genome

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"golang.org/x/text/unicode/norm"

	"github.com/ENKI-420/dnalang/internal/crsm"
)

// Compile parses a CUE value into a GenomeSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the genome struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`genome: probe: { ... }`)
//	spec, err := genome.Compile(v.LookupPath(cue.ParsePath("genome.probe")))
func Compile(v cue.Value) (*GenomeSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &GenomeSpec{}

	// Parse genome name from struct label (the path selector)
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = norm.NFC.String(labels[len(labels)-1].String())
	}

	// Parse description (optional)
	descVal := v.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.Description = norm.NFC.String(desc)
	}

	// Parse genes (required, at least one)
	var err error
	spec.Genes, err = parseGenes(v)
	if err != nil {
		return nil, err
	}
	if len(spec.Genes) == 0 {
		return nil, &CompileError{
			Field:   "genes",
			Message: "at least one gene is required",
			Pos:     v.Pos(),
		}
	}

	// Parse operators (optional)
	spec.Operators, err = parseOperators(v)
	if err != nil {
		return nil, err
	}

	// Parse constants (optional overrides for the configuration)
	spec.Constants, err = parseConstants(v)
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// parseGenes extracts gene seed definitions in declaration order.
func parseGenes(v cue.Value) ([]GeneSpec, error) {
	genesVal := v.LookupPath(cue.ParsePath("genes"))
	if !genesVal.Exists() {
		return nil, &CompileError{
			Field:   "genes",
			Message: "genes are required",
			Pos:     v.Pos(),
		}
	}

	iter, err := genesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	defaults := crsm.DefaultConfig()
	var genes []GeneSpec
	seen := make(map[string]bool)
	for iter.Next() {
		gene, err := parseGene(iter.Label(), iter.Value(), defaults)
		if err != nil {
			return nil, err
		}
		if seen[gene.ID] {
			return nil, &CompileError{
				Field:   "genes." + gene.ID,
				Message: "duplicate gene id after Unicode normalization",
				Pos:     iter.Value().Pos(),
			}
		}
		seen[gene.ID] = true
		genes = append(genes, gene)
	}

	return genes, nil
}

// parseGene parses a single gene struct. Lambda, gamma and phi are
// required; rho, theta and tau default to positive polarity, critical
// torsion and epoch zero. The display name defaults to the upper-cased id.
func parseGene(id string, v cue.Value, defaults crsm.Config) (GeneSpec, error) {
	gene := GeneSpec{
		ID:    norm.NFC.String(id),
		Rho:   1.0,
		Theta: defaults.ThetaCritical,
	}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		name, err := nameVal.String()
		if err != nil {
			return GeneSpec{}, formatCUEError(err)
		}
		gene.Name = norm.NFC.String(name)
	} else {
		gene.Name = strings.ToUpper(gene.ID)
	}

	var err error
	gene.Lambda, err = requiredFloat(v, "lambda", geneField(gene.ID, "lambda"))
	if err != nil {
		return GeneSpec{}, err
	}
	gene.Gamma, err = requiredFloat(v, "gamma", geneField(gene.ID, "gamma"))
	if err != nil {
		return GeneSpec{}, err
	}
	gene.Phi, err = requiredFloat(v, "phi", geneField(gene.ID, "phi"))
	if err != nil {
		return GeneSpec{}, err
	}
	gene.Rho, err = optionalFloat(v, "rho", gene.Rho)
	if err != nil {
		return GeneSpec{}, err
	}
	gene.Theta, err = optionalFloat(v, "theta", gene.Theta)
	if err != nil {
		return GeneSpec{}, err
	}
	gene.Tau, err = optionalFloat(v, "tau", gene.Tau)
	if err != nil {
		return GeneSpec{}, err
	}

	switch {
	case gene.Lambda < 0 || gene.Lambda > 1:
		return GeneSpec{}, &CompileError{
			Field:   geneField(gene.ID, "lambda"),
			Message: fmt.Sprintf("coherence seed must be in [0, 1], got %v", gene.Lambda),
			Pos:     v.Pos(),
		}
	case gene.Gamma <= 0:
		return GeneSpec{}, &CompileError{
			Field:   geneField(gene.ID, "gamma"),
			Message: fmt.Sprintf("decoherence seed must be positive, got %v", gene.Gamma),
			Pos:     v.Pos(),
		}
	case gene.Phi < 0:
		return GeneSpec{}, &CompileError{
			Field:   geneField(gene.ID, "phi"),
			Message: fmt.Sprintf("information seed must be non-negative, got %v", gene.Phi),
			Pos:     v.Pos(),
		}
	}

	return gene, nil
}

// parseOperators extracts the operator glyph list.
func parseOperators(v cue.Value) ([]string, error) {
	opsVal := v.LookupPath(cue.ParsePath("operators"))
	if !opsVal.Exists() {
		return nil, nil
	}

	iter, err := opsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var ops []string
	for iter.Next() {
		op, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		ops = append(ops, norm.NFC.String(op))
	}

	return ops, nil
}

// parseConstants extracts configuration overrides. Keys must name a known
// constant; the full set lives in the setter table next to Build.
func parseConstants(v cue.Value) (map[string]float64, error) {
	constVal := v.LookupPath(cue.ParsePath("constants"))
	if !constVal.Exists() {
		return nil, nil
	}

	iter, err := constVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	constants := make(map[string]float64)
	for iter.Next() {
		key := iter.Label()
		if _, ok := constantSetters[key]; !ok {
			return nil, &CompileError{
				Field:   "constants." + key,
				Message: "unknown constant",
				Pos:     iter.Value().Pos(),
			}
		}
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		constants[key] = f
	}

	return constants, nil
}

func requiredFloat(v cue.Value, name, field string) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func optionalFloat(v cue.Value, name string, fallback float64) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return fallback, nil
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func geneField(id, field string) string {
	return fmt.Sprintf("genes.%s.%s", id, field)
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
