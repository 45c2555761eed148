package genome

import (
	"fmt"
	"sort"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// constantSetters maps constant override keys to Config fields. The compile
// step validates keys against this table; Build applies the values.
var constantSetters = map[string]func(*crsm.Config, float64){
	"theta_critical":            func(c *crsm.Config, v float64) { c.ThetaCritical = v },
	"det_critical":              func(c *crsm.Config, v float64) { c.DetCritical = v },
	"alpha":                     func(c *crsm.Config, v float64) { c.Alpha = v },
	"gamma_tolerance":           func(c *crsm.Config, v float64) { c.GammaTolerance = v },
	"emergence_threshold":       func(c *crsm.Config, v float64) { c.EmergenceThreshold = v },
	"emergence_cap":             func(c *crsm.Config, v float64) { c.EmergenceCap = v },
	"sovereignty_threshold":     func(c *crsm.Config, v float64) { c.SovereigntyThreshold = v },
	"lambda_ceiling":            func(c *crsm.Config, v float64) { c.LambdaCeiling = v },
	"lambda_seal_threshold":     func(c *crsm.Config, v float64) { c.LambdaSealThreshold = v },
	"lambda_phi_seal_threshold": func(c *crsm.Config, v float64) { c.LambdaPhiSealThreshold = v },
	"suppression_factor":        func(c *crsm.Config, v float64) { c.SuppressionFactor = v },
	"elevation_factor":          func(c *crsm.Config, v float64) { c.ElevationFactor = v },
	"phi_gain":                  func(c *crsm.Config, v float64) { c.PhiGain = v },
}

// ConstantKeys lists the recognized constant override keys in sorted order.
func ConstantKeys() []string {
	keys := make([]string, 0, len(constantSetters))
	for k := range constantSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Build constructs the organism a genome describes, plus the effective
// configuration after constant overrides. The base configuration is usually
// crsm.DefaultConfig; overrides replace individual fields and the result
// must still validate.
//
// Gene torsion defaults are resolved at compile time, so overriding
// theta_critical here does not retarget genes that omitted theta.
func Build(spec *GenomeSpec, base crsm.Config) (*organism.Organism, crsm.Config, error) {
	cfg := base
	for key, value := range spec.Constants {
		setter, ok := constantSetters[key]
		if !ok {
			return nil, crsm.Config{}, fmt.Errorf("genome %s: unknown constant %q", spec.Name, key)
		}
		setter(&cfg, value)
	}
	if err := cfg.Validate(); err != nil {
		return nil, crsm.Config{}, fmt.Errorf("genome %s: %w", spec.Name, err)
	}

	org := organism.New(cfg, spec.Name, spec.Operators...)
	for _, g := range spec.Genes {
		state := crsm.NewState(cfg, g.Lambda, g.Gamma, g.Phi, g.Rho, g.Theta, g.Tau)
		if err := org.AddGene(organism.NewGeneWithState(g.ID, g.Name, state)); err != nil {
			return nil, crsm.Config{}, fmt.Errorf("genome %s: %w", spec.Name, err)
		}
	}

	return org, cfg, nil
}
