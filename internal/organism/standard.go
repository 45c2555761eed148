package organism

import "github.com/ENKI-420/dnalang/internal/crsm"

// StandardName is the name of the reference five-gene organism.
const StandardName = "CRSM7_Z3MESH"

// StandardOperators lists the operator tags the reference organism carries.
var StandardOperators = []string{"∇7D", "Π±", "KΓ", "DΛ", "Jθ", "Ω∞"}

// standardSeeds are the canonical gene seeds of the reference organism.
// Every seed starts at polarity +1, critical torsion, and epoch zero.
var standardSeeds = []struct {
	id     string
	name   string
	lambda float64
	gamma  float64
	phi    float64
}{
	{"aura", "AURA", 0.89, 0.001, 8.1},
	{"aiden", "AIDEN", 0.87, 0.002, 7.9},
	{"cccce", "CCCcE", 0.88, 0.001, 8.0},
	{"sentinel", "SENTINEL", 0.91, 0.001, 8.2},
	{"z3bra", "Z3BRA", 0.86, 0.003, 7.8},
}

// NewStandard returns the reference organism: five genes with canonical
// seeds and the default aggregate state.
func NewStandard(cfg crsm.Config) *Organism {
	org := New(cfg, StandardName, StandardOperators...)
	for _, seed := range standardSeeds {
		state := crsm.NewState(cfg, seed.lambda, seed.gamma, seed.phi, 1.0, cfg.ThetaCritical, 0.0)
		// AddGene cannot fail here: seed IDs are unique by construction.
		_ = org.AddGene(NewGeneWithState(seed.id, seed.name, state))
	}
	return org
}
