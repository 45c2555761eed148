package genome

// GeneSpec is the declared seed for a single gene. Lambda, Gamma and Phi
// come from the genome file; Rho, Theta and Tau fall back to defaults when
// omitted (positive polarity, critical torsion, epoch zero).
type GeneSpec struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Lambda float64 `json:"lambda" yaml:"lambda"`
	Gamma  float64 `json:"gamma" yaml:"gamma"`
	Phi    float64 `json:"phi" yaml:"phi"`
	Rho    float64 `json:"rho" yaml:"rho"`
	Theta  float64 `json:"theta" yaml:"theta"`
	Tau    float64 `json:"tau" yaml:"tau"`
}

// GenomeSpec is a compiled genome definition: the gene seeds in declaration
// order plus any constant overrides for the configuration.
type GenomeSpec struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Genes       []GeneSpec         `json:"genes" yaml:"genes"`
	Operators   []string           `json:"operators,omitempty" yaml:"operators,omitempty"`
	Constants   map[string]float64 `json:"constants,omitempty" yaml:"constants,omitempty"`
}

// Gene returns the gene spec with the given ID, or nil if absent.
func (s *GenomeSpec) Gene(id string) *GeneSpec {
	for i := range s.Genes {
		if s.Genes[i].ID == id {
			return &s.Genes[i]
		}
	}
	return nil
}
