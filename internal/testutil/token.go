package testutil

// FixedTokenGenerator returns the same run token every time.
//
// Reports produced with a FixedTokenGenerator are byte-identical across
// runs, which is what golden comparisons need.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent
// use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a fixed run token generator.
//
// If token is empty, Generate returns "test-run-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements runtime.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
