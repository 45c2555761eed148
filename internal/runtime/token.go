package runtime

import "github.com/google/uuid"

// TokenGenerator produces unique run tokens for report correlation.
// Implemented by UUIDv7Generator in production and by the fixed generator
// in testutil.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// The embedded timestamp makes tokens sort by creation time, which keeps
// report listings chronological without a separate sequence field.
//
// UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
//
// Panics if UUID generation fails, which does not happen in practice.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
