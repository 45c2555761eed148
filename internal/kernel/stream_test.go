package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// TestStreamMatchesExecute verifies the streamed contributions sum to the
// Execute total and arrive in gene order.
func TestStreamMatchesExecute(t *testing.T) {
	cfg := crsm.DefaultConfig()
	k := New(cfg)
	genes := []*organism.Gene{
		geneAt(cfg, "a", 0.9, 0.01, -1.0),
		geneAt(cfg, "b", 0.8, 0.2, -1.0),
		geneAt(cfg, "c", 0.95, 0.001, 1.0),
	}

	s := k.Stream(genes, 0.01)
	total := 0.0
	var order []string
	for s.Next() {
		order = append(order, s.Gene().ID)
		total += s.Value()
	}

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.InDelta(t, k.Execute(genes, 0.01), total, 1e-15)
}

// TestStreamExhausted verifies a finished stream stays finished.
func TestStreamExhausted(t *testing.T) {
	cfg := crsm.DefaultConfig()
	k := New(cfg)
	s := k.Stream([]*organism.Gene{geneAt(cfg, "only", 0.9, 0.01, -1.0)}, 0.01)

	require.True(t, s.Next())
	require.False(t, s.Next())
	assert.False(t, s.Next())
	assert.Nil(t, s.Gene())
}

// TestStreamEmpty verifies an empty stream never yields.
func TestStreamEmpty(t *testing.T) {
	k := New(crsm.DefaultConfig())
	s := k.Stream(nil, 0.01)

	assert.False(t, s.Next())
	assert.Nil(t, s.Gene())
}
