package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatrixGetSet verifies stored weights round-trip per dimension.
func TestMatrixGetSet(t *testing.T) {
	m := NewMatrix7D(3)

	m.Set(0, 1, 0, 0.25)
	m.Set(2, 2, 6, -4.0)

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 0.25, m.Get(0, 1, 0))
	assert.Equal(t, -4.0, m.Get(2, 2, 6))
	assert.Zero(t, m.Get(1, 0, 0))
}

// TestMatrixOutOfRange verifies reads outside the bounds return zero and
// writes outside are dropped.
func TestMatrixOutOfRange(t *testing.T) {
	m := NewMatrix7D(2)

	m.Set(5, 0, 0, 1.0)
	m.Set(0, 5, 0, 1.0)
	m.Set(0, 0, 7, 1.0)
	m.Set(-1, 0, 0, 1.0)

	assert.Zero(t, m.Get(5, 0, 0))
	assert.Zero(t, m.Get(0, 5, 0))
	assert.Zero(t, m.Get(0, 0, 7))
	assert.Zero(t, m.Get(-1, 0, 0))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for d := 0; d < 7; d++ {
				assert.Zero(t, m.Get(i, j, d))
			}
		}
	}
}

// TestMatrixNegativeSize verifies a negative size clamps to empty.
func TestMatrixNegativeSize(t *testing.T) {
	m := NewMatrix7D(-1)

	assert.Zero(t, m.Size())
	assert.Zero(t, m.Get(0, 0, 0))
}
