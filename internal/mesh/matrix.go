package mesh

// dims is the number of manifold dimensions tracked per vertex pair.
const dims = 7

// Matrix7D stores a per-dimension weight for every ordered vertex pair.
// Reads outside the matrix bounds return zero; writes outside are dropped.
type Matrix7D struct {
	size int
	data []float64
}

// NewMatrix7D returns a zeroed size×size×7 matrix.
func NewMatrix7D(size int) *Matrix7D {
	if size < 0 {
		size = 0
	}
	return &Matrix7D{
		size: size,
		data: make([]float64, size*size*dims),
	}
}

// Size returns the vertex count the matrix covers.
func (m *Matrix7D) Size() int {
	return m.size
}

// Get returns the weight at (i, j) along dimension d.
func (m *Matrix7D) Get(i, j, d int) float64 {
	if i < 0 || j < 0 || d < 0 || i >= m.size || j >= m.size || d >= dims {
		return 0.0
	}
	return m.data[i*m.size*dims+j*dims+d]
}

// Set stores the weight at (i, j) along dimension d.
func (m *Matrix7D) Set(i, j, d int, value float64) {
	if i < 0 || j < 0 || d < 0 || i >= m.size || j >= m.size || d >= dims {
		return
	}
	m.data[i*m.size*dims+j*dims+d] = value
}

// grow returns a copy of the matrix enlarged to the new size, keeping all
// existing weights in place.
func (m *Matrix7D) grow(size int) *Matrix7D {
	next := NewMatrix7D(size)
	for i := 0; i < m.size; i++ {
		for j := 0; j < m.size; j++ {
			for d := 0; d < dims; d++ {
				next.Set(i, j, d, m.Get(i, j, d))
			}
		}
	}
	return next
}
