// Package mesh implements the Z3 topology over gene vertices.
//
// Vertices are genes; edges carry a decoherence value seeded from the
// average of their endpoints and a weight equal to the 7D Euclidean
// distance between the endpoint states. Edge decoherence decays on each
// evolution step, and an edge whose decoherence falls under the binding
// threshold binds its endpoints: a collapse then averages their coherence
// and information.
package mesh
