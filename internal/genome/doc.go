// Package genome compiles CUE genome definitions into organisms.
//
// A genome file declares one or more genomes under the top-level "genome"
// struct:
//
//	genome: crsm7_z3mesh: {
//		description: "Standard five-gene manifold"
//		operators: ["∇7D", "Π±"]
//		genes: aura: {name: "AURA", lambda: 0.89, gamma: 0.001, phi: 8.1}
//		constants: {emergence_threshold: 7.0}
//	}
//
// Compile turns one CUE genome value into a GenomeSpec; LoadGenomes walks
// a directory of .cue files and compiles everything it finds. Build then
// constructs the organism and the effective configuration, applying any
// constant overrides. Fingerprint gives a genome a content-addressed
// identity derived from a canonical serialization.
//
// All names cross the compile boundary NFC-normalized, so genomes that
// differ only in Unicode composition are the same genome.
package genome
