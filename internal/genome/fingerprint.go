package genome

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// DomainGenome is the domain prefix for genome fingerprints.
// Version suffix enables future algorithm migration.
const DomainGenome = "dnalang/genome/v1"

// Fingerprint computes the content-addressed identity of a genome:
// SHA-256 over the canonical serialization with domain separation. The
// fingerprint is stable across file moves, comment changes and Unicode
// recomposition, and changes whenever a seed, constant, operator or the
// gene order changes.
func Fingerprint(spec *GenomeSpec) (string, error) {
	canonical, err := CanonicalBytes(spec)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	return hashWithDomain(DomainGenome, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(spec *GenomeSpec) string {
	fp, err := Fingerprint(spec)
	if err != nil {
		panic(err)
	}
	return fp
}

// CanonicalBytes produces the canonical JSON form a fingerprint hashes:
// object keys sorted, strings NFC normalized without HTML escaping, floats
// in shortest round-trip notation, genes in declaration order (order is
// part of a genome's meaning) and constants sorted by key. Every key is
// present even when empty, so the byte form is a total function of the
// genome's content.
//
// This is deliberately not RFC 8785: seeds are floating point, so the
// canonical form pins strconv's shortest 'g' formatting instead of
// forbidding floats.
func CanonicalBytes(spec *GenomeSpec) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"constants":{`)

	keys := make([]string, 0, len(spec.Constants))
	for k := range spec.Constants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(&buf, k); err != nil {
			return nil, fmt.Errorf("constant key %q: %w", k, err)
		}
		buf.WriteByte(':')
		if err := writeCanonicalFloat(&buf, spec.Constants[k]); err != nil {
			return nil, fmt.Errorf("constant %s: %w", k, err)
		}
	}

	buf.WriteString(`},"description":`)
	if err := writeCanonicalString(&buf, spec.Description); err != nil {
		return nil, fmt.Errorf("description: %w", err)
	}

	buf.WriteString(`,"genes":[`)
	for i := range spec.Genes {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalGene(&buf, &spec.Genes[i]); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`],"name":`)
	if err := writeCanonicalString(&buf, spec.Name); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	buf.WriteString(`,"operators":[`)
	for i, op := range spec.Operators {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(&buf, op); err != nil {
			return nil, fmt.Errorf("operator[%d]: %w", i, err)
		}
	}
	buf.WriteString(`]}`)

	return buf.Bytes(), nil
}

// writeCanonicalGene writes one gene object with keys in sorted order.
func writeCanonicalGene(buf *bytes.Buffer, g *GeneSpec) error {
	buf.WriteString(`{"gamma":`)
	if err := writeCanonicalFloat(buf, g.Gamma); err != nil {
		return fmt.Errorf("gene %s: gamma: %w", g.ID, err)
	}
	buf.WriteString(`,"id":`)
	if err := writeCanonicalString(buf, g.ID); err != nil {
		return fmt.Errorf("gene %s: id: %w", g.ID, err)
	}
	buf.WriteString(`,"lambda":`)
	if err := writeCanonicalFloat(buf, g.Lambda); err != nil {
		return fmt.Errorf("gene %s: lambda: %w", g.ID, err)
	}
	buf.WriteString(`,"name":`)
	if err := writeCanonicalString(buf, g.Name); err != nil {
		return fmt.Errorf("gene %s: name: %w", g.ID, err)
	}
	buf.WriteString(`,"phi":`)
	if err := writeCanonicalFloat(buf, g.Phi); err != nil {
		return fmt.Errorf("gene %s: phi: %w", g.ID, err)
	}
	buf.WriteString(`,"rho":`)
	if err := writeCanonicalFloat(buf, g.Rho); err != nil {
		return fmt.Errorf("gene %s: rho: %w", g.ID, err)
	}
	buf.WriteString(`,"tau":`)
	if err := writeCanonicalFloat(buf, g.Tau); err != nil {
		return fmt.Errorf("gene %s: tau: %w", g.ID, err)
	}
	buf.WriteString(`,"theta":`)
	if err := writeCanonicalFloat(buf, g.Theta); err != nil {
		return fmt.Errorf("gene %s: theta: %w", g.ID, err)
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString produces a canonical JSON string with NFC
// normalization and no HTML escaping (<, >, & stay literal).
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var enc bytes.Buffer
	e := json.NewEncoder(&enc)
	e.SetEscapeHTML(false)
	if err := e.Encode(normalized); err != nil {
		return err
	}

	// json.Encoder adds trailing newline, remove it
	result := enc.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	buf.Write(result)
	return nil
}

// writeCanonicalFloat writes the shortest decimal that round-trips to the
// same float64. Non-finite seeds have no canonical form.
func writeCanonicalFloat(buf *bytes.Buffer, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite value %v", v)
	}
	buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
