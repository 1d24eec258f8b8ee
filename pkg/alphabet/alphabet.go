// Package alphabet provides nucleotide complementation and the allele code
// classes reported by genotyping arrays
package alphabet

import "strings"

// complements is indexed by byte; zero means "not a nucleotide"
var complements = MakeCompArray()

// MakeCompArray returns an array indexed by the (byte representation of) a
// nucleotide letter which gives its complement. Only A, C, G and T (either
// case) are filled in, everything else maps to zero.
func MakeCompArray() [256]byte {
	var compArray [256]byte

	compArray['A'] = 'T'
	compArray['T'] = 'A'
	compArray['C'] = 'G'
	compArray['G'] = 'C'

	compArray['a'] = 't'
	compArray['t'] = 'a'
	compArray['c'] = 'g'
	compArray['g'] = 'c'

	return compArray
}

// Complement returns the complement of one nucleotide letter, and false if
// b is not one of A, C, G or T
func Complement(b byte) (byte, bool) {
	c := complements[b]
	return c, c != 0
}

// IsNucleotide reports whether b is an upper case A, C, G or T
func IsNucleotide(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// IsNucleotideCode reports whether an allele code is a single upper case
// nucleotide letter
func IsNucleotideCode(code string) bool {
	return len(code) == 1 && IsNucleotide(code[0])
}

// IsIndelCode reports whether an allele code is one of the array indel
// markers: D, I, + or -
func IsIndelCode(code string) bool {
	switch code {
	case "D", "I", "+", "-":
		return true
	}
	return false
}

// IsMissingCode reports whether an allele code marks a missing allele: . or 0
func IsMissingCode(code string) bool {
	switch code {
	case ".", "0":
		return true
	}
	return false
}

// ComplementCode complements a single-nucleotide allele code. The second return
// value is false for indel, missing or unrecognised codes, which are never
// complemented.
func ComplementCode(code string) (string, bool) {
	if !IsNucleotideCode(code) {
		return "", false
	}
	c, _ := Complement(code[0])
	return string(c), true
}

// IsAmbiguousPair reports whether an allele pair is A/T or C/G (in either
// order). The strand of such a pair cannot be inferred from the alleles alone.
func IsAmbiguousPair(a1, a2 string) bool {
	a1 = strings.ToUpper(a1)
	a2 = strings.ToUpper(a2)
	c, ok := ComplementCode(a1)
	if !ok || !IsNucleotideCode(a2) {
		return false
	}
	return c == a2
}
