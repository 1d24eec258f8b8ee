package reconcile

import (
	"strings"

	"github.com/array-qc/strandcheck/pkg/alphabet"
)

// Category is the outcome of comparing a variant's alleles with the
// reference allele
type Category string

const (
	RefPresent     Category = "ref_present"
	Flipped        Category = "flipped"
	Impossible     Category = "impossible"
	Indel          Category = "indel"
	MissingVariant Category = "missing_variant"
	IllegalAlleles Category = "illegal_alleles"
	NoRef          Category = "no_ref"
)

// Categories lists every category in reporting order
var Categories = []Category{RefPresent, Flipped, Impossible, Indel, MissingVariant, IllegalAlleles, NoRef}

// Classify places an allele pair into a category given the reference allele.
// Alleles and reference are compared upper-cased. The first matching rule wins:
//  1. unknown reference: no_ref
//  2. two nucleotides: ref_present if either is the reference, flipped if
//     either is its complement, otherwise impossible
//  3. two indel markers: indel
//  4. two missing markers: missing_variant
//  5. anything else: illegal_alleles
func Classify(a1, a2 string, ref byte) Category {
	a1, a2 = strings.ToUpper(a1), strings.ToUpper(a2)
	if 'a' <= ref && ref <= 'z' {
		ref -= 'a' - 'A'
	}
	if !alphabet.IsNucleotide(ref) {
		return NoRef
	}

	switch {
	case alphabet.IsNucleotideCode(a1) && alphabet.IsNucleotideCode(a2):
		r := string(ref)
		if a1 == r || a2 == r {
			return RefPresent
		}
		c, _ := alphabet.ComplementCode(r)
		if a1 == c || a2 == c {
			return Flipped
		}
		return Impossible
	case alphabet.IsIndelCode(a1) && alphabet.IsIndelCode(a2):
		return Indel
	case alphabet.IsMissingCode(a1) && alphabet.IsMissingCode(a2):
		return MissingVariant
	}

	return IllegalAlleles
}
