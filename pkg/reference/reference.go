/*
Package reference looks up the reference-genome allele of a variant. Lookups
are either positional, against an indexed fasta of the reference assembly, or
by variant name, against a precomputed variant -> allele table held in memory
or in a SQLite database.
*/
package reference

import (
	"strings"
)

// Unknown is returned for a variant whose reference allele is not available
const Unknown byte = 'N'

// Query identifies the variant to look up. Positional backends use Chrom and
// Pos (1-based); table backends use Name.
type Query struct {
	Chrom string
	Pos   int
	Name  string
}

// Lookup returns the upper case reference allele for a variant, or Unknown.
// A variant that cannot be found is not an error; errors are reserved for a
// backend that can no longer be read.
type Lookup interface {
	RefAllele(q Query) (byte, error)
}

// normalise reduces a looked-up allele to one of A, C, G, T or Unknown
func normalise(s string) byte {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 {
		return Unknown
	}
	switch s[0] {
	case 'A', 'C', 'G', 'T':
		return s[0]
	}
	return Unknown
}
