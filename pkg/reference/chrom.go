package reference

import (
	"fmt"
	"strings"
)

// ChromStyle is a chromosome naming convention. Array exports usually name
// chromosomes the plink way (1-26) while reference fastas use either the
// UCSC (chr1, chrX, chrM) or Ensembl (1, X, MT) names.
type ChromStyle int

const (
	AsIs ChromStyle = iota
	UCSC
	Ensembl
	Plink
)

var styleNames = map[string]ChromStyle{
	"asis":    AsIs,
	"ucsc":    UCSC,
	"ensembl": Ensembl,
	"plink":   Plink,
}

// ParseChromStyle parses asis, ucsc, ensembl or plink
func ParseChromStyle(s string) (ChromStyle, error) {
	st, ok := styleNames[strings.ToLower(s)]
	if !ok {
		return AsIs, fmt.Errorf("unknown chromosome style %q (want asis, ucsc, ensembl or plink)", s)
	}
	return st, nil
}

// canonical strips any chr prefix and maps plink's numeric sex/mito codes
// to X, Y, XY and MT
func canonical(chrom string) string {
	c := chrom
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}
	switch strings.ToUpper(c) {
	case "23", "X":
		return "X"
	case "24", "Y":
		return "Y"
	case "25", "XY":
		return "XY"
	case "26", "M", "MT":
		return "MT"
	}
	return c
}

// Rename converts a chromosome name to this style
func (st ChromStyle) Rename(chrom string) string {
	if st == AsIs {
		return chrom
	}
	c := canonical(chrom)
	switch st {
	case UCSC:
		if c == "MT" {
			return "chrM"
		}
		return "chr" + c
	case Plink:
		switch c {
		case "X":
			return "23"
		case "Y":
			return "24"
		case "XY":
			return "25"
		case "MT":
			return "26"
		}
	}
	return c
}
