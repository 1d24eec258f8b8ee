package bim

import (
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/array-qc/strandcheck/pkg/alphabet"
)

// Indels lists the variants with an indel marker as either allele
func Indels(rows []Row) []string {
	var names []string
	for _, r := range rows {
		if alphabet.IsIndelCode(r.Allele1) || alphabet.IsIndelCode(r.Allele2) {
			names = append(names, r.VariantID)
		}
	}
	return names
}

// PositionKey is the "chrom_pos" key variants are grouped by
func PositionKey(r Row) string {
	return r.Chromosome + "_" + strconv.Itoa(r.Coordinate)
}

// Duplicates lists every variant that shares its position with another.
// Positions are emitted in key order; names within a position keep file order.
func Duplicates(rows []Row) []string {
	byPos := make(map[string][]string)
	for _, r := range rows {
		k := PositionKey(r)
		byPos[k] = append(byPos[k], r.VariantID)
	}

	keys := maps.Keys(byPos)
	slices.Sort(keys)

	var dups []string
	for _, k := range keys {
		if len(byPos[k]) > 1 {
			dups = append(dups, byPos[k]...)
		}
	}
	return dups
}
