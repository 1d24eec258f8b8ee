/*
Package psl reads BLAT alignment output in psl format and computes the UCSC
pslScore quality metrics (score and percent identity) for each alignment
*/
package psl

import (
	"math"
)

// Strand is the query strand of one alignment: '+' or '-'
type Strand byte

const (
	Plus  Strand = '+'
	Minus Strand = '-'
)

func (s Strand) String() string {
	return string(s)
}

// QueryName is the structured form of a probe's query name. Probe fasta files
// carry "name;alleles;chrom;pos" as the sequence id, and BLAT copies it through
// to the qName column.
type QueryName struct {
	Name    string // probe/variant name
	Alleles string // design alleles, eg "A/G"
	Chrom   string // chromosome according to the array manifest
	Pos     string // position according to the array manifest
}

// A struct for one psl alignment record
type Record struct {
	Query QueryName

	Matches    int
	Mismatches int
	RepMatches int
	QGaps      int // number of inserts in the query
	TGaps      int // number of inserts in the target

	QSize  int
	QStart int
	QEnd   int

	TChrom string
	TStart int
	TEnd   int

	Strand Strand

	Line string // the raw input line, kept for reporting
	Idx  int    // line number in the input file
}

// AlignedBases is matches + repeat matches + mismatches
func (r Record) AlignedBases() int {
	return r.Matches + r.RepMatches + r.Mismatches
}

// Score is the pslScore alignment score:
// matches + repMatches/2 - mismatches - qGaps - tGaps
func (r Record) Score() int {
	return r.Matches + r.RepMatches/2 - r.Mismatches - r.QGaps - r.TGaps
}

// milliBad ports pslCalcMilliBad. It returns false if there are no aligned
// bases to divide by.
func (r Record) milliBad() (int, bool) {
	qSpan := r.QEnd - r.QStart
	tSpan := r.TEnd - r.TStart
	if min(qSpan, tSpan) <= 0 {
		return 1000, true
	}

	// ignore introns
	sizeDiff := max(0, qSpan-tSpan)

	total := r.AlignedBases()
	if total == 0 {
		return 0, false
	}

	// math.Round rounds half away from zero
	rounded := int(math.Round(3 * math.Log(1+float64(sizeDiff))))

	return 1000 * (r.Mismatches + r.QGaps + r.TGaps + rounded) / total, true
}

// PercentIdentity returns the pslScore percent identity of the alignment,
// in [0, 100]. An alignment with no aligned bases has no defined identity
// and the second return value is false.
func (r Record) PercentIdentity() (float64, bool) {
	mb, ok := r.milliBad()
	if !ok {
		return 0, false
	}
	if mb > 1000 {
		mb = 1000
	}
	return float64(1000-mb) / 10, true
}

// ThreePrimeAligned is true if the alignment reaches the 3' end of the query
func (r Record) ThreePrimeAligned() bool {
	return r.QEnd == r.QSize
}

// FullLength is true if the whole query aligns with no mismatches and no gaps
func (r Record) FullLength() bool {
	return r.Mismatches == 0 && r.QGaps == 0 && r.TGaps == 0 && r.QEnd-r.QStart == r.QSize
}

// Position is the 1-based genomic position of the base immediately after the
// probe's 3' end: tEnd + 1 on the plus strand, tStart on the minus strand.
func (r Record) Position() int {
	if r.Strand == Minus {
		return r.TStart
	}
	return r.TEnd + 1
}
