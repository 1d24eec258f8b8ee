package strand

import (
	"github.com/array-qc/strandcheck/pkg/psl"
)

// Status is the outcome of resolving one probe
type Status int

const (
	Resolved Status = iota
	NoMatch
	MultipleFullLength
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NoMatch:
		return "no_match"
	case MultipleFullLength:
		return "multiple_full_length"
	}
	return "unknown"
}

// Placement is the genomic location a probe was resolved to
type Placement struct {
	Name    string
	Chrom   string
	Pos     int
	PctID   float64
	Strand  psl.Strand
	Alleles string
}

// Resolution is the result for one probe. Placement is only set when Status
// is Resolved.
type Resolution struct {
	Name      string
	Status    Status
	Placement Placement

	// MultipleGood is set when more than one partial match reached the best
	// score seen so far. The probe is still resolved.
	MultipleGood bool
	// DiscordantStrand is set when the good matches are on both strands
	DiscordantStrand bool
}

func placementOf(rec psl.Record) Placement {
	pct, _ := rec.PercentIdentity()
	return Placement{
		Name:    rec.Query.Name,
		Chrom:   rec.TChrom,
		Pos:     rec.Position(),
		PctID:   pct,
		Strand:  rec.Strand,
		Alleles: rec.Query.Alleles,
	}
}

func discordant(recs []psl.Record) bool {
	for _, rec := range recs[1:] {
		if rec.Strand != recs[0].Strand {
			return true
		}
	}
	return false
}

// Resolve picks the best placement for one probe:
//   - no good match: NoMatch
//   - one full-length match: that match
//   - more than one full-length match: MultipleFullLength, no placement
//   - otherwise the partial match with the highest score, first seen winning ties
func Resolve(s *MatchSet) Resolution {
	res := Resolution{Name: s.Name}

	if len(s.Good) == 0 {
		res.Status = NoMatch
		return res
	}

	res.DiscordantStrand = discordant(s.Good)

	var (
		full       []psl.Record
		best       psl.Record
		haveBest   bool
		contenders int
	)

	for _, rec := range s.Good {
		if rec.FullLength() {
			full = append(full, rec)
			continue
		}
		switch {
		case !haveBest:
			best = rec
			haveBest = true
			contenders = 1
		case rec.Score() > best.Score():
			best = rec
			contenders++
		case rec.Score() == best.Score():
			contenders++
		}
	}

	switch {
	case len(full) > 1:
		res.Status = MultipleFullLength
	case len(full) == 1:
		res.Status = Resolved
		res.Placement = placementOf(full[0])
	default:
		res.Status = Resolved
		res.Placement = placementOf(best)
		res.MultipleGood = contenders > 1
	}

	return res
}
