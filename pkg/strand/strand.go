/*
Package strand resolves the genomic placement and strand of genotyping array
probes from their BLAT alignments, and reads and writes the resulting strand
report.
*/
package strand

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/array-qc/strandcheck/pkg/metrics"
	"github.com/array-qc/strandcheck/pkg/psl"
)

// Headers of the report and the rejection files
const (
	ReportHeader        = "#name\tchrom\tposition\tpct_match\tstrand\tdesign_alleles\n"
	MissingHeader       = "# entries without a >90% match\n"
	MultiHeader         = "# entries with more than one >90% match\n"
	DiscordantHeader    = "# entries with >90% matches on both strands\n"
	BadThreePrimeHeader = "# 3'-end not aligned as detected by query_length != query_end\n"
)

// Outputs are the destinations of a strand run. A nil writer discards its
// output.
type Outputs struct {
	Report        io.Writer
	Missing       io.Writer
	Multi         io.Writer
	Discordant    io.Writer
	BadThreePrime io.Writer
}

func (o *Outputs) fill() {
	for _, w := range []*io.Writer{&o.Report, &o.Missing, &o.Multi, &o.Discordant, &o.BadThreePrime} {
		if *w == nil {
			*w = io.Discard
		}
	}
}

// Summary counts what happened to every probe and record in a run
type Summary struct {
	Records            int
	Probes             int
	Resolved           int
	NoMatch            int
	MultipleFullLength int
	MultipleGood       int
	DiscordantStrand   int
	BadThreePrime      int // records, not probes
}

// Counts lists the summary in a fixed order for reporting
func (s Summary) Counts() []metrics.Count {
	return []metrics.Count{
		{Category: "records", N: s.Records},
		{Category: "probes", N: s.Probes},
		{Category: "resolved", N: s.Resolved},
		{Category: "no_match", N: s.NoMatch},
		{Category: "multiple_full_length", N: s.MultipleFullLength},
		{Category: "multiple_good", N: s.MultipleGood},
		{Category: "discordant_strand", N: s.DiscordantStrand},
		{Category: "bad_3prime_records", N: s.BadThreePrime},
	}
}

// Load reads a whole psl file into an Arena. Any malformed line aborts the load.
func Load(in io.Reader) (*Arena, int, error) {
	r := psl.NewReader(in)
	arena := NewArena()
	n := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, n, err
		}
		arena.Add(rec)
		n++
	}
	return arena, n, nil
}

// Run reads BLAT alignments of array probes from in, resolves every probe, and
// writes the strand report (sorted by probe name) and the rejection streams.
func Run(in io.Reader, out Outputs) (Summary, error) {
	out.fill()

	var s Summary

	arena, n, err := Load(in)
	if err != nil {
		return s, err
	}
	s.Records = n
	s.Probes = arena.Len()
	log.Debugf("read %d alignments for %d probes", s.Records, s.Probes)

	for _, h := range []struct {
		w    io.Writer
		text string
	}{
		{out.Report, ReportHeader},
		{out.Missing, MissingHeader},
		{out.Multi, MultiHeader},
		{out.Discordant, DiscordantHeader},
		{out.BadThreePrime, BadThreePrimeHeader},
	} {
		if _, err := io.WriteString(h.w, h.text); err != nil {
			return s, err
		}
	}

	for _, name := range arena.Names() {
		set := arena.Get(name)

		for _, rec := range set.BadThreePrime {
			s.BadThreePrime++
			_, err = fmt.Fprintf(out.BadThreePrime, "%s\t%s\t%d\n", rec.Query.Name, rec.TChrom, rec.Position())
			if err != nil {
				return s, err
			}
		}

		res := Resolve(set)

		if res.DiscordantStrand {
			s.DiscordantStrand++
			if _, err = io.WriteString(out.Discordant, name+"\n"); err != nil {
				return s, err
			}
		}

		switch res.Status {
		case NoMatch:
			s.NoMatch++
			if len(set.Raw()) > 0 {
				_, err = io.WriteString(out.Missing, strings.Join(set.Raw(), "\n")+"\n")
			}
		case MultipleFullLength:
			s.MultipleFullLength++
			_, err = io.WriteString(out.Multi, name+": multiple full length matches\n")
		case Resolved:
			s.Resolved++
			if res.MultipleGood {
				s.MultipleGood++
				_, err = io.WriteString(out.Multi, name+": multiple pct_id > 90% matches\n")
				if err != nil {
					return s, err
				}
			}
			err = writePlacement(out.Report, res.Placement)
		}
		if err != nil {
			return s, err
		}
	}

	if s.NoMatch > 0 || s.MultipleFullLength > 0 {
		log.Warnf("%d probes without a match, %d with multiple full length matches", s.NoMatch, s.MultipleFullLength)
	}

	return s, nil
}

// FormatPct formats a percent identity the way the report writes it
func FormatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

func writePlacement(w io.Writer, p Placement) error {
	_, err := io.WriteString(w, strings.Join([]string{
		p.Name,
		p.Chrom,
		strconv.Itoa(p.Pos),
		FormatPct(p.PctID),
		p.Strand.String(),
		p.Alleles,
	}, "\t")+"\n")
	return err
}
