/*
Package reconcile compares the alleles a genotyping array reports for each
variant against the reference-genome allele, to find the variants that are
already on the reference strand, those that need a strand flip, and those
that cannot be reconciled.
*/
package reconcile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/array-qc/strandcheck/pkg/bim"
	"github.com/array-qc/strandcheck/pkg/metrics"
	"github.com/array-qc/strandcheck/pkg/reference"
)

var errNoLookup = errors.New("no reference allele lookup configured")

// Result is the classification of one variant
type Result struct {
	Variant  string
	A1       string
	A2       string
	Ref      byte
	Category Category
}

// Report holds the classification of every variant in input order, grouped
// by category, and a survey of the allele pairs seen
type Report struct {
	Results    []Result
	Survey     *Survey
	byCategory map[Category][]string
}

func NewReport() *Report {
	return &Report{Survey: NewSurvey(), byCategory: make(map[Category][]string)}
}

// Add classifies one variant against its reference allele and records it
func (rep *Report) Add(row bim.Row, ref byte) Result {
	res := Result{
		Variant: row.VariantID,
		A1:      strings.ToUpper(row.Allele1),
		A2:      strings.ToUpper(row.Allele2),
		Ref:     ref,
	}
	res.Category = Classify(res.A1, res.A2, ref)

	rep.Results = append(rep.Results, res)
	rep.byCategory[res.Category] = append(rep.byCategory[res.Category], res.Variant)
	rep.Survey.Add(row)

	return res
}

// Variants lists the variants in one category, in input order
func (rep *Report) Variants(c Category) []string {
	return rep.byCategory[c]
}

func (rep *Report) Count(c Category) int {
	return len(rep.byCategory[c])
}

// Counts lists the number of variants overall, per category, and with an
// ambiguous allele pair
func (rep *Report) Counts() []metrics.Count {
	counts := []metrics.Count{{Category: "variants", N: len(rep.Results)}}
	for _, c := range Categories {
		counts = append(counts, metrics.Count{Category: string(c), N: rep.Count(c)})
	}
	counts = append(counts, metrics.Count{Category: "ambiguous", N: len(rep.Survey.Ambiguous)})
	return counts
}

// Reconcile reads a bim file, looks up the reference allele of every variant
// once, and classifies it. A variant the lookup cannot find is classified
// no_ref; only a malformed bim line or a failing lookup backend stops the run.
func Reconcile(in io.Reader, lookup reference.Lookup) (*Report, error) {
	if lookup == nil {
		return nil, errNoLookup
	}

	r := bim.NewReader(in)
	rep := NewReport()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ref, err := lookup.RefAllele(reference.Query{Chrom: row.Chromosome, Pos: row.Coordinate, Name: row.VariantID})
		if err != nil {
			return nil, fmt.Errorf("reference allele of %s: %w", row.VariantID, err)
		}

		rep.Add(row, ref)
	}

	log.Debugf("classified %d variants", len(rep.Results))
	if n := rep.Count(Impossible); n > 0 {
		log.Warnf("%d variants have alleles that match neither the reference allele nor its complement", n)
	}

	return rep, nil
}

// WriteVar2Ref writes the "variant\tref" table, in input order. Variants with
// no reference allele are written with N.
func WriteVar2Ref(w io.Writer, rep *Report) error {
	for _, res := range rep.Results {
		if _, err := io.WriteString(w, res.Variant+"\t"+string(res.Ref)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteResults writes one line per variant with its alleles, reference
// allele and category
func WriteResults(w io.Writer, rep *Report) error {
	if _, err := io.WriteString(w, "#variant\ta1\ta2\tref\tcategory\n"); err != nil {
		return err
	}
	for _, res := range rep.Results {
		line := strings.Join([]string{res.Variant, res.A1, res.A2, string(res.Ref), string(res.Category)}, "\t")
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
