package reconcile

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/array-qc/strandcheck/pkg/alphabet"
	"github.com/array-qc/strandcheck/pkg/bim"
)

// Survey splits variants into those with an ambiguous (A/T, C/G) allele pair
// and the rest, and counts how often each allele pair occurs
type Survey struct {
	Ambiguous    []string
	NonAmbiguous []string

	ambiguous map[string]bool
	pairs     map[string]int
}

func NewSurvey() *Survey {
	return &Survey{ambiguous: make(map[string]bool), pairs: make(map[string]int)}
}

// Add surveys one variant. Alleles are counted upper-cased.
func (s *Survey) Add(row bim.Row) {
	a1, a2 := strings.ToUpper(row.Allele1), strings.ToUpper(row.Allele2)
	s.pairs[a1+"\t"+a2]++
	if alphabet.IsAmbiguousPair(a1, a2) {
		s.Ambiguous = append(s.Ambiguous, row.VariantID)
		s.ambiguous[row.VariantID] = true
	} else {
		s.NonAmbiguous = append(s.NonAmbiguous, row.VariantID)
	}
}

// IsAmbiguous reports whether a surveyed variant has an ambiguous allele pair.
// A variant ID seen more than once is ambiguous if any of its rows is.
func (s *Survey) IsAmbiguous(variant string) bool {
	return s.ambiguous[variant]
}

// SurveyAlleles surveys every variant in a bim file
func SurveyAlleles(in io.Reader) (*Survey, error) {
	r := bim.NewReader(in)
	s := NewSurvey()
	for {
		row, err := r.Read()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		s.Add(row)
	}
}

// WritePairCounts writes "a1\ta2\tcount" lines sorted by allele pair
func (s *Survey) WritePairCounts(w io.Writer) error {
	if _, err := io.WriteString(w, "#a1\ta2\tcount\n"); err != nil {
		return err
	}
	keys := maps.Keys(s.pairs)
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := io.WriteString(w, k+"\t"+strconv.Itoa(s.pairs[k])+"\n"); err != nil {
			return err
		}
	}
	return nil
}
