package strand

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/array-qc/strandcheck/pkg/psl"
)

// GoodIdentity is the percent identity an alignment must exceed to be
// considered as a placement for its probe
const GoodIdentity = 90.0

// MatchSet is every alignment seen for one probe
type MatchSet struct {
	Name    string
	Records int

	// Good are 3'-aligned alignments with identity > GoodIdentity, in input order
	Good []psl.Record
	// BadThreePrime are alignments that do not reach the end of the query
	BadThreePrime []psl.Record

	// raw input lines, only retained while the probe has no good alignment
	raw []string
}

// Raw returns the input lines of a probe that has no good alignment
func (s *MatchSet) Raw() []string {
	return s.raw
}

// Arena groups alignment records by probe name. Sets only ever grow; the
// order of Names() is sorted and does not depend on insertion order.
type Arena struct {
	index map[string]int
	sets  []MatchSet
}

func NewArena() *Arena {
	return &Arena{index: make(map[string]int)}
}

// Add files one record under its probe name
func (a *Arena) Add(rec psl.Record) {
	i, ok := a.index[rec.Query.Name]
	if !ok {
		i = len(a.sets)
		a.sets = append(a.sets, MatchSet{Name: rec.Query.Name})
		a.index[rec.Query.Name] = i
	}
	s := &a.sets[i]
	s.Records++

	good := false
	if rec.ThreePrimeAligned() {
		pct, ok := rec.PercentIdentity()
		good = ok && pct > GoodIdentity
	} else {
		s.BadThreePrime = append(s.BadThreePrime, rec)
	}

	if good {
		s.Good = append(s.Good, rec)
		s.raw = nil
		return
	}

	if len(s.Good) == 0 {
		s.raw = append(s.raw, rec.Line)
	}
}

// Len is the number of distinct probes
func (a *Arena) Len() int {
	return len(a.sets)
}

// Names returns the probe names in ascending order
func (a *Arena) Names() []string {
	names := maps.Keys(a.index)
	slices.Sort(names)
	return names
}

// Get returns the MatchSet for a probe, or nil
func (a *Arena) Get(name string) *MatchSet {
	i, ok := a.index[name]
	if !ok {
		return nil
	}
	return &a.sets[i]
}
