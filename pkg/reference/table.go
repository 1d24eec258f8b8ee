package reference

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TableLookup is a variant name -> reference allele table held in memory
type TableLookup struct {
	refs map[string]byte
}

// ReadTable reads a two-column, whitespace-separated "variant ref" table.
// Lines starting with # and blank lines are skipped. A variant listed twice
// keeps its last allele.
func ReadTable(r io.Reader) (*TableLookup, error) {
	t := &TableLookup{refs: make(map[string]byte)}

	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("var2ref line %d: expected 2 columns, got %d: %q", n, len(fields), line)
		}
		t.refs[fields[0]] = normalise(fields[1])
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// Len is the number of variants in the table
func (t *TableLookup) Len() int {
	return len(t.refs)
}

// Each calls fn for every variant in the table, in no particular order
func (t *TableLookup) Each(fn func(variant string, ref byte) error) error {
	for v, ref := range t.refs {
		if err := fn(v, ref); err != nil {
			return err
		}
	}
	return nil
}

// RefAllele looks the variant up by name
func (t *TableLookup) RefAllele(q Query) (byte, error) {
	ref, ok := t.refs[q.Name]
	if !ok {
		return Unknown, nil
	}
	return ref, nil
}
