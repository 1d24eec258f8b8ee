package strand

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/array-qc/strandcheck/pkg/psl"
)

// ReadReport reads a strand report written by Run. Comment lines starting
// with # and blank lines are skipped.
func ReadReport(r io.Reader) ([]Placement, error) {
	var (
		rows []Placement
		n    int
	)

	s := bufio.NewScanner(r)
	for s.Scan() {
		n++
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 6 {
			return nil, fmt.Errorf("strand report line %d: expected 6 tab-separated fields, got %d", n, len(fields))
		}

		pos, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("strand report line %d: position: %w", n, err)
		}
		pct, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("strand report line %d: pct_match: %w", n, err)
		}

		var strand psl.Strand
		switch fields[4] {
		case "+":
			strand = psl.Plus
		case "-":
			strand = psl.Minus
		default:
			return nil, fmt.Errorf("strand report line %d: invalid strand %q", n, fields[4])
		}

		rows = append(rows, Placement{
			Name:    fields[0],
			Chrom:   fields[1],
			Pos:     pos,
			PctID:   pct,
			Strand:  strand,
			Alleles: fields[5],
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

// Names lists the probe names of a report, in report order
func Names(rows []Placement) []string {
	names := make([]string, len(rows))
	for i, p := range rows {
		names[i] = p.Name
	}
	return names
}

// MinusStrand lists the probes placed on the minus strand. These are the
// variants to flip when strand is taken from the report rather than from
// reference allele comparison.
func MinusStrand(rows []Placement) []string {
	var names []string
	for _, p := range rows {
		if p.Strand == psl.Minus {
			names = append(names, p.Name)
		}
	}
	return names
}

// WriteChromMap writes "name\tchrom" lines, the input to plink --update-chr
func WriteChromMap(w io.Writer, rows []Placement) error {
	for _, p := range rows {
		if _, err := io.WriteString(w, p.Name+"\t"+p.Chrom+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WritePosMap writes "name\tposition" lines, the input to plink --update-map
func WritePosMap(w io.Writer, rows []Placement) error {
	for _, p := range rows {
		if _, err := io.WriteString(w, p.Name+"\t"+strconv.Itoa(p.Pos)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
