package psl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// column positions in a psl line
const (
	colMatches    = 0
	colMismatches = 1
	colRepMatches = 2
	colQGaps      = 4
	colTGaps      = 6
	colStrand     = 8
	colQName      = 9
	colQSize      = 10
	colQStart     = 11
	colQEnd       = 12
	colTName      = 13
	colTStart     = 15
	colTEnd       = 16

	minColumns = 17
)

// QueryNameSep separates the fields of a probe query name
const QueryNameSep = ";"

var (
	errBadStrand    = errors.New("invalid strand")
	errShortLine    = fmt.Errorf("fewer than %d columns", minColumns)
	errBadQueryName = errors.New("query name is not name;alleles;chrom;pos")
	errNoSeparator  = errors.New("no psl header separator line (----) before data")
)

// ParseError reports a psl line that could not be parsed. Any ParseError is
// fatal for the whole alignment file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("psl line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseQueryName splits a packed "name;alleles;chrom;pos" query name
func ParseQueryName(s string) (QueryName, error) {
	fields := strings.Split(s, QueryNameSep)
	if len(fields) != 4 || fields[0] == "" {
		return QueryName{}, errBadQueryName
	}
	return QueryName{Name: fields[0], Alleles: fields[1], Chrom: fields[2], Pos: fields[3]}, nil
}

// String packs a QueryName back into its "name;alleles;chrom;pos" form
func (q QueryName) String() string {
	return strings.Join([]string{q.Name, q.Alleles, q.Chrom, q.Pos}, QueryNameSep)
}

type Reader struct {
	*bufio.Reader
	line    int
	started bool
	content bool
}

func NewReader(f io.Reader) *Reader {
	return &Reader{Reader: bufio.NewReader(f)}
}

// Read reads one alignment record from the underlying reader. Lines before the
// "-----" separator that ends the psl header are skipped, as are blank lines.
// After the last record Read returns an empty Record and io.EOF.
func (r *Reader) Read() (Record, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		if len(line) == 0 && err == io.EOF {
			if r.content && !r.started {
				return Record{}, &ParseError{Line: r.line, Err: errNoSeparator}
			}
			return Record{}, io.EOF
		}
		r.line++

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.content = true

		if !r.started {
			if strings.HasPrefix(line, "-----") {
				r.started = true
			}
			continue
		}

		rec, perr := parseLine(line)
		if perr != nil {
			return Record{}, &ParseError{Line: r.line, Text: line, Err: perr}
		}
		rec.Idx = r.line
		return rec, nil
	}
}

func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < minColumns {
		return Record{}, errShortLine
	}

	var (
		rec Record
		err error
	)

	ints := []struct {
		col int
		dst *int
	}{
		{colMatches, &rec.Matches},
		{colMismatches, &rec.Mismatches},
		{colRepMatches, &rec.RepMatches},
		{colQGaps, &rec.QGaps},
		{colTGaps, &rec.TGaps},
		{colQSize, &rec.QSize},
		{colQStart, &rec.QStart},
		{colQEnd, &rec.QEnd},
		{colTStart, &rec.TStart},
		{colTEnd, &rec.TEnd},
	}
	for _, f := range ints {
		*f.dst, err = strconv.Atoi(fields[f.col])
		if err != nil {
			return Record{}, fmt.Errorf("column %d: %w", f.col+1, err)
		}
	}

	switch fields[colStrand] {
	case "+":
		rec.Strand = Plus
	case "-":
		rec.Strand = Minus
	default:
		return Record{}, fmt.Errorf("%w %q", errBadStrand, fields[colStrand])
	}

	rec.Query, err = ParseQueryName(fields[colQName])
	if err != nil {
		return Record{}, err
	}
	rec.TChrom = fields[colTName]
	rec.Line = line

	return rec, nil
}
