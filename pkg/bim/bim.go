// Package bim reads plink .bim variant tables: the array-reported allele pair
// of every variant along with its position
package bim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Map columns in the BIM file to their positions
const (
	Chromosome int = iota
	VariantID
	Morgans
	Coordinate
	Allele1
	Allele2

	numColumns
)

var errColumns = fmt.Errorf("expected %d whitespace-separated columns", numColumns)

// Row is one variant. Allele codes are kept as written; they are usually a
// single letter but may be longer.
type Row struct {
	Chromosome string
	VariantID  string
	Coordinate int // base-pair position
	Allele1    string
	Allele2    string
	// Morgans is excluded intentionally
}

// ParseError reports a malformed bim line. It is fatal for the whole file.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bim line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(f io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(f)}
}

// Read returns the next variant, skipping blank lines. After the last variant
// it returns io.EOF.
func (r *Reader) Read() (Row, error) {
	for r.s.Scan() {
		r.line++
		text := r.s.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != numColumns {
			return Row{}, &ParseError{Line: r.line, Text: text, Err: errColumns}
		}
		pos, err := strconv.Atoi(fields[Coordinate])
		if err != nil {
			return Row{}, &ParseError{Line: r.line, Text: text, Err: errors.New("bad position " + strconv.Quote(fields[Coordinate]))}
		}
		return Row{
			Chromosome: fields[Chromosome],
			VariantID:  fields[VariantID],
			Coordinate: pos,
			Allele1:    fields[Allele1],
			Allele2:    fields[Allele2],
		}, nil
	}
	if err := r.s.Err(); err != nil {
		return Row{}, err
	}
	return Row{}, io.EOF
}

// ReadAll reads every variant
func ReadAll(f io.Reader) ([]Row, error) {
	r := NewReader(f)
	var rows []Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
