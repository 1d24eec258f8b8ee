/*
Package manifest reads the assay rows of an Illumina array manifest (csv
format) and turns them into probe sequences for alignment with BLAT. Each probe
is written with the id "name;alleles;chrom;pos", which BLAT copies through to
the qName column of its psl output.
*/
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/array-qc/strandcheck/pkg/fasta"
	"github.com/array-qc/strandcheck/pkg/psl"
)

// column indices in an assay row
const (
	nameColumn  = 1
	snpColumn   = 3
	probeColumn = 5
	chromColumn = 9
	posColumn   = 10
)

const (
	assayHeader   = "IlmnID"
	controlsStart = "[Controls]"
)

var (
	errShortRow   = errors.New("too few columns in assay row")
	errEmptyProbe = errors.New("empty probe name or sequence")
	errSeparator  = errors.New("probe field contains the query name separator " + psl.QueryNameSep)
	errNoAssays   = errors.New("no IlmnID header line in manifest")
)

type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Probe is one assay row: the probe's query name and its sequence
type Probe struct {
	psl.QueryName
	Seq string
}

// Record converts a Probe to a fasta Record
func (p Probe) Record(idx int) fasta.Record {
	return fasta.Record{ID: p.QueryName.String(), Seq: p.Seq, Idx: idx}
}

type Reader struct {
	r       *csv.Reader
	started bool
	done    bool
}

func NewReader(f io.Reader) *Reader {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true
	return &Reader{r: r}
}

// Read returns the next assay row. Rows before the IlmnID header and from the
// [Controls] line onwards are skipped. After the last assay row Read returns
// io.EOF.
func (r *Reader) Read() (Probe, error) {
	for !r.done {
		row, err := r.r.Read()
		if err == io.EOF {
			if !r.started {
				return Probe{}, errNoAssays
			}
			break
		}
		if err != nil {
			return Probe{}, err
		}

		switch {
		case strings.TrimSpace(row[0]) == assayHeader:
			r.started = true
			continue
		case strings.TrimSpace(row[0]) == controlsStart:
			r.done = true
			continue
		case !r.started:
			continue
		}

		line, _ := r.r.FieldPos(0)
		if len(row) <= posColumn {
			return Probe{}, &ParseError{Line: line, Err: errShortRow}
		}

		p := Probe{
			QueryName: psl.QueryName{
				Name:    strings.TrimSpace(row[nameColumn]),
				Alleles: strings.NewReplacer("[", "", "]", "").Replace(row[snpColumn]),
				Chrom:   strings.TrimSpace(row[chromColumn]),
				Pos:     strings.TrimSpace(row[posColumn]),
			},
			Seq: strings.TrimSpace(row[probeColumn]),
		}
		if p.Name == "" || p.Seq == "" {
			return Probe{}, &ParseError{Line: line, Err: errEmptyProbe}
		}
		for _, field := range []string{p.Name, p.Alleles, p.Chrom, p.Pos} {
			if strings.Contains(field, psl.QueryNameSep) {
				return Probe{}, &ParseError{Line: line, Err: errSeparator}
			}
		}
		return p, nil
	}
	return Probe{}, io.EOF
}

// StreamProbes reads the assay rows of a manifest to a channel of fasta
// Records, numbered in input order. cR is closed when StreamProbes returns;
// closing stop makes it return early.
func StreamProbes(f io.Reader, cR chan fasta.Record, cErr chan error, cDone chan bool, stop <-chan struct{}) {
	defer close(cR)
	r := NewReader(f)
	counter := 0
	for {
		p, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			cErr <- err
			return
		}
		select {
		case cR <- p.Record(counter):
		case <-stop:
			return
		}
		counter++
	}
	log.Debugf("read %d probes from manifest", counter)
	cDone <- true
}

// ToFasta writes the probe sequences of a manifest to w as fasta, sequence
// lines wrapped to wrap characters if wrap > 0
func ToFasta(f io.Reader, w io.Writer, wrap int) error {
	// buffered: either goroutine may still report after ToFasta has returned
	cErr := make(chan error, 2)
	cReadDone := make(chan bool, 1)
	cWriteDone := make(chan bool, 1)
	cR := make(chan fasta.Record)
	stop := make(chan struct{})
	defer close(stop)

	go StreamProbes(f, cR, cErr, cReadDone, stop)
	go fasta.WriteRecords(cR, w, wrap, cErr, cWriteDone)

	select {
	case err := <-cErr:
		return err
	case <-cReadDone:
	}

	select {
	case err := <-cErr:
		return err
	case <-cWriteDone:
	}

	return nil
}
