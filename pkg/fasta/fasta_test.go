package fasta

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	data := ">rs1;A/G;1;100 probe\r\nACGT\r\nAC\n>rs2;C/T;2;200\nGGTT"
	r := NewReader(strings.NewReader(data))

	FR, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if FR.ID != "rs1;A/G;1;100" || FR.Description != "rs1;A/G;1;100 probe" || FR.Seq != "ACGTAC" {
		t.Errorf("first record: %+v", FR)
	}

	FR, err = r.Read()
	if err != nil {
		t.Fatal(err)
	}
	if FR.ID != "rs2;C/T;2;200" || FR.Seq != "GGTT" {
		t.Errorf("second record: %+v", FR)
	}

	if _, err = r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReadBadlyFormed(t *testing.T) {
	r := NewReader(strings.NewReader("ACGT\n>rs1\nACGT\n"))
	if _, err := r.Read(); err != errBadlyFormedFasta {
		t.Errorf("expected errBadlyFormedFasta, got %v", err)
	}
}

func writeAll(t *testing.T, records []Record, wrap int) string {
	t.Helper()
	cR := make(chan Record)
	cErr := make(chan error)
	cDone := make(chan bool)
	out := new(bytes.Buffer)

	go WriteRecords(cR, out, wrap, cErr, cDone)

	go func() {
		for _, FR := range records {
			cR <- FR
		}
		close(cR)
	}()

	select {
	case err := <-cErr:
		t.Fatal(err)
	case <-cDone:
	}
	return out.String()
}

func TestWriteRecords(t *testing.T) {
	records := []Record{
		{ID: "c", Seq: "GG", Idx: 2},
		{ID: "a", Seq: "ACGTA", Idx: 0},
		{ID: "b", Seq: "TTTT", Idx: 1},
	}

	if got, want := writeAll(t, records, 0), ">a\nACGTA\n>b\nTTTT\n>c\nGG\n"; got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if got, want := writeAll(t, records, 2), ">a\nAC\nGT\nA\n>b\nTT\nTT\n>c\nGG\n"; got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
