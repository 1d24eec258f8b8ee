package bim

import (
	"errors"
	"strings"
	"testing"
)

const bimData = `1	rs1	0	1101	A	G
1	rs2	0.5	2000	C	T

X	rs3	0	55	D	I
1	rs4	0	1101	.	0
2 rs5 0 300 A T
`

func TestReadAll(t *testing.T) {
	rows, err := ReadAll(strings.NewReader(bimData))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("read %d rows, want 5", len(rows))
	}
	if rows[0] != (Row{Chromosome: "1", VariantID: "rs1", Coordinate: 1101, Allele1: "A", Allele2: "G"}) {
		t.Errorf("problem reading first row: %+v", rows[0])
	}
	if rows[4].VariantID != "rs5" || rows[4].Allele2 != "T" {
		t.Errorf("space separated row not read: %+v", rows[4])
	}
}

func TestReadErrors(t *testing.T) {
	bad := []string{
		"1\trs1\t0\t1101\tA\n",
		"1\trs1\t0\tpos\tA\tG\n",
		"1\trs1\t0\t1101\tA\tG\textra\n",
	}
	for _, in := range bad {
		_, err := ReadAll(strings.NewReader(in))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ReadAll(%q): expected a ParseError, got %v", in, err)
		}
	}

	_, err := ReadAll(strings.NewReader("1\trs1\t0\t1101\tA\tG\n\n1\trs2\t0\n"))
	var perr *ParseError
	if errors.As(err, &perr) && perr.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", perr.Line)
	}
}

func TestIndels(t *testing.T) {
	rows, _ := ReadAll(strings.NewReader(bimData))
	if got := Indels(rows); strings.Join(got, ",") != "rs3" {
		t.Errorf("Indels() = %v", got)
	}

	rows, _ = ReadAll(strings.NewReader("1\trs7\t0\t10\t+\t-\n1\trs8\t0\t20\tA\t-\n1\trs9\t0\t30\tA\t0\n"))
	if got := Indels(rows); strings.Join(got, ",") != "rs7,rs8" {
		t.Errorf("Indels() with +/- markers = %v", got)
	}
}

func TestDuplicates(t *testing.T) {
	rows, _ := ReadAll(strings.NewReader(bimData + "2\trs6\t0\t300\tC\tG\n"))
	if got := Duplicates(rows); strings.Join(got, ",") != "rs1,rs4,rs5,rs6" {
		t.Errorf("Duplicates() = %v", got)
	}
}
