package strand

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/array-qc/strandcheck/pkg/psl"
)

const header = `psLayout version 3

match	mis- 	rep. 	N's	Q gap	Q gap	T gap	T gap	strand	Q        	Q   	Q    	Q  	T        	T   	T    	T  	block	blockSizes 	qStarts	 tStarts
     	match	match	   	count	bases	count	bases	      	name     	size	start	end	name     	size	start	end	count
---------------------------------------------------------------------------------------------------------------------------------------------------------------
`

// pslLine builds one psl line. Block columns are filled with placeholders as
// they are never read.
func pslLine(match, mismatch int, strand, qName string, qSize, qStart, qEnd int, tName string, tStart, tEnd int) string {
	fields := []string{
		strconv.Itoa(match), strconv.Itoa(mismatch), "0", "0",
		"0", "0", "0", "0",
		strand, qName,
		strconv.Itoa(qSize), strconv.Itoa(qStart), strconv.Itoa(qEnd),
		tName, "250000000", strconv.Itoa(tStart), strconv.Itoa(tEnd),
		"1", strconv.Itoa(qEnd-qStart) + ",", strconv.Itoa(qStart) + ",", strconv.Itoa(tStart) + ",",
	}
	return strings.Join(fields, "\t")
}

var (
	rs1     = pslLine(95, 5, "+", "rs1;A/G;1;1101", 100, 0, 100, "chr1", 1000, 1100)
	rs2Low  = pslLine(60, 40, "+", "rs2;G/T;2;3101", 100, 0, 100, "chr9", 100, 200)
	rs2Good = pslLine(92, 8, "+", "rs2;G/T;2;3101", 100, 0, 100, "chr2", 3000, 3100)
	rs3a    = pslLine(100, 0, "+", "rs3;A/C;3;111", 100, 0, 100, "chr3", 10, 110)
	rs3b    = pslLine(100, 0, "-", "rs3;A/C;3;111", 100, 0, 100, "chr3", 500, 600)
	rs4     = pslLine(50, 50, "+", "rs4;A/G;4;10", 100, 0, 100, "chr4", 10, 110)
	rs5a    = pslLine(94, 6, "+", "rs5;C/T;5;5000", 100, 0, 100, "chr5", 8000, 8100)
	rs5b    = pslLine(97, 3, "-", "rs5;C/T;5;5000", 100, 0, 100, "chr5", 5000, 5100)
	rs6Bad  = pslLine(90, 0, "+", "rs6;A/C;6;301", 100, 0, 90, "chr6", 700, 790)
	rs6Full = pslLine(100, 0, "+", "rs6;A/C;6;301", 100, 0, 100, "chr6", 200, 300)
	rs7     = pslLine(0, 0, "+", "rs7;A/G;7;1", 100, 0, 100, "chr7", 0, 100)
)

func testInput() string {
	lines := []string{rs5a, rs1, rs2Low, rs3a, rs2Good, rs3b, rs4, rs5b, rs6Bad, rs7, rs6Full}
	return header + strings.Join(lines, "\n") + "\n"
}

type testOutputs struct {
	report, missing, multi, disc, bad3 bytes.Buffer
}

func (o *testOutputs) outputs() Outputs {
	return Outputs{Report: &o.report, Missing: &o.missing, Multi: &o.multi, Discordant: &o.disc, BadThreePrime: &o.bad3}
}

func TestRun(t *testing.T) {
	var o testOutputs

	summary, err := Run(strings.NewReader(testInput()), o.outputs())
	if err != nil {
		t.Fatal(err)
	}

	if o.report.String() != ReportHeader+
		"rs1\tchr1\t1101\t95.0\t+\tA/G\n"+
		"rs2\tchr2\t3101\t92.0\t+\tG/T\n"+
		"rs5\tchr5\t5000\t97.0\t-\tC/T\n"+
		"rs6\tchr6\t301\t100.0\t+\tA/C\n" {
		t.Errorf("problem with the strand report in TestRun():\n%s", o.report.String())
	}

	if o.missing.String() != MissingHeader+rs4+"\n"+rs7+"\n" {
		t.Errorf("problem with the missing stream in TestRun():\n%s", o.missing.String())
	}

	if o.multi.String() != MultiHeader+
		"rs3: multiple full length matches\n"+
		"rs5: multiple pct_id > 90% matches\n" {
		t.Errorf("problem with the multi stream in TestRun():\n%s", o.multi.String())
	}

	if o.disc.String() != DiscordantHeader+"rs3\nrs5\n" {
		t.Errorf("problem with the discordant stream in TestRun():\n%s", o.disc.String())
	}

	if o.bad3.String() != BadThreePrimeHeader+"rs6\tchr6\t791\n" {
		t.Errorf("problem with the bad 3' stream in TestRun():\n%s", o.bad3.String())
	}

	want := Summary{
		Records:            11,
		Probes:             7,
		Resolved:           4,
		NoMatch:            2,
		MultipleFullLength: 1,
		MultipleGood:       1,
		DiscordantStrand:   2,
		BadThreePrime:      1,
	}
	if summary != want {
		t.Errorf("Summary = %+v, want %+v", summary, want)
	}
	if len(summary.Counts()) != 8 || summary.Counts()[2].Category != "resolved" || summary.Counts()[2].N != 4 {
		t.Errorf("problem with Summary.Counts(): %+v", summary.Counts())
	}
}

func TestRunIsReproducible(t *testing.T) {
	var first, second testOutputs
	if _, err := Run(strings.NewReader(testInput()), first.outputs()); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(strings.NewReader(testInput()), second.outputs()); err != nil {
		t.Fatal(err)
	}
	if first.report.String() != second.report.String() || first.multi.String() != second.multi.String() {
		t.Errorf("two runs over the same input differ")
	}
}

func TestRunNilOutputs(t *testing.T) {
	summary, err := Run(strings.NewReader(testInput()), Outputs{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Resolved != 4 {
		t.Errorf("Resolved = %d, want 4", summary.Resolved)
	}
}

func TestRunBadStrandAborts(t *testing.T) {
	bad := pslLine(95, 5, "x", "rs9;A/G;1;1", 100, 0, 100, "chr1", 0, 100)
	in := header + rs1 + "\n" + bad + "\n"

	var o testOutputs
	_, err := Run(strings.NewReader(in), o.outputs())

	var perr *psl.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a psl.ParseError, got %v", err)
	}
	if o.report.Len() != 0 {
		t.Errorf("nothing should be reported from an aborted run")
	}
}

func record(t *testing.T, line string) psl.Record {
	t.Helper()
	rec, err := psl.NewReader(strings.NewReader(header + line + "\n")).Read()
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestResolve(t *testing.T) {
	// one record, identity 95%
	a := NewArena()
	a.Add(record(t, rs1))
	res := Resolve(a.Get("rs1"))
	if res.Status != Resolved || res.Placement.Pos != 1101 || res.Placement.Strand != psl.Plus || res.MultipleGood {
		t.Errorf("problem resolving rs1: %+v", res)
	}

	// a full length match beats a partial match even if listed later
	a = NewArena()
	a.Add(record(t, pslLine(97, 3, "-", "p;A/G;1;1", 100, 0, 100, "chr1", 50, 150)))
	a.Add(record(t, pslLine(100, 0, "+", "p;A/G;1;1", 100, 0, 100, "chr2", 10, 110)))
	res = Resolve(a.Get("p"))
	if res.Status != Resolved || res.Placement.Chrom != "chr2" || res.Placement.Pos != 111 {
		t.Errorf("full length match not preferred: %+v", res)
	}
	if !res.DiscordantStrand {
		t.Errorf("good matches on both strands should be flagged")
	}

	// ties go to the first seen, and are flagged
	a = NewArena()
	a.Add(record(t, pslLine(95, 5, "+", "p;A/G;1;1", 100, 0, 100, "chr1", 0, 100)))
	a.Add(record(t, pslLine(95, 5, "+", "p;A/G;1;1", 100, 0, 100, "chr2", 0, 100)))
	res = Resolve(a.Get("p"))
	if res.Placement.Chrom != "chr1" || !res.MultipleGood {
		t.Errorf("problem resolving a tie: %+v", res)
	}

	// a lower scoring later match does not raise the flag
	a = NewArena()
	a.Add(record(t, pslLine(97, 3, "+", "p;A/G;1;1", 100, 0, 100, "chr1", 0, 100)))
	a.Add(record(t, pslLine(93, 7, "+", "p;A/G;1;1", 100, 0, 100, "chr2", 0, 100)))
	res = Resolve(a.Get("p"))
	if res.Placement.Chrom != "chr1" || res.MultipleGood {
		t.Errorf("problem resolving a clear best match: %+v", res)
	}

	// only alignments with no aligned bases
	a = NewArena()
	a.Add(record(t, rs7))
	res = Resolve(a.Get("rs7"))
	if res.Status != NoMatch {
		t.Errorf("a record without aligned bases must never be placed: %+v", res)
	}

	// a good identity alignment that misses the 3' end is never placed
	a = NewArena()
	a.Add(record(t, rs6Bad))
	res = Resolve(a.Get("rs6"))
	if res.Status != NoMatch {
		t.Errorf("an alignment missing the 3' end must not be placed: %+v", res)
	}
	if len(a.Get("rs6").BadThreePrime) != 1 || len(a.Get("rs6").Raw()) != 1 {
		t.Errorf("problem recording the 3' rejection")
	}
}

func TestArenaRawRetention(t *testing.T) {
	a := NewArena()
	a.Add(record(t, rs2Low))
	if len(a.Get("rs2").Raw()) != 1 {
		t.Errorf("raw line of an unmatched probe should be kept")
	}
	a.Add(record(t, rs2Good))
	if a.Get("rs2").Raw() != nil {
		t.Errorf("raw lines should be released once a probe has a good match")
	}
	a.Add(record(t, rs4))
	if a.Len() != 2 || a.Get("rs2").Records != 2 {
		t.Errorf("problem grouping records: %d probes", a.Len())
	}
	if names := a.Names(); len(names) != 2 || names[0] != "rs2" || names[1] != "rs4" {
		t.Errorf("Names() = %v", names)
	}
	if a.Get("nope") != nil {
		t.Errorf("Get() of an unknown probe should be nil")
	}
}

func TestReadReport(t *testing.T) {
	var o testOutputs
	if _, err := Run(strings.NewReader(testInput()), o.outputs()); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadReport(&o.report)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("read %d rows, want 4", len(rows))
	}
	if rows[2] != (Placement{Name: "rs5", Chrom: "chr5", Pos: 5000, PctID: 97.0, Strand: psl.Minus, Alleles: "C/T"}) {
		t.Errorf("problem reading a report row: %+v", rows[2])
	}

	if m := MinusStrand(rows); len(m) != 1 || m[0] != "rs5" {
		t.Errorf("MinusStrand() = %v", m)
	}
	if n := Names(rows); strings.Join(n, ",") != "rs1,rs2,rs5,rs6" {
		t.Errorf("Names() = %v", n)
	}

	chr := new(bytes.Buffer)
	if err := WriteChromMap(chr, rows); err != nil {
		t.Error(err)
	}
	if chr.String() != "rs1\tchr1\nrs2\tchr2\nrs5\tchr5\nrs6\tchr6\n" {
		t.Errorf("problem in WriteChromMap():\n%s", chr.String())
	}

	pos := new(bytes.Buffer)
	if err := WritePosMap(pos, rows); err != nil {
		t.Error(err)
	}
	if pos.String() != "rs1\t1101\nrs2\t3101\nrs5\t5000\nrs6\t301\n" {
		t.Errorf("problem in WritePosMap():\n%s", pos.String())
	}
}

func TestReadReportErrors(t *testing.T) {
	bad := []string{
		"rs1\tchr1\t1101\t95.0\t+\n",
		"rs1\tchr1\tx\t95.0\t+\tA/G\n",
		"rs1\tchr1\t1101\tx\t+\tA/G\n",
		"rs1\tchr1\t1101\t95.0\t?\tA/G\n",
	}
	for _, in := range bad {
		if _, err := ReadReport(strings.NewReader(in)); err == nil {
			t.Errorf("ReadReport(%q) should fail", in)
		}
	}
}
