package alphabet

import "testing"

func TestComplementInvolution(t *testing.T) {
	for _, b := range []byte("ACGT") {
		c, ok := Complement(b)
		if !ok {
			t.Errorf("no complement for %c", b)
			continue
		}
		cc, _ := Complement(c)
		if cc != b {
			t.Errorf("complement(complement(%c)) = %c", b, cc)
		}
	}

	for _, b := range []byte("NDI+-.0") {
		if _, ok := Complement(b); ok {
			t.Errorf("%c should not have a complement", b)
		}
	}
}

func TestAlleleCodes(t *testing.T) {
	for _, code := range []string{"D", "I", "+", "-"} {
		if !IsIndelCode(code) || IsMissingCode(code) || IsNucleotideCode(code) {
			t.Errorf("%s should only be an indel code", code)
		}
	}
	for _, code := range []string{".", "0"} {
		if !IsMissingCode(code) || IsIndelCode(code) || IsNucleotideCode(code) {
			t.Errorf("%s should only be a missing code", code)
		}
	}
	for _, code := range []string{"A", "C", "G", "T"} {
		if !IsNucleotideCode(code) || IsIndelCode(code) || IsMissingCode(code) {
			t.Errorf("%s should only be a nucleotide code", code)
		}
	}
	if IsNucleotideCode("AT") || IsNucleotideCode("a") || IsNucleotideCode("") {
		t.Errorf("multi-letter, lower case and empty codes are not nucleotide codes")
	}

	if _, ok := ComplementCode("D"); ok {
		t.Errorf("indel markers must not be complemented")
	}
	if c, ok := ComplementCode("G"); !ok || c != "C" {
		t.Errorf("ComplementCode(G) = %s, %v", c, ok)
	}
}

func TestIsAmbiguousPair(t *testing.T) {
	codes := []string{"A", "C", "G", "T", "D", "I", ".", "0", "a", "t", "N"}
	for _, a1 := range codes {
		for _, a2 := range codes {
			if IsAmbiguousPair(a1, a2) != IsAmbiguousPair(a2, a1) {
				t.Errorf("IsAmbiguousPair(%s, %s) is not symmetric", a1, a2)
			}
		}
	}

	ambiguous := [][2]string{{"A", "T"}, {"T", "A"}, {"C", "G"}, {"G", "C"}, {"a", "t"}}
	for _, p := range ambiguous {
		if !IsAmbiguousPair(p[0], p[1]) {
			t.Errorf("%s/%s should be ambiguous", p[0], p[1])
		}
	}

	notAmbiguous := [][2]string{{"A", "G"}, {"A", "A"}, {"C", "T"}, {"D", "I"}, {".", "0"}, {"A", "D"}}
	for _, p := range notAmbiguous {
		if IsAmbiguousPair(p[0], p[1]) {
			t.Errorf("%s/%s should not be ambiguous", p[0], p[1])
		}
	}
}
