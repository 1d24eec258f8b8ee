package reference

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/fai"
)

// FastaLookup fetches single bases from a faidx-indexed reference fasta
type FastaLookup struct {
	f     *os.File
	file  *fai.File
	Style ChromStyle
}

// OpenFasta opens a reference fasta. The index is read from path + ".fai" if
// it exists, otherwise it is built by scanning the fasta once.
func OpenFasta(path string, style ChromStyle) (*FastaLookup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	idx, err := readIndex(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FastaLookup{f: f, file: fai.NewFile(f, idx), Style: style}, nil
}

func readIndex(path string, f io.ReadSeeker) (fai.Index, error) {
	if fi, err := os.Open(path + ".fai"); err == nil {
		defer fi.Close()
		idx, err := fai.ReadFrom(fi)
		if err != nil {
			return nil, fmt.Errorf("read %s.fai: %w", path, err)
		}
		return idx, nil
	}

	idx, err := fai.NewIndex(f)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return idx, nil
}

// RefAllele returns the base at q.Chrom:q.Pos (1-based). Unknown sequences
// and positions off the end of a sequence give Unknown.
func (l *FastaLookup) RefAllele(q Query) (byte, error) {
	if q.Pos < 1 {
		return Unknown, nil
	}
	seq, err := l.file.SeqRange(l.Style.Rename(q.Chrom), q.Pos-1, q.Pos)
	if err != nil {
		return Unknown, nil
	}
	b, err := io.ReadAll(seq)
	if err != nil {
		return Unknown, err
	}
	return normalise(string(b)), nil
}

func (l *FastaLookup) Close() error {
	return l.f.Close()
}
