/*
Package gfio provides io functionality, including to/from stdin/stdout,
transparent reading of bgzip/gzip compressed inputs, and helpful error
messages when used in combination with bad filepaths from commandline options
*/
package gfio

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/spf13/pflag"
)

func flagString(flag pflag.Flag) string {
	switch len(flag.Shorthand) {
	case 0:
		return "--" + flag.Name
	default:
		return "--" + flag.Name + " / -" + flag.Shorthand
	}
}

func parseInErr(err error, flagString string) error {
	var x *fs.PathError
	if errors.As(err, &x) {
		return errors.New(x.Op + " " + flagString + " " + x.Path + ": " + x.Err.Error())
	}
	return err
}

// ReadCloser is an input that may be decompressing an underlying file
type ReadCloser struct {
	io.Reader
	closers []io.Closer
}

// Close closes the decompressor (if any) and then the file
func (rc *ReadCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// isBGZF checks a gzip header for the BGZF "BC" extra subfield
func isBGZF(h []byte) bool {
	return len(h) >= 14 && h[3]&4 != 0 && h[12] == 'B' && h[13] == 'C'
}

// Decompress wraps f in a BGZF or gzip reader if it starts with the gzip magic
// number; plain text is passed through.
func Decompress(f io.Reader) (io.Reader, io.Closer, error) {
	br := bufio.NewReader(f)
	h, err := br.Peek(14)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if len(h) < 2 || h[0] != 0x1f || h[1] != 0x8b {
		return br, nil, nil
	}
	if isBGZF(h) {
		bz, err := bgzf.NewReader(br, 1)
		if err != nil {
			return nil, nil, err
		}
		return bz, bz, nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	return gz, gz, nil
}

// Open opens a file by name for reading, decompressing if necessary.
// "stdin" reads from standard input.
func Open(name string) (*ReadCloser, error) {
	var f *os.File
	if name == "stdin" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(name); err != nil {
			return nil, err
		}
	}

	r, c, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	rc := &ReadCloser{Reader: r}
	if c != nil {
		rc.closers = append(rc.closers, c)
	}
	rc.closers = append(rc.closers, f)
	return rc, nil
}

// OpenIn opens the file named by a commandline flag for reading. Errors about
// missing files name the flag they came from.
func OpenIn(flag pflag.Flag) (*ReadCloser, error) {
	rc, err := Open(flag.Value.String())
	if err != nil {
		return nil, parseInErr(err, flagString(flag))
	}
	return rc, nil
}

// OpenOut creates the file named by a commandline flag. "stdout" writes to
// standard output.
func OpenOut(flag pflag.Flag) (*os.File, error) {
	outFile := flag.Value.String()
	if outFile == "stdout" {
		return os.Stdout, nil
	}
	return os.Create(outFile)
}

// Stem returns a file name without its directory and (possibly compressed)
// extension, eg. "dir/probes.psl.gz" -> "probes"
func Stem(name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".gz", ".bgz"} {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteLines writes one string per line
func WriteLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Files collects output files created under a common name stem so that they
// can be flushed and closed together
type Files struct {
	Stem  string
	files []*os.File
	bufs  []*bufio.Writer
}

// Create creates "<stem><suffix>" and returns a buffered writer for it
func (fl *Files) Create(suffix string) (*bufio.Writer, error) {
	f, err := os.Create(fl.Stem + suffix)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	fl.files = append(fl.files, f)
	fl.bufs = append(fl.bufs, w)
	return w, nil
}

// Close flushes and closes every file, returning the first error
func (fl *Files) Close() error {
	var err error
	for i, f := range fl.files {
		if ferr := fl.bufs[i].Flush(); ferr != nil && err == nil {
			err = ferr
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	fl.files = nil
	fl.bufs = nil
	return err
}
