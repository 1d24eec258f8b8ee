package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var errBadlyFormedFasta = errors.New("badly formed fasta file")

type Reader struct {
	*bufio.Reader
}

func NewReader(f io.Reader) *Reader {
	return &Reader{bufio.NewReader(f)}
}

func trimNewline(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

// Read reads one fasta record from the underlying reader. The final record is
// returned with error = nil, and the next call to Read() returns an empty Record
// struct and error = io.EOF.
func (r *Reader) Read() (Record, error) {
	line, err := r.ReadBytes('\n')
	// the file should never end on a header line
	if err != nil {
		return Record{}, err
	}
	line = trimNewline(line)
	if len(line) < 2 || line[0] != '>' {
		return Record{}, errBadlyFormedFasta
	}

	fields := bytes.Fields(line[1:])
	if len(fields) == 0 {
		return Record{}, errBadlyFormedFasta
	}
	FR := Record{ID: string(fields[0]), Description: string(line[1:])}

	var buffer []byte
	for {
		peek, err := r.Peek(1)
		if err == io.EOF || (err == nil && peek[0] == '>') {
			break
		}
		if err != nil {
			return Record{}, err
		}

		// io.EOF here is caught by the next Peek
		line, err = r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		buffer = append(buffer, trimNewline(line)...)
	}
	FR.Seq = string(buffer)

	return FR, nil
}
