/*
Package fasta reads and writes fasta records. Writing is done from a channel,
in input order, so that records can be produced concurrently.
*/
package fasta

import (
	"io"
)

// A struct for one Fasta record
type Record struct {
	ID          string
	Description string
	Seq         string
	Idx         int
}

func writeRecord(w io.Writer, record Record, wrap int) error {
	if _, err := io.WriteString(w, ">"+record.ID+"\n"); err != nil {
		return err
	}
	if wrap <= 0 {
		_, err := io.WriteString(w, record.Seq+"\n")
		return err
	}
	for written := 0; written < len(record.Seq); written += wrap {
		end := written + wrap
		if end > len(record.Seq) {
			end = len(record.Seq)
		}
		if _, err := io.WriteString(w, record.Seq[written:end]+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecords reads Records from a channel and writes them to w in the order
// given by their Idx, with sequence lines wrapped to wrap characters (no
// wrapping if wrap <= 0). It passes true to cDone when the channel is closed
// and drained.
func WriteRecords(cR chan Record, w io.Writer, wrap int, cErr chan error, cDone chan bool) {
	outputMap := make(map[int]Record)
	counter := 0
	for FR := range cR {
		outputMap[FR.Idx] = FR
		for {
			record, ok := outputMap[counter]
			if !ok {
				break
			}
			if err := writeRecord(w, record, wrap); err != nil {
				cErr <- err
				return
			}
			delete(outputMap, counter)
			counter++
		}
	}
	cDone <- true
}
