// Package metrics exports per-category run counts, both as a plain
// tab-separated summary and in the prometheus textfile format so that batch
// runs can be picked up by a node exporter.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every exported metric name
const Namespace = "strandcheck"

// Count is the number of probes or variants that ended up in one category
type Count struct {
	Category string
	N        int
}

// Set is a named group of counts, eg. "probes" from the strand resolver or
// "variants" from allele reconciliation
type Set struct {
	Name   string
	Help   string
	Counts []Count
}

// Registry builds a prometheus registry holding one gauge vector per Set,
// labelled by category
func Registry(sets ...Set) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, s := range sets {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      s.Name,
			Help:      s.Help,
		}, []string{"category"})
		for _, c := range s.Counts {
			g.WithLabelValues(c.Category).Set(float64(c.N))
		}
		if err := reg.Register(g); err != nil {
			return nil, fmt.Errorf("register %s: %w", s.Name, err)
		}
	}
	return reg, nil
}

// WriteTextfile writes the sets to path in the prometheus text exposition
// format. The file is written atomically.
func WriteTextfile(path string, sets ...Set) error {
	reg, err := Registry(sets...)
	if err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}

// WriteSummary writes "category\tcount" lines, preceded by a header line
func WriteSummary(w io.Writer, counts []Count) error {
	if _, err := io.WriteString(w, "#category\tcount\n"); err != nil {
		return err
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", c.Category, c.N); err != nil {
			return err
		}
	}
	return nil
}
