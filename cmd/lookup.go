package cmd

import (
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/reference"
)

// lookupFlags are the reference allele backends shared by reconcile and flip.
// Exactly one backend is used per run.
type lookupFlags struct {
	fasta      string
	chromStyle string
	var2ref    string
	var2refDB  string
}

func (lf *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&lf.fasta, "ref-fasta", "", "", "Reference genome in fasta format, for lookup by position (uses <file>.fai if present)")
	cmd.Flags().StringVarP(&lf.chromStyle, "chrom-style", "", "asis", "Chromosome names in --ref-fasta: asis, ucsc, ensembl or plink")
	cmd.Flags().StringVarP(&lf.var2ref, "var-to-ref", "", "", "Tab-separated variant, reference allele table, for lookup by name")
	cmd.Flags().StringVarP(&lf.var2refDB, "var-to-ref-db", "", "", "SQLite database made by strandcheck refdb, for lookup by name")

	cmd.MarkFlagsMutuallyExclusive("ref-fasta", "var-to-ref", "var-to-ref-db")
	cmd.MarkFlagsOneRequired("ref-fasta", "var-to-ref", "var-to-ref-db")
}

// open opens the chosen backend. The returned function releases it.
func (lf *lookupFlags) open(cmd *cobra.Command) (reference.Lookup, func() error, error) {
	noop := func() error { return nil }

	switch {
	case lf.fasta != "":
		style, err := reference.ParseChromStyle(lf.chromStyle)
		if err != nil {
			return nil, nil, err
		}
		l, err := reference.OpenFasta(lf.fasta, style)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil

	case lf.var2refDB != "":
		l, err := reference.OpenSQLite(lf.var2refDB)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil

	default:
		f, err := gfio.OpenIn(*cmd.Flag("var-to-ref"))
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		t, err := reference.ReadTable(f)
		if err != nil {
			return nil, nil, err
		}
		return t, noop, nil
	}
}
