package cmd

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/metrics"
	"github.com/array-qc/strandcheck/pkg/reconcile"
	"github.com/array-qc/strandcheck/pkg/strand"
)

var reconcileBim string
var reconcileOutStem string
var reconcileFlip string
var reconcileStrandReport string
var reconcileMetrics string
var reconcileLookup lookupFlags

// output is one file of a reconcile run
type output struct {
	suffix string
	write  func(io.Writer) error
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&reconcileBim, "bim", "b", "stdin", "plink .bim file of the variants to check")
	reconcileLookup.register(reconcileCmd)
	reconcileCmd.Flags().StringVarP(&reconcileFlip, "flip", "", "all", "Variants to list for flipping: none, all (every flipped variant), non-ambiguous (flipped variants that are not A/T or C/G) or strand-report (minus strand variants in --strand-report)")
	reconcileCmd.Flags().StringVarP(&reconcileStrandReport, "strand-report", "", "", "Strand report from strandcheck strand, only with --flip strand-report")
	reconcileCmd.Flags().StringVarP(&reconcileOutStem, "out-stem", "o", "", "Stem of the output files (default: the --bim file name without extension)")
	reconcileCmd.Flags().StringVarP(&reconcileMetrics, "metrics-textfile", "", "", "Write run counts to this file in prometheus textfile format")

	reconcileCmd.Flags().SortFlags = false
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare array alleles with the reference genome allele",
	Long: `Compare array alleles with the reference genome allele

Example usage:

	strandcheck reconcile --bim chip.bim --ref-fasta hg19.fa --chrom-style ucsc
	strandcheck reconcile --bim chip.bim --var-to-ref var2ref.tsv

The reference allele of each variant is looked up by position in --ref-fasta, or
by name in --var-to-ref or --var-to-ref-db. Each variant is then put in one category:

ref_present        one allele is the reference allele
flipped            one allele is the complement of the reference allele
impossible         neither allele is the reference allele or its complement
indel              both alleles are indel markers (D, I, +, -)
missing_variant    both alleles are missing (., 0)
illegal_alleles    any other allele combination
no_ref             the reference allele is unknown

Output files are:

<stem>_var2ref.tsv         variant, reference allele (N if unknown)
<stem>_flip.txt            variants to flip, chosen by --flip
<stem>_<category>.txt      variants in each category
<stem>_ambiguous.txt       variants with A/T or C/G alleles
<stem>_allele_pairs.tsv    number of variants with each allele pair
<stem>_results.tsv         variant, alleles, reference allele and category
<stem>_summary.tsv         number of variants in each category
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		mode, err := reconcile.ParseFlipMode(reconcileFlip)
		if err != nil {
			return err
		}

		if err = reconcile.CheckFlipSource(mode, reconcileStrandReport != ""); err != nil {
			return err
		}

		var minus []string
		if mode == reconcile.FlipStrandReport {
			sr, err := gfio.OpenIn(*cmd.Flag("strand-report"))
			if err != nil {
				return err
			}
			rows, err := strand.ReadReport(sr)
			sr.Close()
			if err != nil {
				return err
			}
			minus = strand.MinusStrand(rows)
		}

		lookup, closeLookup, err := reconcileLookup.open(cmd)
		if err != nil {
			return err
		}
		defer closeLookup()

		bim, err := gfio.OpenIn(*cmd.Flag("bim"))
		if err != nil {
			return err
		}
		defer bim.Close()

		rep, err := reconcile.Reconcile(bim, lookup)
		if err != nil {
			return err
		}

		stem := reconcileOutStem
		if stem == "" {
			stem = "strandcheck"
			if reconcileBim != "stdin" {
				stem = gfio.Stem(reconcileBim)
			}
		}

		files := &gfio.Files{Stem: stem}
		defer files.Close()

		outputs := []output{
			{"_var2ref.tsv", func(w io.Writer) error { return reconcile.WriteVar2Ref(w, rep) }},
			{"_flip.txt", func(w io.Writer) error {
				return gfio.WriteLines(w, reconcile.Flips(mode, rep, minus))
			}},
			{"_ambiguous.txt", func(w io.Writer) error { return gfio.WriteLines(w, rep.Survey.Ambiguous) }},
			{"_allele_pairs.tsv", rep.Survey.WritePairCounts},
			{"_results.tsv", func(w io.Writer) error { return reconcile.WriteResults(w, rep) }},
			{"_summary.tsv", func(w io.Writer) error { return metrics.WriteSummary(w, rep.Counts()) }},
		}
		for _, c := range reconcile.Categories {
			variants := rep.Variants(c)
			outputs = append(outputs, output{"_" + string(c) + ".txt", func(w io.Writer) error { return gfio.WriteLines(w, variants) }})
		}

		for _, o := range outputs {
			w, err := files.Create(o.suffix)
			if err != nil {
				return err
			}
			if err = o.write(w); err != nil {
				return err
			}
		}
		if err = files.Close(); err != nil {
			return err
		}

		for _, c := range rep.Counts() {
			log.Infof("%s: %d", c.Category, c.N)
		}

		if reconcileMetrics != "" {
			err = metrics.WriteTextfile(reconcileMetrics, metrics.Set{
				Name:   "reconcile_variants",
				Help:   "Variants by reference allele category.",
				Counts: rep.Counts(),
			})
		}

		return
	},
}
