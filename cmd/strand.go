package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/metrics"
	"github.com/array-qc/strandcheck/pkg/strand"
)

var strandPSL string
var strandOutStem string
var strandPrint bool
var strandMetrics string

func init() {
	rootCmd.AddCommand(strandCmd)

	strandCmd.Flags().StringVarP(&strandPSL, "psl", "i", "stdin", "BLAT alignments of the probe sequences, in psl format (may be gzip/bgzip compressed)")
	strandCmd.Flags().StringVarP(&strandOutStem, "out-stem", "o", "", "Stem of the output files (default: the --psl file name without extension)")
	strandCmd.Flags().BoolVarP(&strandPrint, "print", "p", false, "Write the strand report to stdout and no other files")
	strandCmd.Flags().StringVarP(&strandMetrics, "metrics-textfile", "", "", "Write run counts to this file in prometheus textfile format")

	strandCmd.Flags().Lookup("print").NoOptDefVal = "true"

	strandCmd.Flags().SortFlags = false
}

var strandCmd = &cobra.Command{
	Use:   "strand",
	Short: "Find the genomic position and strand of array probes from BLAT alignments",
	Long: `Find the genomic position and strand of array probes from BLAT alignments

Example usage:

	strandcheck strand --psl probes.psl

Probe sequences must have been aligned with ids of the form name;alleles;chrom;pos
(see strandcheck probes). A probe is placed by its single full-length alignment,
or else by its best alignment with > 90% identity whose 3' end is aligned.

Output files are:

<stem>.strand                   name, chrom, position, pct_match, strand, design_alleles
<stem>.missing                  probes without a > 90% match
<stem>.multi                    probes with more than one full-length or > 90% match
<stem>.disc_strand              probes with > 90% matches on both strands
<stem>.bad_3-prime_alignment    alignments whose 3' end is not aligned
<stem>.summary                  number of alignments and probes in each outcome
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		psl, err := gfio.OpenIn(*cmd.Flag("psl"))
		if err != nil {
			return err
		}
		defer psl.Close()

		var summary strand.Summary

		if strandPrint {
			summary, err = strand.Run(psl, strand.Outputs{Report: os.Stdout})
			if err != nil {
				return err
			}
		} else {
			stem := strandOutStem
			if stem == "" {
				stem = "strandcheck"
				if strandPSL != "stdin" {
					stem = gfio.Stem(strandPSL)
				}
			}

			files := &gfio.Files{Stem: stem}
			defer files.Close()

			var out strand.Outputs
			if out.Report, err = files.Create(".strand"); err != nil {
				return err
			}
			if out.Missing, err = files.Create(".missing"); err != nil {
				return err
			}
			if out.Multi, err = files.Create(".multi"); err != nil {
				return err
			}
			if out.Discordant, err = files.Create(".disc_strand"); err != nil {
				return err
			}
			if out.BadThreePrime, err = files.Create(".bad_3-prime_alignment"); err != nil {
				return err
			}

			summary, err = strand.Run(psl, out)
			if err != nil {
				return err
			}
			w, err := files.Create(".summary")
			if err != nil {
				return err
			}
			if err = metrics.WriteSummary(w, summary.Counts()); err != nil {
				return err
			}
			if err = files.Close(); err != nil {
				return err
			}
		}

		for _, c := range summary.Counts() {
			log.Infof("%s: %d", c.Category, c.N)
		}

		if strandMetrics != "" {
			err = metrics.WriteTextfile(strandMetrics, metrics.Set{
				Name:   "strand_probes",
				Help:   "Probe alignments and probes by resolution outcome.",
				Counts: summary.Counts(),
			})
		}

		return
	},
}
