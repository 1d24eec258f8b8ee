package cmd

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/metrics"
	"github.com/array-qc/strandcheck/pkg/pipeline"
	"github.com/array-qc/strandcheck/pkg/plink"
	"github.com/array-qc/strandcheck/pkg/reconcile"
)

var flipBFile string
var flipStrandReport string
var flipMode string
var flipExcludeAmbiguous bool
var flipPlink string
var flipOutDir string
var flipPlinkLog string
var flipMetrics string
var flipLookup lookupFlags

func init() {
	rootCmd.AddCommand(flipCmd)

	flipCmd.Flags().StringVarP(&flipBFile, "bfile", "", "", "plink binary fileset stem (.bed, .bim, .fam)")
	flipCmd.Flags().StringVarP(&flipStrandReport, "strand-report", "s", "", "Strand report from strandcheck strand")
	flipLookup.register(flipCmd)
	flipCmd.Flags().StringVarP(&flipMode, "flip", "", "all", "Variants to flip: none, all, non-ambiguous or strand-report")
	flipCmd.Flags().BoolVarP(&flipExcludeAmbiguous, "exclude-ambiguous", "", false, "Finally drop variants with A/T or C/G alleles")
	flipCmd.Flags().StringVarP(&flipPlink, "plink", "", plink.DefaultPath, "plink binary to run")
	flipCmd.Flags().StringVarP(&flipOutDir, "out-dir", "", ".", "Directory for the new filesets and intermediate files")
	flipCmd.Flags().StringVarP(&flipPlinkLog, "plink-log", "", "", "File to write plink output to (default: <out-dir>/<bfile>_flip.log)")
	flipCmd.Flags().StringVarP(&flipMetrics, "metrics-textfile", "", "", "Write run counts to this file in prometheus textfile format")

	flipCmd.MarkFlagRequired("bfile")
	flipCmd.MarkFlagRequired("strand-report")
	flipCmd.Flags().Lookup("exclude-ambiguous").NoOptDefVal = "true"

	flipCmd.Flags().SortFlags = false
}

var flipCmd = &cobra.Command{
	Use:   "flip",
	Short: "Put a plink fileset onto the reference strand",
	Long: `Put a plink fileset onto the reference strand

Example usage:

	strandcheck flip --bfile chip --strand-report probes.strand --ref-fasta hg19.fa --chrom-style ucsc

Runs plink to:
	1) move variants to the chromosome and position in --strand-report
	2) keep only the variants in --strand-report
	3) flip the variants chosen by --flip, after comparing alleles with the reference
	4) set allele 1 to the reference allele
	5) optionally drop variants with ambiguous (A/T, C/G) alleles

Each step writes a new fileset whose name adds a suffix to the previous one, eg.
chip_updated_chrom_updated_pos_filtered_flipped_real_ref.
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		mode, err := reconcile.ParseFlipMode(flipMode)
		if err != nil {
			return err
		}

		report, err := gfio.OpenIn(*cmd.Flag("strand-report"))
		if err != nil {
			return err
		}
		defer report.Close()

		lookup, closeLookup, err := flipLookup.open(cmd)
		if err != nil {
			return err
		}
		defer closeLookup()

		logPath := flipPlinkLog
		if logPath == "" {
			logPath = filepath.Join(flipOutDir, filepath.Base(flipBFile)+"_flip.log")
		}
		plinkLog, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer plinkLog.Close()

		runner := plink.NewRunner(flipPlink, flipOutDir, plink.Command{Log: plinkLog})

		res, err := pipeline.Run(context.Background(), pipeline.Options{
			BFile:            flipBFile,
			StrandReport:     report,
			Lookup:           lookup,
			Flip:             mode,
			ExcludeAmbiguous: flipExcludeAmbiguous,
		}, runner)
		if err != nil {
			return err
		}

		for _, c := range res.Report.Counts() {
			log.Infof("%s: %d", c.Category, c.N)
		}
		log.Infof("flipped %d variants, wrote %s", res.Flips, res.BFile)

		if flipMetrics != "" {
			err = metrics.WriteTextfile(flipMetrics, metrics.Set{
				Name:   "reconcile_variants",
				Help:   "Variants by reference allele category.",
				Counts: res.Report.Counts(),
			})
		}

		return
	},
}
