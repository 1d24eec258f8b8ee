package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootVerbose bool
var rootLogFile string

var logFile *os.File

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "", false, "Log debug messages")
	rootCmd.PersistentFlags().StringVarP(&rootLogFile, "log-file", "", "", "Also write log messages to this file")

	rootCmd.PersistentFlags().Lookup("verbose").NoOptDefVal = "true"

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

var (
	rootCmd = &cobra.Command{
		Use:   "strandcheck",
		Short: "strand and reference allele checks for genotyping array probes",
		Long: `strand and reference allele checks for genotyping array probes

A typical run:

	strandcheck probes --manifest GSA-24v3-0_A1.csv -o probes.fa
	blat hg19.2bit probes.fa probes.psl
	strandcheck strand --psl probes.psl
	strandcheck reconcile --bim probes.bim --ref-fasta hg19.fa --chrom-style ucsc
	strandcheck flip --bfile chip --strand-report probes.strand --ref-fasta hg19.fa`,
		Version:           "0.3.0",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func setupLogging(cmd *cobra.Command, args []string) error {
	if rootVerbose {
		log.SetLevel(log.DebugLevel)
	}
	if rootLogFile != "" {
		f, err := os.Create(rootLogFile)
		if err != nil {
			return err
		}
		logFile = f
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}

// Execute executes the root command.
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
