package cmd

import (
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/manifest"
)

var probesManifest string
var probesOutfile string
var probesWrap int

func init() {
	rootCmd.AddCommand(probesCmd)

	probesCmd.Flags().StringVarP(&probesManifest, "manifest", "m", "stdin", "Illumina array manifest, in csv format")
	probesCmd.Flags().StringVarP(&probesOutfile, "fasta-out", "o", "stdout", "Probe sequences to write, in fasta format")
	probesCmd.Flags().IntVarP(&probesWrap, "wrap", "w", 0, "Wrap sequence lines to this many characters (0: no wrapping)")

	probesCmd.Flags().SortFlags = false
}

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "Write the probe sequences of an array manifest in fasta format",
	Long: `Write the probe sequences of an array manifest in fasta format

Example usage:

	strandcheck probes -m GSA-24v3-0_A1.csv -o probes.fa

Every assay row (between the IlmnID header and the [Controls] section) becomes a
record with the id name;alleles;chrom;pos, eg. rs1;A/G;1;100, ready for alignment
to the reference genome with BLAT.
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("manifest"))
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := gfio.OpenOut(*cmd.Flag("fasta-out"))
		if err != nil {
			return err
		}
		defer out.Close()

		err = manifest.ToFasta(in, out, probesWrap)

		return
	},
}
