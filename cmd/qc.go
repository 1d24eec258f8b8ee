package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/bim"
	"github.com/array-qc/strandcheck/pkg/gfio"
)

var qcBim string
var qcOutStem string

func init() {
	rootCmd.AddCommand(qcCmd)

	qcCmd.Flags().StringVarP(&qcBim, "bim", "b", "stdin", "plink .bim file of the variants to check")
	qcCmd.Flags().StringVarP(&qcOutStem, "out-stem", "o", "", "Stem of the output files (default: the --bim file name without extension)")

	qcCmd.Flags().SortFlags = false
}

var qcCmd = &cobra.Command{
	Use:   "qc",
	Short: "List duplicate-position and indel variants",
	Long: `List duplicate-position and indel variants

Example usage:

	strandcheck qc --bim chip.bim

Output files are:

<stem>_duplicates.txt    every variant that shares its chromosome and position with another
<stem>_indels.txt        variants with an indel allele (D, I, + or -)
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("bim"))
		if err != nil {
			return err
		}
		defer in.Close()

		rows, err := bim.ReadAll(in)
		if err != nil {
			return err
		}

		stem := qcOutStem
		if stem == "" {
			stem = "strandcheck"
			if qcBim != "stdin" {
				stem = gfio.Stem(qcBim)
			}
		}

		files := &gfio.Files{Stem: stem}
		defer files.Close()

		lists := []struct {
			suffix   string
			variants []string
		}{
			{"_duplicates.txt", bim.Duplicates(rows)},
			{"_indels.txt", bim.Indels(rows)},
		}
		for _, l := range lists {
			w, err := files.Create(l.suffix)
			if err != nil {
				return err
			}
			if err = gfio.WriteLines(w, l.variants); err != nil {
				return err
			}
			log.Infof("%s%s: %d variants", stem, l.suffix, len(l.variants))
		}

		err = files.Close()

		return
	},
}
