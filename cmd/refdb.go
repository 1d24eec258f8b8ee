package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/reference"
)

var refdbTable string
var refdbDB string

func init() {
	rootCmd.AddCommand(refdbCmd)

	refdbCmd.Flags().StringVarP(&refdbTable, "var-to-ref", "i", "stdin", "Tab-separated variant, reference allele table")
	refdbCmd.Flags().StringVarP(&refdbDB, "db", "o", "", "SQLite database to create or add to")

	refdbCmd.MarkFlagRequired("db")

	refdbCmd.Flags().SortFlags = false
}

var refdbCmd = &cobra.Command{
	Use:   "refdb",
	Short: "Load a variant to reference allele table into a SQLite database",
	Long: `Load a variant to reference allele table into a SQLite database

Example usage:

	strandcheck refdb -i var2ref.tsv -o var2ref.db
	strandcheck reconcile --bim chip.bim --var-to-ref-db var2ref.db

Variants already in the database are replaced.
`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("var-to-ref"))
		if err != nil {
			return err
		}
		defer in.Close()

		table, err := reference.ReadTable(in)
		if err != nil {
			return err
		}

		n, err := reference.ImportTable(refdbDB, table)
		if err != nil {
			return err
		}
		log.Infof("loaded %d variants into %s", n, refdbDB)

		return
	},
}
