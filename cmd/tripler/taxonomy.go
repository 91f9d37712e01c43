package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/siherrmann/tripler/core/taxonomy"
	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "List the relation types",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tINVERSE\tDESCRIPTION")
		for _, d := range taxonomy.Default().Definitions() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Tag, d.Inverse, d.Description)
			if verbose {
				fmt.Fprintf(w, "\t\tpatterns: %s\n", strings.Join(d.TypicalPatterns, ", "))
			}
		}
		return w.Flush()
	},
}

func init() {
	taxonomyCmd.Flags().BoolP("verbose", "v", false, "Show typical patterns")
}
