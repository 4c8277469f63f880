package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var boraCmd = &cobra.Command{
	Use:   "bora",
	Short: "Print the coastal minus inland pressure outlook.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, _ := cmd.Flags().GetBool("table")

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		charts, err := a.Aggregator.Forecast(cmd.Context())
		if err != nil {
			return err
		}
		if !table {
			return printJSON(cmd.OutOrStdout(), charts)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "next 36h min delta\t%.1f hPa\t\n", charts.Next36h.MinDelta)
		fmt.Fprintf(w, "level\t%s\t\n", charts.Next36h.Level)
		if charts.Now != nil {
			fmt.Fprintf(w, "now\t%.1f hPa\t\n", charts.Now.Delta)
			if charts.Now.WindKn != nil {
				fmt.Fprintf(w, "coastal wind\t%.1f kn\t\n", *charts.Now.WindKn)
			}
		}
		fmt.Fprintln(w, " \t \t")
		fmt.Fprintln(w, "TICK\tDELTA\t")
		for i, label := range charts.H48.Labels {
			fmt.Fprintf(w, "%s\t%.1f\t\n", label, charts.H48.Data[i])
		}
		return w.Flush()
	},
}

func init() {
	boraCmd.Flags().Bool("table", false, "print the next 48 hours as a table")
}
