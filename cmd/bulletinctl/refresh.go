package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch every configured language and overwrite its cache entry.",
	Long: `Fetch every configured language and overwrite its cache entry.

Languages are processed one after another. The command fails only when no
language could be refreshed; individual failures are listed in the report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report := a.Orchestrator.Refresh(cmd.Context())
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !report.OK {
			return errors.New("refresh failed for every language")
		}
		return nil
	},
}
