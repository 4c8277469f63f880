package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached bulletin for a language.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Reader.Read(cmd.Context(), lang)
		if errors.Is(err, domain.ErrCacheMiss) {
			return fmt.Errorf("no cached bulletin for %q yet; run refresh first", res.Lang)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res.Payload)
	},
}

func init() {
	showCmd.Flags().String("lang", string(domain.DefaultLang), "language code (de, en, it, hr, fr)")
}
