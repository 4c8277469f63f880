package main

import (
	"fmt"
	"io"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/marine-bulletin-service/internal/blocks"
	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
	"github.com/couchcryptid/marine-bulletin-service/internal/extract"
)

type extractOutput struct {
	Path     string              `json:"path"`
	Title    string              `json:"title"`
	IssuedAt *string             `json:"issuedAt"`
	Sections []domain.RawSection `json:"sections"`
	Blocks   domain.Blocks       `json:"blocks"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the extractor and block mapper on a saved bulletin page.",
	Long: `Run the extractor and block mapper on a saved bulletin page without
touching the network or the cache. Use --file - to read from stdin.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		file, _ := cmd.Flags().GetString("file")
		lang, _ := cmd.Flags().GetString("lang")

		page, err := readPage(cmd.InOrStdin(), file)
		if err != nil {
			return err
		}

		res := extract.Extract(page, domain.NormalizeLang(lang))
		out := extractOutput{
			Path:     res.Path,
			Title:    res.Title,
			Sections: res.Sections,
			Blocks:   blocks.Map(res.Sections),
		}
		if res.IssuedAt != nil {
			s := res.IssuedAt.UTC().Format(time.RFC3339)
			out.IssuedAt = &s
		}
		if out.Sections == nil {
			out.Sections = []domain.RawSection{}
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	extractCmd.Flags().StringP("file", "f", "", "saved HTML page, or - for stdin")
	extractCmd.Flags().String("lang", string(domain.DefaultLang), "page language (de, en, it, hr)")
	_ = extractCmd.MarkFlagRequired("file")
}

func readPage(stdin io.Reader, file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	path, err := homedir.Expand(file)
	if err != nil {
		return "", fmt.Errorf("expand path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(data), nil
}
