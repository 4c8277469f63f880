// Command bulletinctl runs bulletin refreshes, reads the cache, and tries
// the extractor against saved pages from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/marine-bulletin-service/internal/app"
	"github.com/couchcryptid/marine-bulletin-service/internal/config"
	"github.com/couchcryptid/marine-bulletin-service/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "bulletinctl",
	Short: "Operate the Adriatic marine bulletin cache.",
	Long: `bulletinctl refreshes and inspects the cached Adriatic marine bulletins and
prints the bora pressure-differential outlook.

Settings come from the same environment variables as the server.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "SQLite store path, overrides STORE_PATH (~ is expanded)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(refreshCmd, showCmd, extractCmd, boraCmd)
}

// loadConfig applies the persistent flags on top of the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		path, err := homedir.Expand(store)
		if err != nil {
			return nil, fmt.Errorf("expand store path: %w", err)
		}
		cfg.StoreDriver = config.StoreSQLite
		cfg.StorePath = path
	}
	if level, _ := cmd.Flags().GetString("loglevel"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// metrics registers with the default registry, which allows one registration.
var metrics = sync.OnceValue(observability.NewMetrics)

func buildApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, metrics(), observability.NewCLILogger(cfg))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
