package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/catalog"
	"github.com/portfolio/backend/internal/logging"
)

type rootOptions struct {
	verbose     bool
	catalogPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Query the portfolio catalog and manage contact messages",
		Long: `portfolioctl works against the same catalog and contact pipeline as the
portfolio API server.

Settings come from the environment (and a .env file when present):
CATALOG_PATH, CONTACT_ENDPOINT_URL, CONTACT_TIMEOUT, INBOX_DRIVER, DATABASE_URL,
SQLITE_PATH.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			logging.Setup(level, "text")
			if opts.catalogPath == "" {
				opts.catalogPath = os.Getenv("CATALOG_PATH")
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog manifest (default: $CATALOG_PATH or the built-in catalog)")

	root.AddCommand(newProjectsCmd(opts))
	root.AddCommand(newContactCmd())
	root.AddCommand(newInboxCmd())
	return root
}

func (o *rootOptions) loadCatalog() (*catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.Load()
	}
	slog.Debug("loading catalog manifest", "path", o.catalogPath)
	return catalog.LoadFile(o.catalogPath)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
