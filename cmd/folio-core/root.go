package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliocms/folio-core/internal/config"
)

// rootOptions are the flags shared by every command. Flags win over the environment.
type rootOptions struct {
	envFile string
	backend string
	dataDir string
	prefix  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "folio-core",
		Short:        "Portfolio CMS content, theme and session stores",
		Version:      version,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", "", "load environment from this file (default .env.local, .env)")
	flags.StringVar(&opts.backend, "backend", "", "backing store: file, redis or postgres (overrides FOLIO_BACKEND)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory for the file backend (overrides FOLIO_DATA_DIR)")
	flags.StringVar(&opts.prefix, "key-prefix", "", "key namespace inside the backing store (overrides FOLIO_KEY_PREFIX)")

	cmd.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

// loadConfig reads the environment, applies flag overrides and installs the default logger
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFiles(o.envFile); err != nil {
		return nil, err
	}

	cfg := config.FromEnv()
	if cmd.Flags().Changed("backend") {
		cfg.Backend = config.Backend(o.backend)
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if cmd.Flags().Changed("key-prefix") {
		cfg.KeyPrefix = o.prefix
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if cfg.InsecureDefaults() {
		log.Println("WARNING: using development JWT secret or admin password; set JWT_SECRET and ADMIN_PASSWORD")
	}
	return cfg, nil
}
