package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

const backupVersion = 1

// backup is the portable export of a site. The session is never exported.
type backup struct {
	Version  int                     `yaml:"version"`
	Content  *domain.ContentDocument `yaml:"content"`
	Theme    domain.ThemeSettings    `yaml:"theme"`
	Settings domain.CmsSettings      `yaml:"settings"`
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write content, theme and CMS settings as YAML",
		Long:  "Loads the stores (substituting defaults for anything missing) and writes them as a YAML backup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			kv, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			st, err := newStores(cfg, kv)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return exportBackup(cmd.Context(), st, w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func exportBackup(ctx context.Context, st *stores, w io.Writer) error {
	st.content.Load(ctx)
	st.theme.Load(ctx)

	doc, err := st.content.Snapshot()
	if err != nil {
		return err
	}
	theme, err := st.theme.Theme()
	if err != nil {
		return err
	}
	settings, err := st.content.CmsSettings()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(backup{
		Version:  backupVersion,
		Content:  doc,
		Theme:    theme,
		Settings: settings,
	}); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return enc.Close()
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace content, theme and CMS settings from a YAML backup",
		Long: "Validates the backup and writes it to the backing store. " +
			"A running server picks the imported data up on its next start.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup: %w", err)
			}
			defer f.Close()

			kv, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := importBackup(cmd.Context(), kv, f); err != nil {
				return err
			}
			log.Printf("Imported %s", args[0])
			return nil
		},
	}
}

// importBackup validates every record the way Load would before writing any of them
func importBackup(ctx context.Context, kv driven.KeyValueStore, r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var b backup
	if err := dec.Decode(&b); err != nil {
		return fmt.Errorf("%w: failed to parse backup: %v", domain.ErrInvalidInput, err)
	}
	if b.Version != backupVersion {
		return fmt.Errorf("%w: unsupported backup version %d", domain.ErrInvalidInput, b.Version)
	}
	if b.Content == nil {
		return fmt.Errorf("%w: backup has no content", domain.ErrInvalidInput)
	}

	content, err := json.Marshal(b.Content)
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}
	if _, err := domain.DecodeContentDocument(content); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	theme, err := json.Marshal(b.Theme)
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if _, err := domain.DecodeThemeSettings(theme); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	settings, err := json.Marshal(b.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	for _, rec := range []struct {
		key  string
		data []byte
	}{
		{domain.KeyContent, content},
		{domain.KeyTheme, theme},
		{domain.KeyCmsSettings, settings},
	} {
		if err := kv.Set(ctx, rec.key, rec.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", rec.key, err)
		}
	}
	return nil
}
