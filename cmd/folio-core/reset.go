package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every key under the configured prefix",
		Long:  "Removes content, theme, settings and the session. The next start falls back to defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to clear the backing store without --force")
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			kv, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := resetStore(cmd.Context(), kv)
			if err != nil {
				return err
			}
			log.Printf("Removed %d keys", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm clearing the backing store")
	return cmd
}

func resetStore(ctx context.Context, kv driven.KeyValueStore) (int, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list keys: %w", err)
	}
	for _, key := range keys {
		if err := kv.Remove(ctx, key); err != nil {
			return 0, fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return len(keys), nil
}
