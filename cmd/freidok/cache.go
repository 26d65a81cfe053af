// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/freidok/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached responses as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "# cache is empty")
			return nil
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding cache entries: %w", err)
		}
		return enc.Close()
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("cleared cache", zap.Int64("removed", n))
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
		return nil
	},
}

func openCache(cmd *cobra.Command) (*cache.Store, error) {
	if err := bindFlags(cmd); err != nil {
		return nil, err
	}
	cfg := cacheConfig()
	if cfg.Path == "" {
		return nil, usageErrorf("--cache is required")
	}
	return cache.Open(cfg)
}

func init() {
	pf := cacheCmd.PersistentFlags()
	pf.String("cache", "", "SQLite file holding cached API responses")
	pf.Duration("cache-ttl", defaultCacheTTL, "how long cached responses stay valid (0 keeps them forever)")

	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
