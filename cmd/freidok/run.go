// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/cache"
	"github.com/pdiddy/freidok/internal/client"
	"github.com/pdiddy/freidok/internal/export"
	"github.com/pdiddy/freidok/pkg/types"
)

// newReader builds the retrieval stage. API clients are wrapped in the
// response cache when one is configured. The returned func releases the
// cache.
func newReader(cmd *cobra.Command, cfg types.ClientConfig, cc types.CacheConfig) (client.Reader, func(), error) {
	noop := func() {}
	r, err := client.NewReader(cfg, logger)
	if err != nil {
		return nil, noop, usageError(err)
	}
	api, ok := r.(*client.APIClient)
	if !ok {
		if cc.Path != "" {
			logger.Debug("cache not used for file sources", zap.String("source", cfg.Source))
		}
		return r, noop, nil
	}
	api.DryRunOut = cmd.OutOrStdout()
	if cc.Path == "" {
		return api, noop, nil
	}

	store, err := cache.Open(cc)
	if err != nil {
		return nil, noop, err
	}
	if n, err := store.Prune(cmd.Context()); err != nil {
		logger.Warn("pruning cache failed", zap.Error(err))
	} else if n > 0 {
		logger.Debug("pruned expired cache entries", zap.Int64("count", n))
	}
	return &client.Cached{Client: api, Store: store, Log: logger}, func() { store.Close() }, nil
}

// writeOutput renders p to the configured file or to stdout.
func writeOutput(cmd *cobra.Command, cfg types.ExportConfig, p export.Payload) error {
	e, err := export.New(cfg.Format, p.Items.ItemType(), cfg.Template)
	if err != nil {
		return usageError(err)
	}
	if cfg.Out == "" {
		return e.Export(cmd.OutOrStdout(), p)
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := e.Export(f, p); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", cfg.Out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", cfg.Out, err)
	}
	logger.Debug("wrote output", zap.String("path", cfg.Out), zap.String("format", string(cfg.Format)))
	return nil
}
