// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/tree"
)

// Store is the subset of the response cache used by Cached.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Cached serves API responses from a Store and fills it on a miss.
type Cached struct {
	Client *APIClient
	Store  Store
	Log    *zap.Logger
}

// Publications implements Reader.
func (c *Cached) Publications(ctx context.Context, q PublicationQuery) (tree.Node, error) {
	params, err := q.values(c.Client.cfg.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, c.Client.URL("publications", params), func() (tree.Node, error) {
		return c.Client.Publications(ctx, q)
	})
}

// Institutions implements Reader.
func (c *Cached) Institutions(ctx context.Context, q InstitutionQuery) (tree.Node, error) {
	params, err := q.values(c.Client.cfg.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, c.Client.URL("institutions", params), func() (tree.Node, error) {
		return c.Client.Institutions(ctx, q)
	})
}

func (c *Cached) fetch(ctx context.Context, key string, load func() (tree.Node, error)) (tree.Node, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	if !c.Client.cfg.DryRun {
		payload, ok, err := c.Store.Get(ctx, key)
		if err != nil {
			log.Warn("cache read failed", zap.Error(err))
		} else if ok {
			n, err := tree.Decode(bytes.NewReader(payload))
			if err == nil {
				log.Debug("cache hit", zap.String("key", key))
				return n, nil
			}
			log.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		}
	}

	n, err := load()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encoding payload for cache: %w", err)
	}
	if err := c.Store.Put(ctx, key, payload); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
	return n, nil
}
