// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package indices creates the indices described by archive index records.
package indices

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"

	"github.com/elastic/esarchiver/internal/pkg/archive"
	"github.com/elastic/esarchiver/internal/pkg/es"
	"github.com/elastic/esarchiver/internal/pkg/logger"
)

const (
	kModIndices = "indices"

	maxCreateAttempts = 3
)

// Stats receives what the creator did to each index.
type Stats interface {
	SkippedIndex(index string)
	DeletedIndex(index string)
	CreatedIndex(index string)
}

// Creator creates indices, replacing or skipping the ones that already exist.
type Creator struct {
	tr           esapi.Transport
	stats        Stats
	skipExisting bool

	mut     sync.RWMutex
	skipped map[string]struct{}
}

func NewCreator(tr esapi.Transport, stats Stats, skipExisting bool) *Creator {
	return &Creator{
		tr:           tr,
		stats:        stats,
		skipExisting: skipExisting,
		skipped:      make(map[string]struct{}),
	}
}

// Create creates the index described by def. When the index exists it is
// either skipped, with its documents to be dropped, or deleted and recreated.
func (c *Creator) Create(ctx context.Context, def archive.IndexDef) error {
	body, err := def.Body()
	if err != nil {
		return err
	}

	zlog := log.With().
		Str("mod", kModIndices).
		Str(logger.EcsIndexName, def.Index).
		Logger()

	for attempt := 1; ; attempt++ {
		err := es.CreateIndex(ctx, c.tr, def.Index, body)
		if err == nil {
			c.stats.CreatedIndex(def.Index)
			return nil
		}

		if !errors.Is(err, es.ErrResourceAlreadyExists) || attempt >= maxCreateAttempts {
			zlog.Error().Err(err).Int("attempt", attempt).Msg("Fail create index")
			return fmt.Errorf("create index %s: %w", def.Index, err)
		}

		if c.skipExisting {
			c.skip(def.Index)
			c.stats.SkippedIndex(def.Index)
			return nil
		}

		zlog.Debug().Int("attempt", attempt).Msg("Index exists, deleting")
		if err := es.DeleteIndices(ctx, c.tr, []string{def.Index}); err != nil {
			return fmt.Errorf("delete index %s: %w", def.Index, err)
		}
		c.stats.DeletedIndex(def.Index)
	}
}

func (c *Creator) skip(index string) {
	c.mut.Lock()
	c.skipped[index] = struct{}{}
	c.mut.Unlock()
}

// Skipped reports whether documents for index should be dropped.
func (c *Creator) Skipped(index string) bool {
	c.mut.RLock()
	defer c.mut.RUnlock()
	_, ok := c.skipped[index]
	return ok
}
