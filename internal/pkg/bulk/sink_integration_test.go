// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

//go:build integration

package bulk_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/esarchiver/internal/pkg/bulk"
	"github.com/elastic/esarchiver/internal/pkg/es"
	ftesting "github.com/elastic/esarchiver/internal/pkg/testing"
	testlog "github.com/elastic/esarchiver/internal/pkg/testing/log"
)

const testMapping = `{"mappings":{"properties":{"n":{"type":"integer"}}}}`

type countingProgress struct{ n int }

func (p *countingProgress) AddToComplete(n int) { p.n += n }

func countDocs(ctx context.Context, t *testing.T, cli *elasticsearch.Client, index string) int {
	t.Helper()

	require.NoError(t, es.RefreshIndices(ctx, cli, index))

	res, err := esapi.CountRequest{Index: []string{index}}.Do(ctx, cli)
	require.NoError(t, err)
	defer res.Body.Close()
	require.False(t, res.IsError(), res.String())

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body.Count
}

func TestSinkIntegration(t *testing.T) {
	testlog.SetLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cli := ftesting.SetupES(ctx, t)
	index := ftesting.SetupIndex(ctx, t, cli, testMapping)

	const n = 1000
	recs := make([]bulk.Record, n)
	for i := range recs {
		recs[i] = bulk.Record{
			Index:  index,
			ID:     fmt.Sprintf("doc-%d", i),
			Source: []byte(fmt.Sprintf(`{"n":%d}`, i)),
		}
	}

	var progress countingProgress
	sink := bulk.NewSink(cli, nil, &progress)

	errCh := make(chan error, 1)
	go func() { errCh <- sink.Run(ctx) }()

	for _, rec := range recs {
		require.NoError(t, sink.Write(ctx, rec))
	}
	sink.Close()
	require.NoError(t, <-errCh)

	assert.Equal(t, n, progress.n)
	assert.Equal(t, n, countDocs(ctx, t, cli, index))
}

func TestSinkIntegrationCreateConflict(t *testing.T) {
	testlog.SetLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cli := ftesting.SetupES(ctx, t)
	index := ftesting.SetupIndex(ctx, t, cli, testMapping)

	rec := bulk.Record{Index: index, ID: "dup", Source: []byte(`{"n":1}`)}

	sink := bulk.NewSink(cli, nil, nil, bulk.WithCreate())
	require.NoError(t, sink.IndexDocs(ctx, rec))

	err := sink.IndexDocs(ctx, rec)
	var failed *bulk.ErrBulkFailed
	require.ErrorAs(t, err, &failed)
	assert.ErrorIs(t, err, es.ErrElasticVersionConflict)
	assert.Equal(t, 1, failed.Failed)
	assert.Equal(t, 1, countDocs(ctx, t, cli, index))
}
