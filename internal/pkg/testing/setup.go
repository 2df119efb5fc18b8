// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

//go:build integration

// Package testing sets up a live cluster for integration tests.
package testing

import (
	"context"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/xid"

	"github.com/elastic/esarchiver/internal/pkg/config"
	"github.com/elastic/esarchiver/internal/pkg/es"
)

var defaultCfgData = []byte(`
elasticsearch:
  hosts: '${ELASTICSEARCH_HOSTS:localhost:9200}'
  username: '${ELASTICSEARCH_USERNAME:elastic}'
  password: '${ELASTICSEARCH_PASSWORD:changeme}'
`)

// SetupConfig returns the configuration pointing at the test cluster.
func SetupConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Parse(defaultCfgData)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func SetupES(ctx context.Context, t *testing.T) *elasticsearch.Client {
	t.Helper()

	cli, err := es.NewClient(ctx, SetupConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	return cli
}

// SetupIndex creates a randomly named index and deletes it when the test ends.
func SetupIndex(ctx context.Context, t *testing.T, cli *elasticsearch.Client, mapping string) string {
	t.Helper()

	index := xid.New().String()
	if err := es.CreateIndex(ctx, cli, index, []byte(mapping)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = es.DeleteIndices(context.Background(), cli, []string{index})
	})
	return index
}
