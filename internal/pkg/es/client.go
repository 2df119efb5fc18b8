// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package es

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/esarchiver/internal/pkg/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/hashicorp/go-version"
	"github.com/rs/zerolog/log"
)

const distributionOpenSearch = "opensearch"

var (
	// Bulk action metadata stopped carrying _type in 7.0.
	minElasticsearchVersion = version.Must(version.NewVersion("7.0.0"))
	minOpenSearchVersion    = version.Must(version.NewVersion("1.0.0"))
)

// NewClient creates a client for the configured cluster and validates the connection.
func NewClient(ctx context.Context, cfg *config.Config) (*elasticsearch.Client, error) {
	escfg, err := cfg.Elasticsearch.ToESConfig()
	if err != nil {
		return nil, err
	}
	addr := cfg.Elasticsearch.Hosts
	user := cfg.Elasticsearch.Username
	mcph := cfg.Elasticsearch.MaxConnPerHost

	log.Debug().
		Strs("addr", addr).
		Str("user", user).
		Int("maxConnsPersHost", mcph).
		Msg("init es")

	es, err := elasticsearch.NewClient(escfg)
	if err != nil {
		return nil, err
	}

	// Validate connection
	resp, err := Info(ctx, es)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("name", resp.ClusterName).
		Str("uuid", resp.ClusterUUID).
		Str("vers", resp.Version.Number).
		Str("distribution", resp.Version.Distribution).
		Msg("Cluster Info")

	if err := CheckVersion(resp); err != nil {
		return nil, err
	}

	return es, nil
}

// InfoResponse is the subset of the root endpoint response esarchiver uses.
type InfoResponse struct {
	ClusterName string `json:"cluster_name"`
	ClusterUUID string `json:"cluster_uuid"`
	Version     struct {
		Number       string `json:"number"`
		Distribution string `json:"distribution"`
	} `json:"version"`
}

// Info fetches the cluster info from the root endpoint.
func Info(ctx context.Context, tr esapi.Transport) (*InfoResponse, error) {
	res, err := esapi.InfoRequest{}.Do(ctx, tr)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.IsError() {
		return nil, ParseError(res)
	}

	var resp InfoResponse

	d := json.NewDecoder(res.Body)
	if err = d.Decode(&resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CheckVersion fails when the cluster is too old to accept typeless bulk requests.
func CheckVersion(info *InfoResponse) error {
	v, err := version.NewVersion(info.Version.Number)
	if err != nil {
		return fmt.Errorf("unable to parse cluster version %q: %w", info.Version.Number, err)
	}

	min := minElasticsearchVersion
	if info.Version.Distribution == distributionOpenSearch {
		min = minOpenSearchVersion
	}

	if v.LessThan(min) {
		return fmt.Errorf("unsupported cluster version %s, need at least %s", v, min)
	}
	return nil
}
