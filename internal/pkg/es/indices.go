// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// CreateIndex creates index with the given body (settings, mappings, aliases).
// An index that already exists fails with an error wrapping ErrResourceAlreadyExists.
func CreateIndex(ctx context.Context, tr esapi.Transport, index string, body []byte) error {
	req := esapi.IndicesCreateRequest{
		Index: index,
	}
	if len(body) > 0 {
		req.Body = bytes.NewReader(body)
	}

	res, err := req.Do(ctx, tr)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return ParseError(res)
	}

	var r AckResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("failed to parse create index response: %v, err: %w", index, err)
	}
	if !r.Acknowledged {
		return fmt.Errorf("failed to receive acknowledgment for create index request: %v", index)
	}
	return nil
}

// DeleteIndices deletes the given indices. Missing indices are not an error.
func DeleteIndices(ctx context.Context, tr esapi.Transport, indices []string) error {
	ignoreUnavailable := true
	req := esapi.IndicesDeleteRequest{
		Index:             indices,
		IgnoreUnavailable: &ignoreUnavailable,
	}

	res, err := req.Do(ctx, tr)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return ParseError(res)
	}

	var r AckResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return err
	}
	if !r.Acknowledged {
		return fmt.Errorf("failed to receive acknowledgment for delete index request: %v", indices)
	}
	return nil
}

// RefreshIndices refreshes the given indices, all of them when none are given.
func RefreshIndices(ctx context.Context, tr esapi.Transport, indices ...string) error {
	allowNoIndices := true
	req := esapi.IndicesRefreshRequest{
		Index:          indices,
		AllowNoIndices: &allowNoIndices,
	}

	res, err := req.Do(ctx, tr)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return ParseError(res)
	}
	return nil
}
