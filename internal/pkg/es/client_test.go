// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package es

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/esarchiver/internal/pkg/testing/esutil"
)

func TestInfo(t *testing.T) {
	tr := esutil.NewMockTransport(func(req *http.Request, _ []byte) (*http.Response, error) {
		return esutil.SendBodyString(http.StatusOK, `{
			"cluster_name": "archive",
			"cluster_uuid": "abc",
			"version": {"number": "8.11.1", "distribution": ""}
		}`), nil
	})

	info, err := Info(context.Background(), tr)
	require.NoError(t, err)
	assert.Equal(t, "archive", info.ClusterName)
	assert.Equal(t, "8.11.1", info.Version.Number)
	require.Len(t, tr.Requests(), 1)
	assert.Equal(t, "/", tr.Requests()[0].Path)
}

func TestInfoError(t *testing.T) {
	tr := esutil.NewMockTransport(func(req *http.Request, _ []byte) (*http.Response, error) {
		return esutil.SendBodyString(http.StatusUnauthorized,
			`{"error":{"type":"security_exception","reason":"missing authentication credentials"},"status":401}`), nil
	})

	_, err := Info(context.Background(), tr)
	var esErr *ErrElastic
	require.ErrorAs(t, err, &esErr)
	assert.Equal(t, "security_exception", esErr.Type)
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name         string
		number       string
		distribution string
		ok           bool
	}{
		{"elasticsearch 8", "8.11.1", "", true},
		{"elasticsearch 7", "7.17.0", "", true},
		{"elasticsearch 6", "6.8.23", "", false},
		{"opensearch 2", "2.11.0", "opensearch", true},
		{"opensearch 1", "1.3.0", "opensearch", true},
		{"garbage", "not-a-version", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var info InfoResponse
			info.Version.Number = tc.number
			info.Version.Distribution = tc.distribution

			err := CheckVersion(&info)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
