// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToESConfig(t *testing.T) {
	testcases := map[string]struct {
		cfg       Elasticsearch
		addresses []string
		header    http.Header
	}{
		"http": {
			cfg: Elasticsearch{
				Protocol:       "http",
				Hosts:          []string{"localhost:9200"},
				MaxRetries:     3,
				MaxConnPerHost: 128,
				Timeout:        90 * time.Second,
			},
			addresses: []string{"http://localhost:9200"},
			header:    http.Header{},
		},
		"multi-http with path": {
			cfg: Elasticsearch{
				Protocol: "http",
				Hosts:    []string{"localhost:9200", "other-host"},
				Path:     "/search",
				Headers: map[string]string{
					"X-Custom-Header": "Header-Value",
				},
				MaxRetries:     6,
				MaxConnPerHost: 256,
				Timeout:        120 * time.Second,
			},
			addresses: []string{"http://localhost:9200/search", "http://other-host:9200/search"},
			header:    http.Header{"X-Custom-Header": {"Header-Value"}},
		},
		"https with explicit scheme": {
			cfg: Elasticsearch{
				Protocol:       "http",
				Hosts:          []string{"https://secure:9243"},
				MaxConnPerHost: 16,
				Timeout:        time.Second,
			},
			addresses: []string{"https://secure:9243"},
			header:    http.Header{},
		},
		"ipv6": {
			cfg: Elasticsearch{
				Protocol: "http",
				Hosts:    []string{"::1"},
			},
			addresses: []string{"http://[::1]:9200"},
			header:    http.Header{},
		},
	}

	for name, test := range testcases {
		t.Run(name, func(t *testing.T) {
			res, err := test.cfg.ToESConfig()
			require.NoError(t, err)
			assert.Equal(t, test.addresses, res.Addresses)
			assert.Equal(t, test.header, res.Header)
			assert.Equal(t, test.cfg.MaxRetries, res.MaxRetries)

			tr, ok := res.Transport.(*http.Transport)
			require.True(t, ok, "expected *http.Transport")
			assert.Equal(t, test.cfg.MaxConnPerHost, tr.MaxConnsPerHost)
			assert.Equal(t, test.cfg.Timeout, tr.ResponseHeaderTimeout)
			assert.NotNil(t, tr.Proxy)
		})
	}
}

func TestToESConfigProxy(t *testing.T) {
	cfg := Elasticsearch{
		Protocol:     "http",
		Hosts:        []string{"localhost:9200"},
		ProxyURL:     "http://proxy:3128",
		ProxyHeaders: map[string]string{"X-Proxy": "yes"},
	}

	res, err := cfg.ToESConfig()
	require.NoError(t, err)
	tr := res.Transport.(*http.Transport)

	req, err := http.NewRequest(http.MethodGet, "http://localhost:9200", nil)
	require.NoError(t, err)
	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:3128", u.String())
	assert.Equal(t, "yes", tr.ProxyConnectHeader.Get("X-Proxy"))

	cfg.ProxyDisable = true
	res, err = cfg.ToESConfig()
	require.NoError(t, err)
	assert.Nil(t, res.Transport.(*http.Transport).Proxy)
}

func TestToESConfigServiceTokenPath(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(fileName, []byte("test-token\n"), 0600))

	cfg := Elasticsearch{
		Protocol:         "http",
		Hosts:            []string{"localhost:9200"},
		ServiceTokenPath: fileName,
	}
	res, err := cfg.ToESConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-token", res.ServiceToken)

	cfg.ServiceToken = "explicit"
	res, err = cfg.ToESConfig()
	require.NoError(t, err)
	assert.Equal(t, "explicit", res.ServiceToken)

	cfg.ServiceToken = ""
	cfg.ServiceTokenPath = filepath.Join(t.TempDir(), "missing")
	_, err = cfg.ToESConfig()
	assert.Error(t, err)
}

func TestElasticsearchValidate(t *testing.T) {
	cfg := Elasticsearch{}
	cfg.InitDefaults()
	require.NoError(t, cfg.Validate())

	cfg.APIKey = "key"
	cfg.Username = "elastic"
	assert.Error(t, cfg.Validate())

	cfg = Elasticsearch{}
	assert.Error(t, cfg.Validate())
}
