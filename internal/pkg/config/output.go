// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package config

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/elastic-agent-libs/transport/tlscommon"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/hashicorp/go-cleanhttp"
)

const schemeHTTP = "http"

var hasScheme = regexp.MustCompile(`^([a-z][a-z0-9+\-.]*)://`)

// Elasticsearch is the configuration for the target cluster.
type Elasticsearch struct {
	Protocol         string            `config:"protocol"`
	Hosts            []string          `config:"hosts"`
	Path             string            `config:"path"`
	Headers          map[string]string `config:"headers"`
	Username         string            `config:"username"`
	Password         string            `config:"password"`
	APIKey           string            `config:"api_key"`
	ServiceToken     string            `config:"service_token"`
	ServiceTokenPath string            `config:"service_token_path"`
	ProxyURL         string            `config:"proxy_url"`
	ProxyDisable     bool              `config:"proxy_disable"`
	ProxyHeaders     map[string]string `config:"proxy_headers"`
	TLS              *tlscommon.Config `config:"ssl"`
	MaxRetries       int               `config:"max_retries"`
	MaxConnPerHost   int               `config:"max_conn_per_host"`
	Timeout          time.Duration     `config:"timeout"`
}

// InitDefaults initializes the defaults for the configuration.
func (c *Elasticsearch) InitDefaults() {
	c.Protocol = schemeHTTP
	c.Hosts = []string{"localhost:9200"}
	c.Timeout = 90 * time.Second
	c.MaxRetries = 3
	c.MaxConnPerHost = 128
}

// Validate ensures that the configuration is valid.
func (c *Elasticsearch) Validate() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("elasticsearch.hosts must not be empty")
	}
	if c.APIKey != "" && c.Username != "" {
		return fmt.Errorf("cannot set both api_key and username/password")
	}
	if c.ProxyURL != "" && !c.ProxyDisable {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return err
		}
	}
	if c.TLS != nil && c.TLS.IsEnabled() {
		_, err := tlscommon.LoadTLSConfig(c.TLS)
		if err != nil {
			return err
		}
	}
	return nil
}

// ToESConfig converts the configuration object into the config for the elasticsearch client.
func (c *Elasticsearch) ToESConfig() (elasticsearch.Config, error) {
	// build the addresses
	addrs := make([]string, len(c.Hosts))
	for i, host := range c.Hosts {
		addr, err := makeURL(c.Protocol, c.Path, host, 9200)
		if err != nil {
			return elasticsearch.Config{}, err
		}
		addrs[i] = addr
	}

	httpTransport := cleanhttp.DefaultPooledTransport()
	httpTransport.MaxConnsPerHost = c.MaxConnPerHost
	httpTransport.ResponseHeaderTimeout = c.Timeout
	httpTransport.Proxy = nil

	if c.TLS != nil && c.TLS.IsEnabled() {
		tls, err := tlscommon.LoadTLSConfig(c.TLS)
		if err != nil {
			return elasticsearch.Config{}, err
		}
		httpTransport.TLSClientConfig = tls.ToConfig()
	}

	if !c.ProxyDisable {
		if c.ProxyURL != "" {
			proxyURL, err := url.Parse(c.ProxyURL)
			if err != nil {
				return elasticsearch.Config{}, err
			}
			httpTransport.Proxy = http.ProxyURL(proxyURL)
		} else {
			httpTransport.Proxy = http.ProxyFromEnvironment
		}

		if len(c.ProxyHeaders) > 0 {
			proxyHeaders := make(http.Header, len(c.ProxyHeaders))
			for k, v := range c.ProxyHeaders {
				proxyHeaders.Add(k, v)
			}
			httpTransport.ProxyConnectHeader = proxyHeaders
		}
	}

	h := http.Header{}
	for key, val := range c.Headers {
		h.Set(key, val)
	}

	serviceToken := c.ServiceToken
	if c.ServiceToken == "" && c.ServiceTokenPath != "" {
		p, err := os.ReadFile(c.ServiceTokenPath)
		if err != nil {
			return elasticsearch.Config{}, fmt.Errorf("unable to read service_token_path: %w", err)
		}
		serviceToken = strings.TrimSpace(string(p))
	}

	return elasticsearch.Config{
		Addresses:    addrs,
		Username:     c.Username,
		Password:     c.Password,
		APIKey:       c.APIKey,
		ServiceToken: serviceToken,
		Header:       h,
		Transport:    httpTransport,
		MaxRetries:   c.MaxRetries,
	}, nil
}

func makeURL(defaultScheme string, defaultPath string, rawURL string, defaultPort int) (string, error) {
	if defaultScheme == "" {
		defaultScheme = schemeHTTP
	}
	if !hasScheme.MatchString(rawURL) {
		rawURL = fmt.Sprintf("%v://%v", defaultScheme, rawURL)
	}
	addr, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	scheme := addr.Scheme
	host := addr.Host
	port := strconv.Itoa(defaultPort)

	if host == "" {
		host = "localhost"
	} else {
		// split host and optional port
		if splitHost, splitPort, err := net.SplitHostPort(host); err == nil {
			host = splitHost
			port = splitPort
		}

		// Check if ipv6
		if strings.Count(host, ":") > 1 && strings.Count(host, "]") == 0 {
			host = "[" + host + "]"
		}
	}

	// Assign default path if not set
	if addr.Path == "" {
		addr.Path = defaultPath
	}

	// reconstruct url
	addr.Scheme = scheme
	addr.Host = host + ":" + port
	return addr.String(), nil
}
