// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package esutil provides a mock Elasticsearch transport for unit tests.
package esutil

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"
)

// Request is a request captured by MockTransport, with its body already read.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// MockTransport serves canned responses and records every request it receives.
// It satisfies both esapi.Transport and http.RoundTripper.
type MockTransport struct {
	PerformFn func(req *http.Request, body []byte) (*http.Response, error)

	mut      sync.Mutex
	requests []Request
}

// NewMockTransport returns a transport answering every request with fn.
func NewMockTransport(fn func(req *http.Request, body []byte) (*http.Response, error)) *MockTransport {
	return &MockTransport{PerformFn: fn}
}

func (t *MockTransport) Perform(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
	}

	t.mut.Lock()
	t.requests = append(t.requests, Request{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Body:   body,
	})
	t.mut.Unlock()

	if t.PerformFn == nil {
		return SendBodyString(http.StatusOK, "{}"), nil
	}
	return t.PerformFn(req, body)
}

func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.Perform(req)
}

// Requests returns a copy of the requests received so far.
func (t *MockTransport) Requests() []Request {
	t.mut.Lock()
	defer t.mut.Unlock()
	out := make([]Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// MockESClient wraps a MockTransport into a real client, so the client's own
// request pipeline (product check included) is exercised.
func MockESClient(t *testing.T, fn func(req *http.Request, body []byte) (*http.Response, error)) (*elasticsearch.Client, *MockTransport) {
	t.Helper()
	mocktrans := NewMockTransport(fn)
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: mocktrans,
	})
	require.NoError(t, err)
	return client, mocktrans
}

// SendBodyString builds a JSON response with the given status.
func SendBodyString(status int, body string) *http.Response {
	return SendBody(status, strings.NewReader(body))
}

// SendBody builds a response with the given status and body.
func SendBody(status int, body io.Reader) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Body:       io.NopCloser(body),
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
	}
}

// SendBytes builds a JSON response from raw bytes.
func SendBytes(status int, body []byte) *http.Response {
	return SendBody(status, bytes.NewReader(body))
}
