// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package es

// ErrorT is the error object returned in Elasticsearch responses.
type ErrorT struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
	Cause  struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"caused_by"`
}

// AckResponse is the acknowledgement response of index management calls.
type AckResponse struct {
	Acknowledged bool    `json:"acknowledged"`
	Error        *ErrorT `json:"error,omitempty"`
	Status       int     `json:"status,omitempty"`
}
