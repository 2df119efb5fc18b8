// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package es

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
)

const unknownErrorType = "unknown error"

// ErrElastic is an error reported by the cluster.
type ErrElastic struct {
	Status int
	Type   string
	Reason string
	Cause  struct {
		Type   string
		Reason string
	}
}

func (e *ErrElastic) Unwrap() error {
	switch e.Type {
	case "index_not_found_exception":
		return ErrIndexNotFound
	case "timeout_exception":
		return ErrTimeout
	case "resource_already_exists_exception":
		return ErrResourceAlreadyExists
	}
	return nil
}

func (e *ErrElastic) Error() string {
	// Otherwise we'd get "elastic fail 404::"
	msg := "elastic fail "
	var b strings.Builder
	b.Grow(len(msg) + 11 + len(e.Type) + len(e.Reason) + len(e.Cause.Type) + len(e.Cause.Reason))
	b.WriteString(msg)
	b.WriteString(strconv.Itoa(e.Status))
	if e.Type != "" {
		b.WriteString(": ")
		b.WriteString(e.Type)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Cause.Type != "" {
		b.WriteString(": ")
		b.WriteString(e.Cause.Type)
	}
	if e.Cause.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Cause.Reason)
	}
	return b.String()
}

var (
	ErrElasticVersionConflict = errors.New("elastic version conflict")
	ErrInvalidBody            = errors.New("invalid body")
	ErrIndexNotFound          = errors.New("index not found")
	ErrResourceAlreadyExists  = errors.New("resource already exists")
	ErrTimeout                = errors.New("timeout")

	errorCheckQueue = [5]string{
		ErrElasticVersionConflict.Error(),
		ErrInvalidBody.Error(),
		ErrIndexNotFound.Error(),
		ErrResourceAlreadyExists.Error(),
		ErrTimeout.Error(),
	}
)

// TranslateError turns a raw error object into a go error.
// Status 200 and 201 never produce an error.
func TranslateError(status int, rawError json.RawMessage) error {
	if status == 200 || status == 201 {
		return nil
	}

	if len(rawError) == 0 {
		// error was omitted
		return &ErrElastic{
			Status: status,
		}
	}

	// try decoding detailed error by default
	detailedError := &ErrorT{}
	if err := json.Unmarshal(rawError, &detailedError); err == nil {
		return translateDetailedError(status, detailedError)
	}

	reason := string(rawError)
	return &ErrElastic{
		Status: status,
		Type:   errType(reason),
		Reason: reason,
	}
}

// ParseError attempts to interpret the response as an elastic error,
// otherwise returns a generic elastic error carrying the status code.
func ParseError(res *esapi.Response) error {
	var e struct {
		Err json.RawMessage `json:"error"`
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Debug().Err(err).Msg("Error reading error response body from Elasticsearch")
		return &ErrElastic{Status: res.StatusCode}
	}

	if err := json.Unmarshal(body, &e); err != nil {
		log.Debug().Err(err).Bytes("body", body).Msg("Cannot decode Elasticsearch error body")
		return TranslateError(res.StatusCode, body)
	}

	return TranslateError(res.StatusCode, e.Err)
}

func errType(errBody string) string {
	for _, errCheck := range errorCheckQueue {
		if strings.Contains(errBody, errCheck) {
			return errCheck
		}
	}

	return unknownErrorType
}

func translateDetailedError(status int, e *ErrorT) error {
	if e == nil {
		return &ErrElastic{
			Status: status,
		}
	}

	if e.Type == "version_conflict_engine_exception" {
		return ErrElasticVersionConflict
	}

	err := &ErrElastic{
		Status: status,
		Type:   e.Type,
		Reason: e.Reason,
	}
	err.Cause.Type = e.Cause.Type
	err.Cause.Reason = e.Cause.Reason
	return err
}
