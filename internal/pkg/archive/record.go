// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package archive

import (
	"encoding/json"
	"fmt"

	"github.com/elastic/esarchiver/internal/pkg/bulk"
)

type RecordType string

const (
	TypeIndex RecordType = "index"
	TypeDoc   RecordType = "doc"
)

// Record is one entry of an archive file.
type Record struct {
	Type  RecordType      `json:"type"`
	Value json.RawMessage `json:"value"`
}

// IndexDef is the value of an index record.
type IndexDef struct {
	Index    string          `json:"index"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Mappings json.RawMessage `json:"mappings,omitempty"`
	Aliases  json.RawMessage `json:"aliases,omitempty"`
}

// Body is the create index request body.
func (d IndexDef) Body() ([]byte, error) {
	return json.Marshal(struct {
		Settings json.RawMessage `json:"settings,omitempty"`
		Mappings json.RawMessage `json:"mappings,omitempty"`
		Aliases  json.RawMessage `json:"aliases,omitempty"`
	}{d.Settings, d.Mappings, d.Aliases})
}

// IndexDef decodes the value of an index record.
func (r Record) IndexDef() (IndexDef, error) {
	var d IndexDef
	if r.Type != TypeIndex {
		return d, fmt.Errorf("%w: %q is not an index record", ErrRecordType, r.Type)
	}
	if err := json.Unmarshal(r.Value, &d); err != nil {
		return d, err
	}
	if d.Index == "" {
		return d, fmt.Errorf("%w: index record without index name", ErrMalformedRecord)
	}
	return d, nil
}

// Doc decodes the value of a doc record.
func (r Record) Doc() (bulk.Record, error) {
	var d bulk.Record
	if r.Type != TypeDoc {
		return d, fmt.Errorf("%w: %q is not a doc record", ErrRecordType, r.Type)
	}
	if err := json.Unmarshal(r.Value, &d); err != nil {
		return d, err
	}
	if d.Index == "" {
		return d, fmt.Errorf("%w: doc record without index name", ErrMalformedRecord)
	}
	return d, nil
}
