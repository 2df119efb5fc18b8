// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Record is one document with its destination index and id.
type Record struct {
	Index  string          `json:"index"`
	ID     string          `json:"id"`
	Source json.RawMessage `json:"source"`
}

func (r Record) MarshalZerologObject(e *zerolog.Event) {
	e.Str("index", r.Index)
	e.Str("id", r.ID)
	e.Int("sourceSz", len(r.Source))
}

// Action is the bulk operation written in each action descriptor.
type Action string

func (a Action) String() string { return string(a) }

const (
	// ActionCreate fails when the document already exists.
	ActionCreate Action = "create"
	// ActionIndex creates or replaces the document.
	ActionIndex Action = "index"
)

// Progress is advanced by the number of records committed by each bulk call.
type Progress interface {
	AddToComplete(n int)
}

// Stats is told about every index a record is about to be written to.
// It fires when the write is attempted, not when it is confirmed.
type Stats interface {
	IndexedDoc(index string)
}

type nopProgress struct{}

func (nopProgress) AddToComplete(int) {}

type nopStats struct{}

func (nopStats) IndexedDoc(string) {}
