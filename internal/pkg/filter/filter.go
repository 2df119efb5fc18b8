// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package filter interprets saved query filters into display ready key/value
// pairs through an ordered chain of mappers.
package filter

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/Jeffail/gabs/v2"
)

const kMeta = "meta"

var ErrNotObject = errors.New("filter is not a JSON object")

// Meta is the descriptive block carried by every filter.
type Meta struct {
	Index    string      `json:"index,omitempty"`
	Alias    string      `json:"alias,omitempty"`
	Negate   bool        `json:"negate"`
	Disabled bool        `json:"disabled"`
	Key      string      `json:"key,omitempty"`
	Value    string      `json:"value,omitempty"`
	Params   interface{} `json:"params,omitempty"`
	Type     string      `json:"type,omitempty"`
	Field    string      `json:"field,omitempty"`

	FormattedValue string `json:"formattedValue,omitempty"`
}

// Filter is a parsed filter: its meta block plus the predicate body.
// The raw document is retained so object keys can be visited in document order.
type Filter struct {
	Meta Meta

	raw  []byte
	body *gabs.Container
}

// ParseFilter parses a JSON filter object.
func ParseFilter(data []byte) (*Filter, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	body, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, err
	}
	if _, ok := body.Data().(map[string]interface{}); !ok {
		return nil, ErrNotObject
	}

	f := &Filter{
		raw:  append([]byte(nil), data...),
		body: body,
	}

	if meta := body.Search(kMeta); meta.Data() != nil {
		mdec := json.NewDecoder(bytes.NewReader(meta.Bytes()))
		mdec.UseNumber()
		if err := mdec.Decode(&f.Meta); err != nil {
			return nil, err
		}
	}
	if err := body.Delete(kMeta); err != nil && !errors.Is(err, gabs.ErrNotFound) {
		return nil, err
	}

	return f, nil
}

// NewFilter builds a filter from a Go value that marshals to a JSON object.
func NewFilter(v interface{}) (*Filter, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ParseFilter(data)
}

// Search returns the body node at the given path, nil when absent.
func (f *Filter) Search(path ...string) *gabs.Container {
	if !f.body.Exists(path...) {
		return nil
	}
	return f.body.Search(path...)
}

// Exists reports whether the body has a non-null value at path.
func (f *Filter) Exists(path ...string) bool {
	c := f.Search(path...)
	return c != nil && c.Data() != nil
}

// Keys returns the keys of the body object at path in document order.
func (f *Filter) Keys(path ...string) []string {
	return keysAt(f.raw, path...)
}

// Clone returns a deep copy of f.
func (f *Filter) Clone() *Filter {
	cp, err := ParseFilter(f.raw)
	if err != nil {
		// raw was accepted once already
		panic(err)
	}
	cp.Meta = f.Meta
	return cp
}

// MarshalJSON renders the body with the current meta block.
func (f *Filter) MarshalJSON() ([]byte, error) {
	out := gabs.New()
	for k, v := range f.body.ChildrenMap() {
		if _, err := out.Set(v.Data(), k); err != nil {
			return nil, err
		}
	}
	if _, err := out.Set(f.Meta, kMeta); err != nil {
		return nil, err
	}
	return out.MarshalJSON()
}

func (f *Filter) String() string {
	data, err := f.MarshalJSON()
	if err != nil {
		return f.body.String()
	}
	return string(data)
}
