// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

import (
	"bytes"
	"encoding/json"
)

// keysAt walks raw to the object at path and returns its keys in document
// order. A missing path or a non-object value yields nil.
func keysAt(raw []byte, path ...string) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	for _, p := range path {
		if !seekKey(dec, p) {
			return nil
		}
	}
	return objectKeys(dec)
}

// seekKey consumes the opening of an object and every member up to key,
// leaving the decoder positioned at key's value.
func seekKey(dec *json.Decoder, key string) bool {
	if !openObject(dec) {
		return false
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		if k, _ := tok.(string); k == key {
			return true
		}
		if skipValue(dec) != nil {
			return false
		}
	}
	return false
}

func objectKeys(dec *json.Decoder) []string {
	if !openObject(dec) {
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		k, _ := tok.(string)
		keys = append(keys, k)
		if skipValue(dec) != nil {
			return nil
		}
	}
	return keys
}

func openObject(dec *json.Decoder) bool {
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	d, ok := tok.(json.Delim)
	return ok && d == '{'
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
