// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/mailru/easyjson/jwriter"
	"github.com/rs/zerolog/log"

	"github.com/elastic/esarchiver/internal/pkg/es"
)

var ErrNoIndex = errors.New("record has no destination index")

func validateBody(body []byte) error {
	if !json.Valid(body) {
		return es.ErrInvalidBody
	}

	return nil
}

// writeBulkMeta writes the action descriptor line, {"<action>":{"_index":"<index>","_id":"<id>"}}.
// Index and id are written as JSON strings, escaped as needed.
func writeBulkMeta(buf *bytes.Buffer, action Action, index, id string) error {
	if index == "" {
		return ErrNoIndex
	}

	var w jwriter.Writer
	w.RawString(`{"`)
	w.RawString(action.String())
	w.RawString(`":{"_index":`)
	w.String(index)
	if id != "" {
		w.RawString(`,"_id":`)
		w.String(id)
	}
	w.RawString("}}\n")

	if w.Error != nil {
		return w.Error
	}
	_, err := w.DumpTo(buf)
	return err
}

func writeBulkBody(buf *bytes.Buffer, body []byte) error {
	if len(body) == 0 {
		// Weird to index or create empty, but will allow
		buf.WriteString("{}\n")
		return nil
	}

	if err := validateBody(body); err != nil {
		return err
	}

	// The bulk API is line delimited; compact multi-line sources.
	if bytes.IndexByte(body, '\n') != -1 {
		if err := json.Compact(buf, body); err != nil {
			return err
		}
	} else {
		buf.Write(body)
	}
	buf.WriteByte('\n')
	return nil
}

// calcBulkSz is exact for index and id values that need no escaping.
func calcBulkSz(action Action, idx, id string, body []byte) int {
	const kFraming = 19
	metaSz := kFraming + len(action) + len(idx)

	var idSz int
	if id != "" {
		const kIdFraming = 9
		idSz = kIdFraming + len(id)
	}

	bodySz := 3
	if len(body) != 0 {
		const kBodyFraming = 1
		bodySz = kBodyFraming + len(body)
	}

	return metaSz + idSz + bodySz
}

// encodeRecords serializes records into a bulk request body, preserving order.
// stats is told about each record before it is written.
func encodeRecords(buf *bytes.Buffer, action Action, stats Stats, recs []Record) error {
	sz := 0
	for _, rec := range recs {
		sz += calcBulkSz(action, rec.Index, rec.ID, rec.Source)
	}
	buf.Grow(sz)

	for _, rec := range recs {
		stats.IndexedDoc(rec.Index)

		if err := writeBulkMeta(buf, action, rec.Index, rec.ID); err != nil {
			log.Error().Err(err).Str("mod", kModBulk).Object("record", rec).Msg("Fail encode bulk meta")
			return err
		}
		if err := writeBulkBody(buf, rec.Source); err != nil {
			log.Error().Err(err).Str("mod", kModBulk).Object("record", rec).Msg("Fail encode bulk source")
			return err
		}
	}
	return nil
}
