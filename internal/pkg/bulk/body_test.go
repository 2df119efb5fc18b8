// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/esarchiver/internal/pkg/es"
)

func TestWriteBulkMeta(t *testing.T) {
	tests := []struct {
		action Action
		index  string
		id     string
		want   string
	}{
		{ActionIndex, "a", "1", `{"index":{"_index":"a","_id":"1"}}` + "\n"},
		{ActionCreate, "logs-2024.01.01", "abc", `{"create":{"_index":"logs-2024.01.01","_id":"abc"}}` + "\n"},
		{ActionIndex, "a", "", `{"index":{"_index":"a"}}` + "\n"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		require.NoError(t, writeBulkMeta(&buf, tc.action, tc.index, tc.id))
		assert.Equal(t, tc.want, buf.String())
		assert.Equal(t, len(tc.want), calcBulkSz(tc.action, tc.index, tc.id, []byte("{}"))-3)
	}
}

func TestWriteBulkMetaEscapes(t *testing.T) {
	tests := []struct {
		name  string
		index string
		id    string
	}{
		{"quote", "a", `say "hi"`},
		{"backslash", "a", `C:\path`},
		{"newline", "a", "x\ny"},
		{"tab", "a", "x\ty"},
		{"control", "a", "x\x01y"},
		{"quoted index", `a"b`, "1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := Record{Index: tc.index, ID: tc.id, Source: json.RawMessage(`{"a":1}`)}
			require.NoError(t, encodeRecords(&buf, ActionIndex, nopStats{}, []Record{rec}))

			lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
			require.Len(t, lines, 2)
			for _, line := range lines {
				assert.True(t, json.Valid(line), "%q", line)
			}

			frames := parseBulkBody(t, buf.Bytes())
			require.Len(t, frames, 1)
			assert.Equal(t, tc.index, frames[0].Index)
			assert.Equal(t, tc.id, frames[0].ID)
		})
	}
}

func TestEncodeRecordsLogsFailedRecord(t *testing.T) {
	var out bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&out)
	t.Cleanup(func() { log.Logger = prev })

	recs := []Record{
		{Index: "a", ID: "ok", Source: json.RawMessage(`{}`)},
		{Index: "a", ID: "broken", Source: json.RawMessage(`{"x":`)},
	}

	var buf bytes.Buffer
	err := encodeRecords(&buf, ActionIndex, nopStats{}, recs)
	require.ErrorIs(t, err, es.ErrInvalidBody)

	var entry struct {
		Record struct {
			Index    string `json:"index"`
			ID       string `json:"id"`
			SourceSz int    `json:"sourceSz"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "a", entry.Record.Index)
	assert.Equal(t, "broken", entry.Record.ID)
	assert.Equal(t, 5, entry.Record.SourceSz)
}

func TestWriteBulkBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "{}\n"},
		{"single line", `{"a":1}`, `{"a":1}` + "\n"},
		{"multi line", "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}", `{"a":1,"b":[1,2]}` + "\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeBulkBody(&buf, []byte(tc.body)))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestCalcBulkSz(t *testing.T) {
	for _, rec := range randomRecords(t, "some-index", 20) {
		var buf bytes.Buffer
		require.NoError(t, encodeRecords(&buf, ActionCreate, nopStats{}, []Record{rec}))
		assert.Equal(t, buf.Len(), calcBulkSz(ActionCreate, rec.Index, rec.ID, rec.Source))
	}
}

func BenchmarkEncodeRecords(b *testing.B) {
	recs := randomRecords(b, "bench", 300)

	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := encodeRecords(&buf, ActionIndex, nopStats{}, recs); err != nil {
			b.Fatal(err)
		}
	}
}
