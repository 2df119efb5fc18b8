// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/rs/xid"
	"github.com/stretchr/testify/require"

	"github.com/elastic/esarchiver/internal/pkg/testing/esutil"
)

type subT struct {
	SubString string `json:"substring"`
}

type testT struct {
	IntVal  int    `json:"intval"`
	ObjVal  subT   `json:"objval"`
	BoolVal bool   `json:"boolval"`
	KWVal   string `json:"kwval"`
	DateVal string `json:"dateval"`
}

func NewRandomSample() testT {
	return testT{
		IntVal:  int(rand.Int31()),
		ObjVal:  subT{SubString: randomdata.SillyName()},
		BoolVal: rand.Intn(2) == 1,
		KWVal:   randomdata.SillyName(),
		DateVal: time.Now().Format(time.RFC3339),
	}
}

func (ts testT) marshal(t testing.TB) []byte {
	data, err := json.Marshal(&ts)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func randomRecords(t testing.TB, index string, n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{
			Index:  index,
			ID:     xid.New().String(),
			Source: NewRandomSample().marshal(t),
		}
	}
	return recs
}

type mockProgress struct {
	mut      sync.Mutex
	complete int
	calls    []int
}

func (p *mockProgress) AddToComplete(n int) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.complete += n
	p.calls = append(p.calls, n)
}

func (p *mockProgress) Complete() int {
	p.mut.Lock()
	defer p.mut.Unlock()
	return p.complete
}

type mockStats struct {
	mut     sync.Mutex
	touched []string
}

func (s *mockStats) IndexedDoc(index string) {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.touched = append(s.touched, index)
}

func (s *mockStats) Touched() []string {
	s.mut.Lock()
	defer s.mut.Unlock()
	return append([]string(nil), s.touched...)
}

// bulkFrame is one action descriptor/payload pair parsed from a request body.
type bulkFrame struct {
	Action string
	Index  string
	ID     string
	Source json.RawMessage
}

// parseBulkBody splits an ndjson bulk body into its frames.
func parseBulkBody(t testing.TB, body []byte) []bulkFrame {
	t.Helper()

	lines := bytes.Split(bytes.TrimRight(body, "\n"), []byte("\n"))
	require.Equal(t, 0, len(lines)%2, "bulk body must hold descriptor/payload pairs")

	frames := make([]bulkFrame, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		var meta map[string]struct {
			Index string `json:"_index"`
			ID    string `json:"_id"`
		}
		require.NoError(t, json.Unmarshal(lines[i], &meta))
		require.Len(t, meta, 1)
		require.True(t, json.Valid(lines[i+1]))

		for action, m := range meta {
			frames = append(frames, bulkFrame{
				Action: action,
				Index:  m.Index,
				ID:     m.ID,
				Source: lines[i+1],
			})
		}
	}
	return frames
}

// bulkResponder answers bulk requests with one item per frame. Frames whose
// id is in failIDs get a version conflict.
func bulkResponder(t testing.TB, failIDs ...string) func(req *http.Request, body []byte) (*http.Response, error) {
	fail := make(map[string]bool, len(failIDs))
	for _, id := range failIDs {
		fail[id] = true
	}

	return func(req *http.Request, body []byte) (*http.Response, error) {
		frames := parseBulkBody(t, body)

		var out bytes.Buffer
		out.WriteString(`{"took":3,"items":[`)
		hasErrors := false
		for i, f := range frames {
			if i > 0 {
				out.WriteByte(',')
			}
			if fail[f.ID] {
				hasErrors = true
				fmt.Fprintf(&out, `{%q:{"_index":%q,"_id":%q,"status":409,"error":{"type":"version_conflict_engine_exception","reason":"[%s]: version conflict, document already exists"}}}`,
					f.Action, f.Index, f.ID, f.ID)
				continue
			}
			fmt.Fprintf(&out, `{%q:{"_index":%q,"_id":%q,"_version":1,"result":"created","status":201}}`,
				f.Action, f.Index, f.ID)
		}
		fmt.Fprintf(&out, `],"errors":%t}`, hasErrors)

		return esutil.SendBytes(http.StatusOK, out.Bytes()), nil
	}
}
