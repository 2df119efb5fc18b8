// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"bytes"
	"encoding/json"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"

	"github.com/elastic/esarchiver/internal/pkg/es"
)

var (
	_ easyjson.Unmarshaler = (*BulkResponse)(nil)
	_ easyjson.Unmarshaler = (*BulkResponseItem)(nil)
)

// BulkResponse is the decoded response of a bulk call.
type BulkResponse struct {
	Took      int                `json:"took"`
	HasErrors bool               `json:"errors"`
	Items     []BulkResponseItem `json:"items,omitempty"`
}

// BulkResponseItem is one entry of the items array, {"<action>": {...}}.
// Fields we don't use are not decoded.
type BulkResponseItem struct {
	Action     string
	Index      string
	DocumentID string
	Status     int
	Error      json.RawMessage
}

// Err translates the item's status and error object into a go error.
func (i *BulkResponseItem) Err() error {
	if i.Status >= 200 && i.Status < 300 {
		return nil
	}
	return es.TranslateError(i.Status, i.Error)
}

// ErrBulkFailed is returned when the cluster reported per-document errors.
// The whole call is considered failed; Body carries the full response.
type ErrBulkFailed struct {
	Body   []byte
	Failed int
	First  error
}

func (e *ErrBulkFailed) Error() string {
	var b bytes.Buffer
	b.WriteString("Failed to index all documents: ")
	if err := json.Indent(&b, e.Body, "", "  "); err != nil {
		b.Write(e.Body)
	}
	return b.String()
}

// Unwrap exposes the first per-document error.
func (e *ErrBulkFailed) Unwrap() error {
	return e.First
}

func (r *BulkResponse) failure(body []byte) *ErrBulkFailed {
	failed := &ErrBulkFailed{Body: body}
	for i := range r.Items {
		if err := r.Items[i].Err(); err != nil {
			if failed.First == nil {
				failed.First = err
			}
			failed.Failed++
		}
	}
	return failed
}

func (r *BulkResponse) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	r.UnmarshalEasyJSON(&l)
	return l.Error()
}

func (r *BulkResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "took":
			r.Took = in.Int()
		case "errors":
			r.HasErrors = in.Bool()
		case "items":
			in.Delim('[')
			if r.Items == nil {
				if !in.IsDelim(']') {
					r.Items = make([]BulkResponseItem, 0, 8)
				} else {
					r.Items = []BulkResponseItem{}
				}
			} else {
				r.Items = r.Items[:0]
			}
			for !in.IsDelim(']') {
				var item BulkResponseItem
				item.UnmarshalEasyJSON(in)
				r.Items = append(r.Items, item)
				in.WantComma()
			}
			in.Delim(']')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (i *BulkResponseItem) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	i.UnmarshalEasyJSON(&l)
	return l.Error()
}

func (i *BulkResponseItem) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		i.Action = in.String()
		in.WantColon()
		i.unmarshalResult(in)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (i *BulkResponseItem) unmarshalResult(in *jlexer.Lexer) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "_index":
			i.Index = in.String()
		case "_id":
			i.DocumentID = in.String()
		case "status":
			i.Status = in.Int()
		case "error":
			i.Error = append(json.RawMessage(nil), in.Raw()...)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
