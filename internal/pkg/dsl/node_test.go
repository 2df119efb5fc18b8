// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package dsl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, n *Node) string {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	return string(data)
}

func TestBool(t *testing.T) {
	root := NewRoot()
	b := root.Query().Bool()
	must := b.Must()
	must.Term("type", "doc", nil)
	must.Range("bytes", WithRangeGT(1024), WithRangeLTE(2048))
	b.MustNot().Exists("deleted")

	assert.JSONEq(t, `{"query":{"bool":{
		"must":[{"term":{"type":"doc"}},{"range":{"bytes":{"gt":1024,"lte":2048}}}],
		"must_not":[{"exists":{"field":"deleted"}}]
	}}}`, render(t, root))
}

func TestShould(t *testing.T) {
	root := NewRoot()
	b := root.Query().Bool()
	should := b.Should()
	should.MatchPhrase("machine.os", "osx")
	should.MatchPhrase("machine.os", "win 8")
	b.MinimumShouldMatch(1)

	assert.JSONEq(t, `{"query":{"bool":{
		"should":[{"match_phrase":{"machine.os":"osx"}},{"match_phrase":{"machine.os":"win 8"}}],
		"minimum_should_match":1
	}}}`, render(t, root))
}

func TestLeaves(t *testing.T) {
	tests := []struct {
		name  string
		build func(*Node)
		want  string
	}{
		{"match all", func(n *Node) { n.MatchAll() }, `{"match_all":{}}`},
		{"exists", func(n *Node) { n.Exists("a") }, `{"exists":{"field":"a"}}`},
		{"missing", func(n *Node) { n.Missing("a") }, `{"missing":{"field":"a"}}`},
		{"match", func(n *Node) { n.Match("a", "b", "phrase") }, `{"match":{"a":{"query":"b","type":"phrase"}}}`},
		{"match default type", func(n *Node) { n.Match("a", "b", "") }, `{"match":{"a":{"query":"b"}}}`},
		{"query string", func(n *Node) { n.QueryString("a:b") }, `{"query_string":{"query":"a:b"}}`},
		{"terms boost", func(n *Node) {
			boost := 2.0
			n.Terms("a", []string{"x", "y"}, &boost)
		}, `{"terms":{"a":["x","y"],"boost":2}}`},
		{"term boost", func(n *Node) {
			boost := 1.5
			n.Term("a", "x", &boost)
		}, `{"term":{"a":{"value":"x","boost":1.5}}}`},
		{"geo box", func(n *Node) {
			n.GeoBoundingBox("pt", GeoPoint{Lat: 5, Lon: 10}, GeoPoint{Lat: 15, Lon: 20})
		}, `{"geo_bounding_box":{"pt":{"top_left":{"lat":5,"lon":10},"bottom_right":{"lat":15,"lon":20}}}}`},
		{"geo polygon", func(n *Node) {
			n.GeoPolygon("pt", GeoPoint{Lat: 1, Lon: 2}, GeoPoint{Lat: 3, Lon: 4})
		}, `{"geo_polygon":{"pt":{"points":[{"lat":1,"lon":2},{"lat":3,"lon":4}]}}}`},
		{"script params", func(n *Node) {
			n.ScriptParams(map[string]interface{}{"value": 42})
		}, `{"script":{"script":{"params":{"value":42}}}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := NewRoot()
			tc.build(root)
			assert.JSONEq(t, tc.want, render(t, root))
		})
	}
}

func TestEmptyRoot(t *testing.T) {
	assert.Equal(t, "null", render(t, NewRoot()))
}

func TestAddChildToLeafPanics(t *testing.T) {
	root := NewRoot()
	root.Param("size", 1)
	leaf := root.findOrCreateChildByName("size")

	assert.Panics(t, func() { leaf.Exists("a") })
}
