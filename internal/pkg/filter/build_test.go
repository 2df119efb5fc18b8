// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elastic/esarchiver/internal/pkg/dsl"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Filter, error)
		body  string
		typ   string
		key   string
		value string
	}{
		{
			name:  "match all",
			build: func() (*Filter, error) { return BuildMatchAllFilter("idx") },
			body:  `{"match_all":{}}`,
			typ:   TypeMatchAll,
			value: "all",
		},
		{
			name:  "exists",
			build: func() (*Filter, error) { return BuildExistsFilter("_type", "idx") },
			body:  `{"exists":{"field":"_type"}}`,
			typ:   TypeExists,
			key:   "_type",
			value: "exists",
		},
		{
			name:  "missing",
			build: func() (*Filter, error) { return BuildMissingFilter("_type", "idx") },
			body:  `{"missing":{"field":"_type"}}`,
			typ:   TypeMissing,
			key:   "_type",
			value: "missing",
		},
		{
			name:  "phrase",
			build: func() (*Filter, error) { return BuildPhraseFilter("machine.os", "osx", "idx") },
			body:  `{"query":{"match_phrase":{"machine.os":"osx"}}}`,
			typ:   TypePhrase,
			key:   "machine.os",
			value: "osx",
		},
		{
			name: "phrases",
			build: func() (*Filter, error) {
				return BuildPhrasesFilter("machine.os", []interface{}{"osx", "win 8"}, "idx")
			},
			body: `{"query":{"bool":{
				"should":[{"match_phrase":{"machine.os":"osx"}},{"match_phrase":{"machine.os":"win 8"}}],
				"minimum_should_match":1}}}`,
			typ:   TypePhrases,
			key:   "machine.os",
			value: "osx, win 8",
		},
		{
			name: "range",
			build: func() (*Filter, error) {
				return BuildRangeFilter("bytes", RangeParams{GTE: 1024, LT: 2048}, "idx")
			},
			body:  `{"range":{"bytes":{"gte":1024,"lt":2048}}}`,
			typ:   TypeRange,
			key:   "bytes",
			value: "1024 to 2048",
		},
		{
			name: "open range",
			build: func() (*Filter, error) {
				return BuildRangeFilter("bytes", RangeParams{GT: 5}, "idx")
			},
			body:  `{"range":{"bytes":{"gt":5}}}`,
			typ:   TypeRange,
			key:   "bytes",
			value: "5 to Infinity",
		},
		{
			name:  "query string",
			build: func() (*Filter, error) { return BuildQueryStringFilter("host:a*", "idx") },
			body:  `{"query":{"query_string":{"query":"host:a*"}}}`,
			typ:   TypeQueryString,
			key:   "query",
			value: "host:a*",
		},
		{
			name: "geo bounding box",
			build: func() (*Filter, error) {
				return BuildGeoBoundingBoxFilter("point", dsl.GeoPoint{Lat: 5, Lon: 10}, dsl.GeoPoint{Lat: 15, Lon: 20}, "idx")
			},
			body:  `{"geo_bounding_box":{"point":{"top_left":{"lat":5,"lon":10},"bottom_right":{"lat":15,"lon":20}}}}`,
			typ:   TypeGeoBoundingBox,
			key:   "point",
			value: `{"lat":5,"lon":10} to {"lat":15,"lon":20}`,
		},
		{
			name: "geo polygon",
			build: func() (*Filter, error) {
				return BuildGeoPolygonFilter("point", []dsl.GeoPoint{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}, "idx")
			},
			body:  `{"geo_polygon":{"point":{"points":[{"lat":1,"lon":2},{"lat":3,"lon":4}]}}}`,
			typ:   TypeGeoPolygon,
			key:   "point",
			value: `{"lat":1,"lon":2}, {"lat":3,"lon":4}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := tc.build()
			require.NoError(t, err)
			assert.Equal(t, "idx", f.Meta.Index)
			assert.JSONEq(t, tc.body, f.body.String())

			mapped, err := MapFilter(f)
			require.NoError(t, err)
			assert.Equal(t, tc.typ, mapped.Meta.Type)
			assert.Equal(t, tc.key, mapped.Meta.Key)
			assert.Equal(t, tc.value, mapped.Meta.Value)
		})
	}
}

func TestBuildFilterRoundTrip(t *testing.T) {
	f, err := BuildExistsFilter("host", "logs")
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)

	again, err := ParseFilter(data)
	require.NoError(t, err)
	assert.Equal(t, f.Meta, again.Meta)
	assert.JSONEq(t, f.body.String(), again.body.String())
}
