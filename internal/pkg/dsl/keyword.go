// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package dsl

const (
	kKeywordBool           = "bool"
	kKeywordBoost          = "boost"
	kKeywordBottomRight    = "bottom_right"
	kKeywordExists         = "exists"
	kKeywordField          = "field"
	kKeywordFilter         = "filter"
	kKeywordGeoBoundingBox = "geo_bounding_box"
	kKeywordGeoPolygon     = "geo_polygon"
	kKeywordGreaterThan    = "gt"
	kKeywordGreaterThanEq  = "gte"
	kKeywordLessThan       = "lt"
	kKeywordLessThanEq     = "lte"
	kKeywordMatch          = "match"
	kKeywordMatchAll       = "match_all"
	kKeywordMatchPhrase    = "match_phrase"
	kKeywordMinShouldMatch = "minimum_should_match"
	kKeywordMissing        = "missing"
	kKeywordMust           = "must"
	kKeywordMustNot        = "must_not"
	kKeywordNULL           = "null"
	kKeywordParams         = "params"
	kKeywordPoints         = "points"
	kKeywordQuery          = "query"
	kKeywordQueryString    = "query_string"
	kKeywordRange          = "range"
	kKeywordScript         = "script"
	kKeywordShould         = "should"
	kKeywordTerm           = "term"
	kKeywordTerms          = "terms"
	kKeywordTopLeft        = "top_left"
	kKeywordType           = "type"
)
