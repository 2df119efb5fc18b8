// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

import (
	"github.com/elastic/esarchiver/internal/pkg/dsl"
)

func buildFilter(index string, build func(*dsl.Node)) (*Filter, error) {
	root := dsl.NewRoot()
	build(root)
	root.Param(kMeta, Meta{Index: index})
	return NewFilter(root)
}

// BuildMatchAllFilter builds a filter matching every document.
func BuildMatchAllFilter(index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) { n.MatchAll() })
}

func BuildExistsFilter(field, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) { n.Exists(field) })
}

func BuildMissingFilter(field, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) { n.Missing(field) })
}

// BuildPhraseFilter builds a match_phrase query filter.
func BuildPhraseFilter(field string, value interface{}, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) {
		n.Query().MatchPhrase(field, value)
	})
}

// BuildPhrasesFilter builds a bool should of phrases, one of which must match.
func BuildPhrasesFilter(field string, values []interface{}, index string) (*Filter, error) {
	f, err := buildFilter(index, func(n *dsl.Node) {
		b := n.Query().Bool()
		should := b.Should()
		for _, v := range values {
			should.MatchPhrase(field, v)
		}
		b.MinimumShouldMatch(1)
	})
	if err != nil {
		return nil, err
	}
	f.Meta.Type = TypePhrases
	f.Meta.Key = field
	f.Meta.Params = values
	return f, nil
}

// RangeParams carries the bounds of a range filter. Nil bounds are omitted.
type RangeParams struct {
	GT, GTE, LT, LTE interface{}
}

func (p RangeParams) opts() []dsl.RangeOpt {
	var opts []dsl.RangeOpt
	if p.GT != nil {
		opts = append(opts, dsl.WithRangeGT(p.GT))
	}
	if p.GTE != nil {
		opts = append(opts, dsl.WithRangeGTE(p.GTE))
	}
	if p.LT != nil {
		opts = append(opts, dsl.WithRangeLT(p.LT))
	}
	if p.LTE != nil {
		opts = append(opts, dsl.WithRangeLTE(p.LTE))
	}
	return opts
}

func BuildRangeFilter(field string, params RangeParams, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) {
		n.Range(field, params.opts()...)
	})
}

func BuildQueryStringFilter(query, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) {
		n.Query().QueryString(query)
	})
}

func BuildGeoBoundingBoxFilter(field string, topLeft, bottomRight dsl.GeoPoint, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) {
		n.GeoBoundingBox(field, topLeft, bottomRight)
	})
}

func BuildGeoPolygonFilter(field string, points []dsl.GeoPoint, index string) (*Filter, error) {
	return buildFilter(index, func(n *dsl.Node) {
		n.GeoPolygon(field, points...)
	})
}
