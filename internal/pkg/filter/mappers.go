// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned by a mapper that recognizes a filter shape whose
// contents are invalid.
var ErrMalformed = errors.New("malformed filter")

const (
	TypeMatchAll       = "match_all"
	TypePhrase         = "phrase"
	TypePhrases        = "phrases"
	TypeRange          = "range"
	TypeExists         = "exists"
	TypeMissing        = "missing"
	TypeQueryString    = "query_string"
	TypeGeoBoundingBox = "geo_bounding_box"
	TypeGeoPolygon     = "geo_polygon"
	TypeCustom         = "custom"
)

var rangeKeys = []string{"gte", "gt", "lte", "lt"}

// MapMatchAll maps {"match_all": {}}.
func MapMatchAll(f *Filter) (Result, error) {
	if !f.Exists("match_all") {
		return NotApplicable(), nil
	}

	value := f.Meta.FormattedValue
	if value == "" {
		value = "all"
	}
	return Matched(Mapping{
		Type:  TypeMatchAll,
		Key:   f.Meta.Field,
		Value: constValue(value),
	}), nil
}

// MapPhrase maps match_phrase queries, match queries of type phrase and
// scripted phrase filters.
func MapPhrase(f *Filter) (Result, error) {
	if v := f.Search("script", "script", "params", "value"); v != nil && v.Data() != nil {
		value := formatValue(v.Data())
		return Matched(Mapping{
			Type:   TypePhrase,
			Key:    f.Meta.Field,
			Value:  constValue(value),
			Params: map[string]interface{}{"query": v.Data()},
		}), nil
	}

	var clause string
	switch {
	case f.Exists("query", "match_phrase"):
		clause = "match_phrase"
	case f.Exists("query", "match"):
		clause = "match"
	default:
		return NotApplicable(), nil
	}

	keys := f.Keys("query", clause)
	if len(keys) == 0 {
		return NotApplicable(), nil
	}
	key := keys[0]

	query := f.Search("query", clause, key).Data()
	if params, ok := query.(map[string]interface{}); ok {
		if clause == "match" && params["type"] != TypePhrase {
			return NotApplicable(), nil
		}
		query = params["query"]
	} else if clause == "match" {
		return NotApplicable(), nil
	}

	value := formatValue(query)
	return Matched(Mapping{
		Type:   TypePhrase,
		Key:    key,
		Value:  constValue(value),
		Params: map[string]interface{}{"query": query},
	}), nil
}

// MapPhrases maps filters whose meta declares a list of phrases.
func MapPhrases(f *Filter) (Result, error) {
	if f.Meta.Type != TypePhrases {
		return NotApplicable(), nil
	}

	params, ok := f.Meta.Params.([]interface{})
	if !ok {
		return NotApplicable(), fmt.Errorf("%w: phrases params must be a list", ErrMalformed)
	}

	value := joinValues(params)
	return Matched(Mapping{
		Type:   TypePhrases,
		Key:    f.Meta.Key,
		Value:  constValue(value),
		Params: params,
	}), nil
}

// MapRange maps range filters and scripted range filters. The value reads
// "<left> to <right>", open ends rendered as -Infinity and Infinity.
func MapRange(f *Filter) (Result, error) {
	var (
		key    string
		params map[string]interface{}
	)

	switch {
	case f.Exists("range"):
		keys := f.Keys("range")
		if len(keys) == 0 {
			return NotApplicable(), nil
		}
		key = keys[0]
		p, ok := f.Search("range", key).Data().(map[string]interface{})
		if !ok {
			return NotApplicable(), fmt.Errorf("%w: range.%s must be an object", ErrMalformed, key)
		}
		params = p
	case hasRangeKeys(f):
		key = f.Meta.Field
		params, _ = f.Search("script", "script", "params").Data().(map[string]interface{})
	default:
		return NotApplicable(), nil
	}

	left := "-Infinity"
	if v, ok := firstPresent(params, "gte", "gt"); ok {
		left = formatValue(v)
	}
	right := "Infinity"
	if v, ok := firstPresent(params, "lte", "lt"); ok {
		right = formatValue(v)
	}

	value := left + " to " + right
	return Matched(Mapping{
		Type:   TypeRange,
		Key:    key,
		Value:  constValue(value),
		Params: params,
	}), nil
}

func hasRangeKeys(f *Filter) bool {
	params, ok := f.Search("script", "script", "params").Data().(map[string]interface{})
	if !ok {
		return false
	}
	for _, k := range rangeKeys {
		if _, ok := params[k]; ok {
			return true
		}
	}
	return false
}

func firstPresent(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// MapExists maps {"exists": {"field": "<key>"}}.
func MapExists(f *Filter) (Result, error) {
	return mapFieldPresence(f, TypeExists)
}

// MapMissing maps the legacy {"missing": {"field": "<key>"}}.
func MapMissing(f *Filter) (Result, error) {
	return mapFieldPresence(f, TypeMissing)
}

func mapFieldPresence(f *Filter, typ string) (Result, error) {
	if !f.Exists(typ) {
		return NotApplicable(), nil
	}

	field, ok := f.Search(typ, "field").Data().(string)
	if !ok {
		return NotApplicable(), fmt.Errorf("%w: %s.field must be a string", ErrMalformed, typ)
	}

	return Matched(Mapping{
		Type:  typ,
		Key:   field,
		Value: constValue(typ),
	}), nil
}

// MapQueryString maps {"query": {"query_string": {"query": "..."}}}.
func MapQueryString(f *Filter) (Result, error) {
	if !f.Exists("query", "query_string") {
		return NotApplicable(), nil
	}

	value := formatValue(f.Search("query", "query_string", "query").Data())
	return Matched(Mapping{
		Type:  TypeQueryString,
		Key:   "query",
		Value: constValue(value),
	}), nil
}

// MapGeoBoundingBox maps geo_bounding_box filters to "<top_left> to <bottom_right>".
func MapGeoBoundingBox(f *Filter) (Result, error) {
	key, params, ok, err := geoField(f, TypeGeoBoundingBox)
	if !ok || err != nil {
		return NotApplicable(), err
	}

	value := jsonValue(params["top_left"]) + " to " + jsonValue(params["bottom_right"])
	return Matched(Mapping{
		Type:   TypeGeoBoundingBox,
		Key:    key,
		Value:  constValue(value),
		Params: params,
	}), nil
}

// MapGeoPolygon maps geo_polygon filters to their comma separated points.
func MapGeoPolygon(f *Filter) (Result, error) {
	key, params, ok, err := geoField(f, TypeGeoPolygon)
	if !ok || err != nil {
		return NotApplicable(), err
	}

	points, _ := params["points"].([]interface{})
	value := joinJSON(points)
	return Matched(Mapping{
		Type:   TypeGeoPolygon,
		Key:    key,
		Value:  constValue(value),
		Params: params,
	}), nil
}

func geoField(f *Filter, typ string) (string, map[string]interface{}, bool, error) {
	if !f.Exists(typ) {
		return "", nil, false, nil
	}

	for _, k := range f.Keys(typ) {
		if k == "ignore_unmapped" {
			continue
		}
		params, ok := f.Search(typ, k).Data().(map[string]interface{})
		if !ok {
			return "", nil, false, fmt.Errorf("%w: %s.%s must be an object", ErrMalformed, typ, k)
		}
		return k, params, true, nil
	}
	return "", nil, false, nil
}

// MapDefault maps any filter by its first non meta key, rendering the clause as JSON.
func MapDefault(f *Filter) (Result, error) {
	for _, k := range f.Keys() {
		if strings.HasPrefix(k, "$") || strings.Contains(k, kMeta) {
			continue
		}

		value := "{}"
		if c := f.Search(k); c != nil && c.Data() != nil {
			value = jsonValue(c.Data())
		}
		return Matched(Mapping{
			Type:  TypeCustom,
			Key:   k,
			Value: constValue(value),
		}), nil
	}
	return NotApplicable(), nil
}
