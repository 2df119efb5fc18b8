// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

// DefaultMappers is the order MapFilter tries mappers in. MapDefault matches
// almost anything so it comes last.
var DefaultMappers = []Mapper{
	MapMatchAll,
	MapPhrase,
	MapPhrases,
	MapRange,
	MapExists,
	MapMissing,
	MapQueryString,
	MapGeoBoundingBox,
	MapGeoPolygon,
	MapDefault,
}

var defaultChain = GenerateMappingChain(DefaultMappers, nil)

// MapFilter returns a copy of f with key, value, params and type filled in
// its meta block. f itself is not modified.
func MapFilter(f *Filter) (*Filter, error) {
	res, err := defaultChain(f)
	if err != nil {
		return nil, err
	}
	m, _ := res.Mapping()

	out := f.Clone()
	out.Meta.Type = m.Type
	out.Meta.Key = m.Key
	out.Meta.Value = m.Display()
	out.Meta.Params = m.Params
	return out, nil
}
