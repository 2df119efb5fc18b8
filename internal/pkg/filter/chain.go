// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

import (
	"errors"
)

var ErrNoMappings = errors.New("No mappings have been found for filter.") //nolint:stylecheck // user visible message

func noMappings(*Filter) (Result, error) {
	return NotApplicable(), ErrNoMappings
}

// GenerateMappingChain returns a mapper that tries mappers in order and returns
// the first match. When none match, fallback decides; a nil fallback fails with
// ErrNoMappings, as does a fallback that is itself not applicable.
//
// An error from any mapper is returned at once and the rest are skipped.
func GenerateMappingChain(mappers []Mapper, fallback Mapper) Mapper {
	chain := make([]Mapper, len(mappers))
	copy(chain, mappers)

	if fallback == nil {
		fallback = noMappings
	}

	return func(f *Filter) (Result, error) {
		for _, m := range chain {
			res, err := m(f)
			if err != nil {
				return NotApplicable(), err
			}
			if res.IsMatched() {
				return res, nil
			}
		}

		res, err := fallback(f)
		if err != nil {
			return NotApplicable(), err
		}
		if !res.IsMatched() {
			return NotApplicable(), ErrNoMappings
		}
		return res, nil
	}
}
