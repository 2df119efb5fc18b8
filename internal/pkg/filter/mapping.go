// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package filter

// Mapping is the display ready interpretation of a filter.
type Mapping struct {
	Type   string
	Key    string
	Value  func() string
	Params interface{}
}

// Display renders the mapping value, or "" when there is none.
func (m Mapping) Display() string {
	if m.Value == nil {
		return ""
	}
	return m.Value()
}

// Result is what a mapper returns: either a Mapping or "not applicable".
type Result struct {
	mapping Mapping
	matched bool
}

// Matched wraps m as a successful result.
func Matched(m Mapping) Result {
	return Result{mapping: m, matched: true}
}

// NotApplicable reports that the mapper does not handle the filter.
func NotApplicable() Result {
	return Result{}
}

// Mapping returns the mapping and whether the result matched.
func (r Result) Mapping() (Mapping, bool) {
	return r.mapping, r.matched
}

func (r Result) IsMatched() bool {
	return r.matched
}

// Mapper interprets a filter. A non-nil error is a defect and aborts the chain;
// an inapplicable filter is reported with NotApplicable.
type Mapper func(f *Filter) (Result, error)
