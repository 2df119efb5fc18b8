// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package bulk

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/elastic/esarchiver/internal/pkg/config"
)

const (
	defaultBufferSz       = 300
	defaultRequestTimeout = 2 * time.Minute
)

//-----
// Sink options

type sinkOptT struct {
	action         Action
	bufferSz       int
	requestTimeout time.Duration
	refresh        bool
}

type SinkOpt func(*sinkOptT)

// Write with the create action, failing documents that already exist.
func WithCreate() SinkOpt {
	return func(opt *sinkOptT) {
		opt.action = ActionCreate
	}
}

// Number of records buffered ahead of the consumer before Write blocks
func WithBufferSize(sz int) SinkOpt {
	return func(opt *sinkOptT) {
		if sz > 0 {
			opt.bufferSz = sz
		}
	}
}

// Deadline applied to each bulk call
func WithRequestTimeout(d time.Duration) SinkOpt {
	return func(opt *sinkOptT) {
		if d > 0 {
			opt.requestTimeout = d
		}
	}
}

// Ask the cluster to refresh the affected shards after each bulk call
func WithRefresh() SinkOpt {
	return func(opt *sinkOptT) {
		opt.refresh = true
	}
}

func parseSinkOpts(opts ...SinkOpt) sinkOptT {
	sopt := sinkOptT{
		action:         ActionIndex,
		bufferSz:       defaultBufferSz,
		requestTimeout: defaultRequestTimeout,
	}

	for _, f := range opts {
		f(&sopt)
	}

	return sopt
}

func (o *sinkOptT) MarshalZerologObject(e *zerolog.Event) {
	e.Str("action", o.action.String())
	e.Int("bufferSz", o.bufferSz)
	e.Dur("requestTimeout", o.requestTimeout)
	e.Bool("refresh", o.refresh)
}

// Bridge to configuration subsystem
func SinkOptsFromCfg(cfg *config.Config) []SinkOpt {
	loadCfg := cfg.Load

	opts := []SinkOpt{
		WithBufferSize(loadCfg.BufferSize),
		WithRequestTimeout(loadCfg.RequestTimeout),
	}
	if loadCfg.UseCreate {
		opts = append(opts, WithCreate())
	}
	if loadCfg.Refresh {
		opts = append(opts, WithRefresh())
	}
	return opts
}
