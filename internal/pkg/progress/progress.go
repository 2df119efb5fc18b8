// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package progress tracks how many documents of a job have been committed.
package progress

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
	xr "golang.org/x/time/rate"
)

const defaultInterval = 5 * time.Second

// Progress is safe for concurrent use.
type Progress struct {
	total    atomic.Int64
	complete atomic.Int64
}

func New() *Progress {
	return &Progress{}
}

func (p *Progress) AddToTotal(n int) {
	p.total.Add(int64(n))
}

func (p *Progress) AddToComplete(n int) {
	p.complete.Add(int64(n))
}

func (p *Progress) Total() int64 {
	return p.total.Load()
}

func (p *Progress) Complete() int64 {
	return p.complete.Load()
}

// Percent is complete over total, rounded to the nearest integer. Zero when
// nothing is known yet.
func (p *Progress) Percent() int {
	total := p.total.Load()
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.complete.Load()) / float64(total) * 100))
}

func (p *Progress) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("complete", p.Complete())
	e.Int64("total", p.Total())
	e.Int("percent", p.Percent())
}

// Run logs progress at most once per interval until ctx is done, skipping
// intervals in which nothing changed. A final entry is logged on return.
func (p *Progress) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}

	lim := xr.NewLimiter(xr.Every(interval), 1)
	// The first token is spent so the first entry comes after one interval.
	lim.Allow()

	var last int64 = -1
	for {
		if err := lim.Wait(ctx); err != nil {
			p.log()
			return
		}

		if c := p.Complete(); c != last {
			last = c
			p.log()
		}
	}
}

func (p *Progress) log() {
	log.Info().
		EmbedObject(p).
		Msgf("progress: %d/%d (%d%%)", p.Complete(), p.Total(), p.Percent())
}
