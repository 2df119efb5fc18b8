// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package bulk writes document records to the cluster with the bulk API.
//
// A Sink accepts records from a single producer through a bounded buffer and
// flushes whatever is buffered as one bulk call. It never retries: the first
// failure is terminal and is returned to the producer and to the Run loop.
package bulk

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/mailru/easyjson"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	"github.com/elastic/esarchiver/internal/pkg/es"
)

const kModBulk = "bulk"

var (
	ErrSinkBusy   = errors.New("bulk call already in flight")
	ErrSinkClosed = errors.New("sink closed")

	ErrEmptyResponse = errors.New("bulk response has no body")
)

// Sink batches records into bulk index or create calls.
//
// Write and Close belong to the producer and must not be called concurrently
// with each other. Run is the consumer and must run at most once.
type Sink struct {
	tr       esapi.Transport
	stats    Stats
	progress Progress
	opts     sinkOptT

	ch     chan Record
	closed atomic.Bool
	active *semaphore.Weighted

	done     chan struct{}
	failOnce sync.Once
	err      error
}

// NewSink creates a sink writing through tr. Nil stats or progress are ignored.
func NewSink(tr esapi.Transport, stats Stats, progress Progress, opts ...SinkOpt) *Sink {
	sopts := parseSinkOpts(opts...)

	if stats == nil {
		stats = nopStats{}
	}
	if progress == nil {
		progress = nopProgress{}
	}

	return &Sink{
		tr:       tr,
		stats:    stats,
		progress: progress,
		opts:     sopts,
		ch:       make(chan Record, sopts.bufferSz),
		active:   semaphore.NewWeighted(1),
		done:     make(chan struct{}),
	}
}

// Action returns the bulk action this sink writes.
func (s *Sink) Action() Action {
	return s.opts.action
}

// Err returns the terminal error of the sink, if any.
func (s *Sink) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Sink) fail(err error) error {
	s.failOnce.Do(func() {
		s.err = err
		close(s.done)
	})
	return s.err
}

// Write queues rec for the next bulk call. It blocks while the buffer is full.
func (s *Sink) Write(ctx context.Context, rec Record) error {
	if err := s.Err(); err != nil {
		return err
	}
	if s.closed.Load() {
		return ErrSinkClosed
	}

	select {
	case s.ch <- rec:
		return nil
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close signals that no more records will be written. Run drains the buffer and returns.
func (s *Sink) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

// Run consumes the buffer until Close, ctx cancellation, or the first failed call.
// Each iteration sends everything currently buffered as one bulk call.
func (s *Sink) Run(ctx context.Context) error {
	log.Info().Object("opts", &s.opts).Msg("Run bulk sink with options")

	for {
		if err := s.Err(); err != nil {
			return err
		}

		var first Record
		select {
		case rec, ok := <-s.ch:
			if !ok {
				log.Debug().Str("mod", kModBulk).Msg("Sink drained")
				return nil
			}
			first = rec
		case <-ctx.Done():
			return s.fail(ctx.Err())
		}

		chunk, more := s.drain(first)
		if err := s.IndexDocs(ctx, chunk...); err != nil {
			return err
		}
		if !more {
			log.Debug().Str("mod", kModBulk).Msg("Sink drained")
			return nil
		}
	}
}

// drain collects first plus whatever is already buffered, up to the buffer size.
func (s *Sink) drain(first Record) ([]Record, bool) {
	chunk := make([]Record, 1, s.opts.bufferSz)
	chunk[0] = first

	for len(chunk) < s.opts.bufferSz {
		select {
		case rec, ok := <-s.ch:
			if !ok {
				return chunk, false
			}
			chunk = append(chunk, rec)
		default:
			return chunk, true
		}
	}
	return chunk, true
}

// IndexDocs issues exactly one bulk call for recs. Only one call may be in
// flight per sink; a concurrent call fails with ErrSinkBusy. Any other failure
// is terminal for the sink.
func (s *Sink) IndexDocs(ctx context.Context, recs ...Record) error {
	if err := s.Err(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	if !s.active.TryAcquire(1) {
		return ErrSinkBusy
	}
	defer s.active.Release(1)

	if err := s.flush(ctx, recs); err != nil {
		return s.fail(err)
	}

	s.progress.AddToComplete(len(recs))
	return nil
}

func (s *Sink) flush(ctx context.Context, recs []Record) error {
	start := time.Now()

	var buf bytes.Buffer
	if err := encodeRecords(&buf, s.opts.action, s.stats, recs); err != nil {
		return err
	}
	bufSz := buf.Len()

	ctx, cancel := context.WithTimeout(ctx, s.opts.requestTimeout)
	defer cancel()

	req := esapi.BulkRequest{
		Body: &buf,
	}
	if s.opts.refresh {
		req.Refresh = "true"
	}

	res, err := req.Do(ctx, s.tr)
	if err != nil {
		log.Error().Err(err).Str("mod", kModBulk).Msg("Fail BulkRequest req.Do")
		return err
	}

	if res.Body == nil {
		log.Error().Str("mod", kModBulk).Int("status", res.StatusCode).Msg("BulkRequest returned no body")
		return ErrEmptyResponse
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Error().Str("mod", kModBulk).Int("status", res.StatusCode).Msg("Fail BulkRequest result")
		return es.ParseError(res)
	}

	var body bytes.Buffer
	bodySz, err := body.ReadFrom(res.Body)
	if err != nil {
		log.Error().
			Err(err).
			Str("mod", kModBulk).
			Msg("Response error")
		return err
	}

	var blk BulkResponse
	blk.Items = make([]BulkResponseItem, 0, len(recs))

	if err = easyjson.Unmarshal(body.Bytes(), &blk); err != nil {
		log.Error().
			Err(err).
			Str("mod", kModBulk).
			Msg("Unmarshal error")
		return err
	}

	log.Trace().
		Str("mod", kModBulk).
		Str("action", s.opts.action.String()).
		Int("took", blk.Took).
		Dur("rtt", time.Since(start)).
		Bool("hasErrors", blk.HasErrors).
		Int("cnt", len(recs)).
		Int("bufSz", bufSz).
		Int64("bodySz", bodySz).
		Msg("flushBulk")

	if blk.HasErrors {
		failed := blk.failure(body.Bytes())
		log.Error().
			AnErr("first", failed.First).
			Str("mod", kModBulk).
			Int("cnt", len(recs)).
			Int("failed", failed.Failed).
			Msg("Bulk call reported document errors")
		return failed
	}

	return nil
}
