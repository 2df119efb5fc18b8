// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package loader restores an archive directory into the cluster.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/elastic/esarchiver/internal/pkg/archive"
	"github.com/elastic/esarchiver/internal/pkg/bulk"
	"github.com/elastic/esarchiver/internal/pkg/config"
	"github.com/elastic/esarchiver/internal/pkg/es"
	"github.com/elastic/esarchiver/internal/pkg/indices"
	"github.com/elastic/esarchiver/internal/pkg/logger"
	"github.com/elastic/esarchiver/internal/pkg/progress"
	"github.com/elastic/esarchiver/internal/pkg/stats"
)

const kReadBufSz = 64 * 1024

// Result summarizes a finished load job.
type Result struct {
	JobID    string
	Indices  map[string]stats.IndexStats
	Total    int64
	Complete int64
}

// Loader runs load jobs against one cluster.
type Loader struct {
	tr  esapi.Transport
	cfg *config.Config
}

func New(tr esapi.Transport, cfg *config.Config) *Loader {
	return &Loader{
		tr:  tr,
		cfg: cfg,
	}
}

// Load creates the indices and writes the documents of every archive file in
// dir. The first failure aborts the job.
func (l *Loader) Load(ctx context.Context, dir string) (*Result, error) {
	jobID := xid.New().String()
	zlog := log.With().
		Str(logger.EcsJobID, jobID).
		Str(logger.EcsFilePath, dir).
		Logger()
	ctx = zlog.WithContext(ctx)

	files, err := archive.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no archive files in %s", dir)
	}

	st := stats.New()
	prog := progress.New()
	creator := indices.NewCreator(l.tr, st, l.cfg.Load.SkipExisting)
	sink := bulk.NewSink(l.tr, st, prog, bulk.SinkOptsFromCfg(l.cfg)...)

	zlog.Info().
		Int("files", len(files)).
		Str("action", sink.Action().String()).
		Bool("skipExisting", l.cfg.Load.SkipExisting).
		Msg("Start load")
	start := time.Now()

	pctx, pcancel := context.WithCancel(ctx)
	pdone := make(chan struct{})
	go func() {
		defer close(pdone)
		prog.Run(pctx, l.cfg.Load.ProgressInterval)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(loggedRunFunc(gctx, "Bulk sink", sink.Run))
	g.Go(loggedRunFunc(gctx, "Archive reader", func(ctx context.Context) error {
		defer sink.Close()
		for _, path := range files {
			if err := l.loadFile(ctx, path, creator, sink, prog); err != nil {
				return err
			}
		}
		return nil
	}))

	err = g.Wait()
	pcancel()
	<-pdone

	if err != nil {
		zlog.Error().Err(err).Dur(logger.EcsEventDuration, time.Since(start)).Msg("Load failed")
		return nil, err
	}

	if created := st.Created(); len(created) > 0 {
		if err := es.RefreshIndices(ctx, l.tr, created...); err != nil {
			return nil, fmt.Errorf("refresh loaded indices: %w", err)
		}
	}

	st.Log(zlog)
	zlog.Info().
		EmbedObject(prog).
		Dur(logger.EcsEventDuration, time.Since(start)).
		Msg("Load complete")

	return &Result{
		JobID:    jobID,
		Indices:  st.Snapshot(),
		Total:    prog.Total(),
		Complete: prog.Complete(),
	}, nil
}

func (l *Loader) loadFile(ctx context.Context, path string, creator *indices.Creator, sink *bulk.Sink, prog *progress.Progress) error {
	zlog := zerolog.Ctx(ctx).With().Str(logger.EcsFilePath, path).Logger()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := archive.NewReader(bufio.NewReaderSize(f, kReadBufSz), path)
	if err != nil {
		return err
	}
	defer rd.Close()

	var docs, dropped int
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		switch rec.Type {
		case archive.TypeIndex:
			def, err := rec.IndexDef()
			if err != nil {
				return err
			}
			if err := creator.Create(ctx, def); err != nil {
				return err
			}
		case archive.TypeDoc:
			doc, err := rec.Doc()
			if err != nil {
				return err
			}
			if creator.Skipped(doc.Index) {
				dropped++
				continue
			}
			prog.AddToTotal(1)
			if err := sink.Write(ctx, doc); err != nil {
				return err
			}
			docs++
		}
	}

	zlog.Debug().
		Int("records", rd.Count()).
		Int("docs", docs).
		Int("dropped", dropped).
		Uint64("bytes", rd.BytesRead()).
		Msg("Archive file read")
	return nil
}

func loggedRunFunc(ctx context.Context, tag string, runfn func(context.Context) error) func() error {
	zlog := zerolog.Ctx(ctx)
	return func() error {
		zlog.Debug().Msg(tag + " started")

		err := runfn(ctx)

		lvl := zerolog.DebugLevel
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
		default:
			lvl = zerolog.ErrorLevel
		}

		zlog.WithLevel(lvl).Err(err).Msg(tag + " exited")
		return err
	}
}
