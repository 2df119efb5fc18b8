// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package stats accounts for what a load job did to each index.
package stats

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elastic/esarchiver/internal/pkg/logger"
)

// IndexStats is the accounting for a single index.
type IndexStats struct {
	Skipped bool `json:"skipped"`
	Deleted bool `json:"deleted"`
	Created bool `json:"created"`
	Docs    struct {
		Indexed int `json:"indexed"`
	} `json:"docs"`
}

func (s IndexStats) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("skipped", s.Skipped)
	e.Bool("deleted", s.Deleted)
	e.Bool("created", s.Created)
	e.Int("docs.indexed", s.Docs.Indexed)
}

// Stats is safe for concurrent use.
type Stats struct {
	mut     sync.Mutex
	indices map[string]*IndexStats
}

func New() *Stats {
	return &Stats{
		indices: make(map[string]*IndexStats),
	}
}

// get must be called with mut held.
func (s *Stats) get(index string) *IndexStats {
	st, ok := s.indices[index]
	if !ok {
		st = &IndexStats{}
		s.indices[index] = st
	}
	return st
}

func (s *Stats) SkippedIndex(index string) {
	s.mut.Lock()
	s.get(index).Skipped = true
	s.mut.Unlock()

	log.Debug().Str(logger.EcsIndexName, index).Msg("Skipped restore of existing index")
}

func (s *Stats) DeletedIndex(index string) {
	s.mut.Lock()
	s.get(index).Deleted = true
	s.mut.Unlock()

	log.Debug().Str(logger.EcsIndexName, index).Msg("Deleted existing index")
}

func (s *Stats) CreatedIndex(index string) {
	s.mut.Lock()
	s.get(index).Created = true
	s.mut.Unlock()

	log.Debug().Str(logger.EcsIndexName, index).Msg("Created index")
}

// IndexedDoc counts a document about to be written to index.
func (s *Stats) IndexedDoc(index string) {
	s.mut.Lock()
	s.get(index).Docs.Indexed++
	s.mut.Unlock()
}

// Snapshot returns a copy of the current accounting.
func (s *Stats) Snapshot() map[string]IndexStats {
	s.mut.Lock()
	defer s.mut.Unlock()

	out := make(map[string]IndexStats, len(s.indices))
	for k, v := range s.indices {
		out[k] = *v
	}
	return out
}

// Indices returns the names of all indices touched, sorted.
func (s *Stats) Indices() []string {
	s.mut.Lock()
	defer s.mut.Unlock()

	names := make([]string, 0, len(s.indices))
	for k := range s.indices {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Created returns the sorted names of indices created by the job.
func (s *Stats) Created() []string {
	snap := s.Snapshot()
	var names []string
	for k, v := range snap {
		if v.Created {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	snap := s.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		e.Object(k, snap[k])
	}
}

// Log writes one info entry per index.
func (s *Stats) Log(lg zerolog.Logger) {
	snap := s.Snapshot()
	for _, k := range s.Indices() {
		lg.Info().Str(logger.EcsIndexName, k).EmbedObject(snap[k]).Msg("Index stats")
	}
}
