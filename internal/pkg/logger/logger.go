// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package logger provides logging utilities for esarchiver.
// Currently it wraps rs/zerolog
package logger

import (
	"io"
	"sync"

	"go.elastic.co/ecszerolog"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elastic/esarchiver/internal/pkg/config"
)

var once sync.Once
var gLogger *Logger

// Logger manages the zerolog/log.Logger variable.
// An instance with TraceLevel is always created and log level is controlled through zerolog.GlobalLevel.
type Logger struct {
	cfg  config.Logging
	name string
}

// Reload reloads the logger configuration.
// If only the log level has changed then only GlobalLogLevel is set.
func (l *Logger) Reload(cfg *config.Config) {
	if cfg.Logging.LogLevel() != zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(cfg.Logging.LogLevel())
	}
	if !l.cfg.EqualExcludeLevel(cfg.Logging) {
		log.Logger = configure(cfg.Logging, l.name)
	}
	l.cfg = cfg.Logging
}

// Init initializes the logger.
func Init(cfg *config.Config, svcName string) *Logger {
	once.Do(func() {
		zerolog.SetGlobalLevel(cfg.Logging.LogLevel())
		log.Logger = configure(cfg.Logging, svcName)
		gLogger = &Logger{
			cfg:  cfg.Logging,
			name: svcName,
		}
	})
	return gLogger
}

func configure(cfg config.Logging, svcName string) zerolog.Logger {
	out := cfg.DestinationWriter()
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}

	lg := newLogger(out)
	if svcName != "" {
		lg = lg.With().Str(EcsServiceName, svcName).Logger()
	}
	return lg
}

func newLogger(out io.Writer) zerolog.Logger {
	return ecszerolog.New(out).Level(zerolog.TraceLevel)
}
