// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package log provides test loggers.
package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogger routes zerolog's package level logger to the testing output for the
// duration of the test and returns the logger. The logger is set to debug level.
func SetLogger(tb testing.TB) zerolog.Logger {
	tb.Helper()
	tw := zerolog.TestWriter{T: tb, Frame: 4}
	lg := zerolog.New(tw).Level(zerolog.DebugLevel)

	prev := log.Logger
	log.Logger = lg
	tb.Cleanup(func() {
		log.Logger = prev
	})
	return lg
}

// QuietLogger raises the global level to error until the returned func is called.
func QuietLogger() func() {
	l := zerolog.GlobalLevel()

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	return func() {
		zerolog.SetGlobalLevel(l)
	}
}
