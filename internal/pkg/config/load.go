// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package config

import (
	"errors"
	"time"
)

const (
	defaultBufferSize       = 300
	defaultRequestTimeout   = 2 * time.Minute
	defaultProgressInterval = 5 * time.Second
)

// Load is the configuration of an archive load job.
type Load struct {
	UseCreate        bool          `config:"use_create"`
	SkipExisting     bool          `config:"skip_existing"`
	Refresh          bool          `config:"refresh"`
	BufferSize       int           `config:"buffer_size"`
	RequestTimeout   time.Duration `config:"request_timeout"`
	ProgressInterval time.Duration `config:"progress_interval"`
}

// InitDefaults initializes the defaults for the configuration.
func (c *Load) InitDefaults() {
	c.BufferSize = defaultBufferSize
	c.RequestTimeout = defaultRequestTimeout
	c.ProgressInterval = defaultProgressInterval
}

// Validate ensures that the configuration is valid.
func (c *Load) Validate() error {
	if c.BufferSize <= 0 {
		return errors.New("load.buffer_size must be greater than zero")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("load.request_timeout must be greater than zero")
	}
	if c.ProgressInterval <= 0 {
		return errors.New("load.progress_interval must be greater than zero")
	}
	return nil
}
