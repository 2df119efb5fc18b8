// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package config holds the esarchiver configuration and its YAML loader.
package config

import (
	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"
)

// DefaultOptions defaults options used to read the configuration
var DefaultOptions = []ucfg.Option{
	ucfg.PathSep("."),
	ucfg.ResolveEnv,
	ucfg.VarExp,
}

// Config is the global configuration.
type Config struct {
	Elasticsearch Elasticsearch `config:"elasticsearch"`
	Load          Load          `config:"load"`
	Logging       Logging       `config:"logging"`
}

// InitDefaults initializes the defaults for the configuration.
func (c *Config) InitDefaults() {
	c.Elasticsearch.InitDefaults()
	c.Load.InitDefaults()
	c.Logging.InitDefaults()
}

// Validate ensures that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Elasticsearch.Validate(); err != nil {
		return err
	}
	if err := c.Load.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Default returns a configuration with every section set to its defaults.
func Default() *Config {
	var cfg Config
	cfg.InitDefaults()
	return &cfg
}

// FromConfig unpacks a ucfg configuration on top of the defaults.
func FromConfig(c *ucfg.Config) (*Config, error) {
	cfg := Default()
	if err := c.Unpack(cfg, DefaultOptions...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile take a path and load the file and return a new configuration.
func LoadFile(path string) (*Config, error) {
	c, err := yaml.NewConfigWithFile(path, DefaultOptions...)
	if err != nil {
		return nil, err
	}
	return FromConfig(c)
}

// Parse reads a configuration from raw YAML.
func Parse(data []byte) (*Config, error) {
	c, err := yaml.NewConfig(data, DefaultOptions...)
	if err != nil {
		return nil, err
	}
	return FromConfig(c)
}
