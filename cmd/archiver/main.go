// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package archiver is the esarchiver command line.
package archiver

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elastic/esarchiver/internal/pkg/build"
	"github.com/elastic/esarchiver/internal/pkg/config"
	"github.com/elastic/esarchiver/internal/pkg/env"
	"github.com/elastic/esarchiver/internal/pkg/logger"
)

const (
	kFlagConfig       = "config"
	kFlagUseCreate    = "use-create"
	kFlagSkipExisting = "skip-existing"
	kFlagRefresh      = "refresh"
)

// NewCommand returns the root command.
func NewCommand(bi build.Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "esarchiver",
		Short:         "Restore saved index archives into Elasticsearch",
		Version:       bi.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP(kFlagConfig, "c", "", "Configuration file (YAML); defaults and environment are used when empty")

	cmd.AddCommand(
		newLoadCommand(bi),
		newMapFilterCommand(),
	)
	return cmd
}

// loadConfig reads the file named by --config or ESARCHIVER_CONFIG. Without
// one the defaults are used, with the cluster taken from the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Flags().GetString(kFlagConfig)
	if err != nil {
		return nil, err
	}
	cfgPath = env.ConfigPath(cfgPath)

	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}

	cfg := config.Default()
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *config.Config) {
	es := &cfg.Elasticsearch
	es.Hosts = env.ESUrls(es.Hosts)
	es.Username = env.ESUsername(es.Username)
	es.Password = env.ESPassword(es.Password)
	es.APIKey = env.ESAPIKey(es.APIKey)
	es.ServiceToken = env.ESServiceToken(es.ServiceToken)

	cfg.Load.RequestTimeout = env.BulkRequestTimeout(cfg.Load.RequestTimeout)
	cfg.Load.BufferSize = env.BulkBufferSize(cfg.Load.BufferSize)

	cfg.Logging.Level = env.LogLevel(cfg.Logging.Level)
	cfg.Logging.Pretty = env.LogPretty(cfg.Logging.Pretty)
}

func initLogger(cfg *config.Config, bi build.Info) {
	logger.Init(cfg, build.ServiceName)
	log.Debug().EmbedObject(bi).Msg("Build info")
}
