// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package archiver

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/elastic/esarchiver/internal/pkg/build"
	"github.com/elastic/esarchiver/internal/pkg/config"
	"github.com/elastic/esarchiver/internal/pkg/es"
	"github.com/elastic/esarchiver/internal/pkg/loader"
	"github.com/elastic/esarchiver/internal/pkg/signal"
)

func newLoadCommand(bi build.Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <dir>",
		Short: "Create the indices of an archive directory and index its documents",
		Args:  cobra.ExactArgs(1),
		RunE:  getLoadCommand(bi),
	}
	cmd.Flags().Bool(kFlagUseCreate, false, "Use the create action; documents that already exist fail the load")
	cmd.Flags().Bool(kFlagSkipExisting, false, "Leave existing indices alone and drop their documents")
	cmd.Flags().Bool(kFlagRefresh, false, "Refresh after every bulk call")
	return cmd
}

func getLoadCommand(bi build.Info) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyLoadFlags(cmd, cfg); err != nil {
			return err
		}

		initLogger(cfg, bi)

		ctx, cancel := signal.HandleInterrupt(context.Background())
		defer cancel()

		cli, err := es.NewClient(ctx, cfg)
		if err != nil {
			return err
		}

		res, err := loader.New(cli, cfg).Load(ctx, args[0])
		if err != nil {
			return err
		}

		printResult(cmd, res)
		return nil
	}
}

// applyLoadFlags overrides the load section with flags set on the command line.
func applyLoadFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := []struct {
		name string
		dst  *bool
	}{
		{kFlagUseCreate, &cfg.Load.UseCreate},
		{kFlagSkipExisting, &cfg.Load.SkipExisting},
		{kFlagRefresh, &cfg.Load.Refresh},
	}

	for _, f := range flags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func printResult(cmd *cobra.Command, res *loader.Result) {
	out := cmd.OutOrStdout()

	names := make([]string, 0, len(res.Indices))
	for k := range res.Indices {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		st := res.Indices[k]
		state := "created"
		switch {
		case st.Skipped:
			state = "skipped"
		case st.Deleted && st.Created:
			state = "replaced"
		case !st.Created:
			state = "untouched"
		}
		fmt.Fprintf(out, "%s\t%s\t%d docs\n", k, state, st.Docs.Indexed)
	}
	fmt.Fprintf(out, "loaded %d/%d documents (job %s)\n", res.Complete, res.Total, res.JobID)
}
