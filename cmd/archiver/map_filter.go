// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package archiver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elastic/esarchiver/internal/pkg/filter"
)

const kFlagFull = "full"

func newMapFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-filter [file]",
		Short: "Print the key and value a saved filter maps to; reads stdin without a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMapFilter,
	}
	cmd.Flags().Bool(kFlagFull, false, "Print the whole filter with its meta block filled in")
	return cmd
}

func runMapFilter(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f, err := filter.ParseFilter(data)
	if err != nil {
		return fmt.Errorf("parse filter: %w", err)
	}

	mapped, err := filter.MapFilter(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	full, err := cmd.Flags().GetBool(kFlagFull)
	if err != nil {
		return err
	}
	if !full {
		fmt.Fprintf(out, "%s\t%s\t%s\n", mapped.Meta.Type, mapped.Meta.Key, mapped.Meta.Value)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(mapped)
}
