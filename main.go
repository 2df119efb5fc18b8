// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package main

import (
	"fmt"
	"os"

	"github.com/elastic/esarchiver/cmd/archiver"
	"github.com/elastic/esarchiver/internal/pkg/build"
	"github.com/elastic/esarchiver/version"
)

var (
	Version   string = version.DefaultVersion
	Commit    string
	BuildTime string
)

func main() {
	cmd := archiver.NewCommand(build.Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: build.Time(BuildTime),
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
