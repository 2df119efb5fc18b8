// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package logger

const (

	// Basic logging
	EcsLogLevel     = "log.level"
	EcsLogName      = "log.logger"
	EcsMessage      = "message"
	EcsTimestamp    = "@timestamp"
	EcsErrorMessage = "error.message"

	// Event
	EcsEventDataset  = "event.dataset"
	EcsEventDuration = "event.duration"

	// Service
	EcsServiceName = "service.name"

	// Archive load job
	EcsJobID     = "job.id"
	EcsIndexName = "index.name"
	EcsFilePath  = "file.path"
)
