// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package es provides utilities to interact with Elasticsearch.
//
// For the most part esarchiver uses the go-elasticsearch client directly.
// The es package has structs for decoding results, error translation, and the
// index manipulation calls the archive loader needs.
package es
