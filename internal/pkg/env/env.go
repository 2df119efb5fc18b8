// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package env reads settings from environment variables, falling back to a default.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetStr(key, defaultVal string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		val = defaultVal
	}
	return val
}

func GetBool(key string, defaultVal bool) bool {
	val := defaultVal

	if valS, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(valS); err == nil {
			val = b
		}
	}
	return val
}

func GetInt(key string, defaultVal int) int {
	val := defaultVal

	if valS, ok := os.LookupEnv(key); ok {
		if b, err := strconv.Atoi(valS); err == nil {
			val = b
		}
	}
	return val
}

func GetDur(key string, defaultVal time.Duration) time.Duration {
	val := defaultVal

	if valS, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(valS); err == nil {
			val = d
		}
	}
	return val
}

// GetList splits a comma separated value, dropping empty entries.
func GetList(key string, defaultVal []string) []string {
	valS, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}

	var out []string
	for _, s := range strings.Split(valS, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func ConfigPath(defaultVal string) string {
	return GetStr("ESARCHIVER_CONFIG", defaultVal)
}

func LogPretty(defaultVal bool) bool {
	return GetBool("LOG_PRETTY", defaultVal)
}

func LogLevel(defaultVal string) string {
	return GetStr("LOG_LEVEL", defaultVal)
}

func ESUrls(defaultVal []string) []string {
	return GetList("ES_URL", defaultVal)
}

func ESUsername(defaultVal string) string {
	return GetStr("ES_USER", defaultVal)
}

func ESPassword(defaultVal string) string {
	return GetStr("ES_PASS", defaultVal)
}

func ESAPIKey(defaultVal string) string {
	return GetStr("ES_API_KEY", defaultVal)
}

func ESServiceToken(defaultVal string) string {
	return GetStr("ES_SERVICE_TOKEN", defaultVal)
}

func BulkRequestTimeout(defaultVal time.Duration) time.Duration {
	return GetDur("BULK_REQUEST_TIMEOUT", defaultVal)
}

func BulkBufferSize(defaultVal int) int {
	return GetInt("BULK_BUFFER_SIZE", defaultVal)
}
