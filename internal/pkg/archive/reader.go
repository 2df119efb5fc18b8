// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package archive reads the record files of an archive directory.
//
// An archive file holds pretty printed JSON records separated by blank lines,
// optionally gzip compressed when the name ends in .gz.
package archive

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/miolini/datacounter"
	"github.com/pkg/errors"
)

const (
	kGzipExt     = ".gz"
	kMappingsPfx = "mappings."
)

var (
	ErrRecordType      = errors.New("unexpected record type")
	ErrMalformedRecord = errors.New("malformed record")
)

// IsGzip reports whether name is a compressed archive file.
func IsGzip(name string) bool {
	return strings.HasSuffix(name, kGzipExt)
}

func isArchiveFile(name string) bool {
	name = strings.TrimSuffix(name, kGzipExt)
	return !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".json")
}

func isMappingFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), kMappingsPfx)
}

// ListFiles returns the archive files in dir, mapping files first, each group
// sorted by name.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read archive directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isArchiveFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.SliceStable(files, func(i, j int) bool {
		mi, mj := isMappingFile(files[i]), isMappingFile(files[j])
		if mi != mj {
			return mi
		}
		return files[i] < files[j]
	})
	return files, nil
}

// Reader decodes records from one archive file.
type Reader struct {
	name    string
	counter *datacounter.ReaderCounter
	zr      *gzip.Reader
	dec     *json.Decoder
	n       int
}

// NewReader reads records from r. name selects decompression and is used in
// error messages.
func NewReader(r io.Reader, name string) (*Reader, error) {
	counter := datacounter.NewReaderCounter(r)

	rd := &Reader{
		name:    name,
		counter: counter,
	}

	var src io.Reader = counter
	if IsGzip(name) {
		zr, err := gzip.NewReader(counter)
		if err != nil {
			return nil, errors.Wrapf(err, "open gzip archive %s", name)
		}
		rd.zr = zr
		src = zr
	}

	rd.dec = json.NewDecoder(src)
	return rd, nil
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return rec, io.EOF
		}
		return rec, errors.Wrapf(err, "decode record %d of %s", r.n+1, r.name)
	}
	r.n++

	switch rec.Type {
	case TypeIndex, TypeDoc:
	default:
		return rec, errors.Wrapf(ErrRecordType, "record %d of %s has type %q", r.n, r.name, rec.Type)
	}
	return rec, nil
}

// Count is the number of records read so far.
func (r *Reader) Count() int {
	return r.n
}

// BytesRead is the number of bytes consumed from the underlying reader,
// compressed size for gzip files.
func (r *Reader) BytesRead() uint64 {
	return r.counter.Count()
}

func (r *Reader) Close() error {
	if r.zr != nil {
		return r.zr.Close()
	}
	return nil
}
