// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package ascistream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/opendtect/odgo/pkg/reproducible"
)

// Writer writes an ascistream.  Errors are sticky: after the first failure every call returns
// that same error.
type Writer struct {
	w   *bufio.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) printf(format string, args ...interface{}) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
	return w.err
}

// WriteHeader writes the header for a file of the given type, stamped with reproducible.Now().
func (w *Writer) WriteHeader(fileType string) error {
	return w.printf("%s %s\n%s\n%s\n%s\n",
		DefaultProduct, DefaultVersion,
		fileType,
		FormatTime(reproducible.Now(), false, true),
		Separator)
}

func (w *Writer) WriteKV(key, value string) error {
	if value == "" {
		return w.printf("%s:\n", key)
	}
	return w.printf("%s: %s\n", key, value)
}

func (w *Writer) WriteBlock(kvs []KV) error {
	for _, kv := range kvs {
		if err := w.WriteKV(kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return w.EndBlock()
}

func (w *Writer) EndBlock() error {
	return w.printf("%s\n", Separator)
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}
