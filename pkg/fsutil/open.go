// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package fsutil has small filesystem helpers shared by the database packages.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// IsFile reports whether path is an existing regular file.
func IsFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Open opens filename for reading, reporting failure as a PathError with the given operation.
func Open(op, filename string) (*os.File, error) {
	fh, err := os.Open(filename)
	if err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			err = perr.Err
		}
		return nil, &fs.PathError{Op: op, Path: filename, Err: err}
	}
	return fh, nil
}

// Resolve returns filename relative to dir unless it is absolute.
func Resolve(dir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dir, filename)
}
