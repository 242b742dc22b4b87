// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes filename through a temporary file in the same directory, and renames it
// into place once write has succeeded.  Readers never see a half-written file.
func WriteFileAtomic(filename string, perm fs.FileMode, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return &fs.PathError{Op: "write", Path: filename, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := write(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return &fs.PathError{Op: "write", Path: filename, Err: err}
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

// WriteFile writes content to filename, atomically.
func WriteFile(filename string, content []byte, perm fs.FileMode) error {
	return WriteFileAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}

// ReplaceFile lets edit change a copy of filename, made in the same directory, and renames the
// copy over filename once edit has succeeded.  On error filename is left as it was.
func ReplaceFile(filename string, edit func(tmpname string) error) (err error) {
	src, err := Open("replace", filename)
	if err != nil {
		return err
	}
	defer src.Close()
	fi, err := src.Stat()
	if err != nil {
		return &fs.PathError{Op: "replace", Path: filename, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return &fs.PathError{Op: "replace", Path: filename, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := io.Copy(tmp, src); err != nil {
		return &fs.PathError{Op: "replace", Path: filename, Err: err}
	}
	if err := tmp.Chmod(fi.Mode().Perm()); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := edit(tmp.Name()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
