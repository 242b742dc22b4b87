// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odlog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/fsnotify/fsnotify"
)

const (
	tailBlockSize = 4098

	batchTailLines   = 10
	batchFinishedMsg = "Finished batch processing"

	DefaultPollInterval = time.Second
)

// Tail returns the last n lines of r, without their line terminators.  The input is read backwards
// in fixed-size blocks, so it is cheap on large log files.  With stripEmpty, empty lines are
// dropped after the last n lines have been selected.
func Tail(r io.ReadSeeker, n int, stripEmpty bool) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	var buf []byte
	off := size
	for off > 0 {
		chunk := int64(tailBlockSize)
		if chunk > off {
			chunk = off
		}
		off -= chunk
		block := make([]byte, chunk)
		if _, err := r.Seek(off, io.SeekStart); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, block); err != nil {
			return nil, err
		}
		buf = append(block, buf...)
		if bytes.Count(buf, []byte{'\n'}) > n {
			break
		}
	}

	text := strings.TrimSuffix(string(buf), "\n")
	lines := strings.Split(text, "\n")
	if off > 0 {
		// partial first line
		lines = lines[1:]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	ret := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if stripEmpty && line == "" {
			continue
		}
		ret = append(ret, line)
	}
	return ret, nil
}

// BatchIsFinished reports whether the OpendTect batch log logfile says that processing has
// finished.  The status is instantaneous; see WaitBatchFinished to monitor a running job.
func BatchIsFinished(logfile string) (bool, error) {
	fh, err := os.Open(logfile)
	if err != nil {
		return false, err
	}
	defer fh.Close()
	lines, err := Tail(fh, batchTailLines, true)
	if err != nil {
		return false, &fs.PathError{Op: "tail", Path: logfile, Err: err}
	}
	return len(lines) > 0 && strings.Contains(lines[len(lines)-1], batchFinishedMsg), nil
}

// WaitBatchFinished blocks until the batch log logfile says that processing has finished, or ctx
// is done.  The log file does not need to exist yet.  Changes are picked up through filesystem
// notifications on the log's directory; the log is also checked every poll interval, in case
// notifications are unavailable (network filesystems).
func WaitBatchFinished(ctx context.Context, logfile string, poll time.Duration) error {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	logfile = filepath.Clean(logfile)

	check := func() (bool, error) {
		done, err := BatchIsFinished(logfile)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return done, err
	}

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err = watcher.Add(filepath.Dir(logfile)); err == nil {
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}
	if err != nil {
		dlog.Debugf(ctx, "not watching %q, polling only: %v", logfile, err)
	}

	if done, err := check(); done || err != nil {
		return err
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) != logfile || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			dlog.Warnf(ctx, "watching %q: %v", logfile, err)
			continue
		case <-ticker.C:
		}
		if done, err := check(); done || err != nil {
			return err
		}
	}
}
