// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odlog_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/odlog"
	"github.com/opendtect/odgo/pkg/testutil"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(bs)
}

func TestSetup(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	stdFile := testutil.Touch(t, filepath.Join(dir, "std.log"))
	procFile := testutil.WriteFile(t, filepath.Join(dir, "proc.log"), "earlier\n")

	ctx := odlog.Setup(context.Background(), stdFile, procFile)
	defer odlog.Get(ctx).Close()

	odlog.Std(ctx, "hello %s", "user")
	odlog.Proc(ctx, "step %d", 1)
	dlog.Infof(ctx, "via dlog")
	dlog.Debugf(odlog.ProcContext(ctx), "debug detail")

	assert.Equal(t, stdFile, odlog.StdLogFile(ctx))
	assert.Equal(t, procFile, odlog.ProcLogFile(ctx))
	assert.Equal(t, "hello user\nvia dlog\n", readFile(t, stdFile))
	assert.Equal(t, "earlier\nstep 1\ndebug detail\n", readFile(t, procFile))
}

func TestSetupMissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	stdFile := testutil.Touch(t, filepath.Join(dir, "std.log"))
	missing := filepath.Join(dir, "nope.log")

	ctx := odlog.Setup(context.Background(), stdFile, missing)
	defer odlog.Get(ctx).Close()

	assert.Equal(t, "", odlog.ProcLogFile(ctx))
	assert.Equal(t, "stdout", odlog.Get(ctx).Proc.Target())
	assert.Equal(t, "Log file not found: "+missing+"\n", readFile(t, stdFile))
}

func TestSinkTargets(t *testing.T) {
	t.Parallel()
	l := odlog.New()
	defer l.Close()

	for _, tc := range []struct {
		In   string
		Want string
	}{
		{"<stderr>", "stderr"},
		{"stdout", "stdout"},
		{"stderr", "stderr"},
		{"<stdout>", "stdout"},
	} {
		require.NoError(t, l.Std.SetTarget(tc.In))
		assert.Equal(t, tc.Want, l.Std.Target())
		assert.Equal(t, "", l.Std.FileName())
	}
	assert.Error(t, l.Std.SetTarget(t.TempDir()))
	assert.Equal(t, "stdout", l.Std.Target())
}

func TestResetLogFile(t *testing.T) {
	t.Parallel()
	procFile := testutil.WriteFile(t, filepath.Join(t.TempDir(), "proc.log"), "one\ntwo\nthree\n")
	ctx := odlog.Setup(context.Background(), "", procFile)
	defer odlog.Get(ctx).Close()

	require.NoError(t, odlog.ResetLogFile(ctx, 2))
	assert.Equal(t, "one\ntwo\n", readFile(t, procFile))
	odlog.Proc(ctx, "four")
	assert.Equal(t, "one\ntwo\nfour\n", readFile(t, procFile))

	require.NoError(t, odlog.ResetLogFile(ctx, 0))
	assert.Equal(t, "", readFile(t, procFile))
	odlog.Proc(ctx, "fresh")
	assert.Equal(t, "fresh\n", readFile(t, procFile))
}

func TestResetLogFileStdout(t *testing.T) {
	t.Parallel()
	ctx := odlog.WithLoggers(context.Background(), odlog.New())
	assert.NoError(t, odlog.ResetLogFile(ctx, 3))
}

func TestTail(t *testing.T) {
	t.Parallel()
	var long strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&long, "line %04d\n", i)
	}

	testcases := map[string]struct {
		Content    string
		N          int
		StripEmpty bool
		Want       []string
	}{
		"empty":           {"", 3, false, nil},
		"short":           {"a\nb\n", 5, false, []string{"a", "b"}},
		"no-final-eol":    {"a\nb\nc", 2, false, []string{"b", "c"}},
		"keep-empty":      {"a\n\nb\n\n", 3, false, []string{"", "b", ""}},
		"strip-empty":     {"a\n\nb\n\n", 3, true, []string{"b"}},
		"crlf":            {"a\r\nb\r\n", 1, false, []string{"b"}},
		"multiple-blocks": {long.String(), 3, false, []string{"line 1997", "line 1998", "line 1999"}},
		"whole-long-file": {long.String(), 5000, false, strings.Split(strings.TrimSuffix(long.String(), "\n"), "\n")},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := odlog.Tail(strings.NewReader(tc.Content), tc.N, tc.StripEmpty)
			require.NoError(t, err)
			if tc.Want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestBatchIsFinished(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	running := testutil.WriteFile(t, filepath.Join(dir, "running.log"), "Started\nProcessing 10%\n")
	done, err := odlog.BatchIsFinished(running)
	require.NoError(t, err)
	assert.False(t, done)

	finished := testutil.WriteFile(t, filepath.Join(dir, "finished.log"),
		"Started\nProcessing 100%\nFinished batch processing.\n\n\n")
	done, err = odlog.BatchIsFinished(finished)
	require.NoError(t, err)
	assert.True(t, done)

	_, err = odlog.BatchIsFinished(filepath.Join(dir, "missing.log"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWaitBatchFinished(t *testing.T) {
	t.Parallel()
	logfile := filepath.Join(t.TempDir(), "batch.log")
	ctx, cancel := context.WithTimeout(dlog.NewTestContext(t, true), 30*time.Second)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(logfile, []byte("Started\n"), 0o644)
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(logfile, []byte("Started\nFinished batch processing\n"), 0o644)
	}()
	assert.NoError(t, odlog.WaitBatchFinished(ctx, logfile, 50*time.Millisecond))
}

func TestWaitBatchFinishedCanceled(t *testing.T) {
	t.Parallel()
	logfile := testutil.WriteFile(t, filepath.Join(t.TempDir(), "batch.log"), "Started\n")
	ctx, cancel := context.WithTimeout(dlog.NewTestContext(t, true), 200*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, odlog.WaitBatchFinished(ctx, logfile, 20*time.Millisecond), context.DeadlineExceeded)
}

func TestTimeString(t *testing.T) {
	t.Parallel()
	ts := time.Date(2020, time.April, 20, 13, 59, 54, 1245000, time.UTC)
	assert.Equal(t, "Mon 20 Apr 2020, 13:59:54", odlog.TimeString(ts, false, true))
	assert.Equal(t, "Mon 20 Apr 2020, 13:59:54.001245", odlog.TimeString(ts, true, true))
	assert.Equal(t, "Monday 20 April 2020, 13:59:54", odlog.TimeString(ts, false, false))
}
