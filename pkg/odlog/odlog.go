// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odlog provides the two log sinks that OpendTect tools write to: the standard log, for
// messages meant for the user, and the processing log, for the progress of a task.
//
// Each sink writes to stdout, stderr, or an existing file that is opened for appending.  The
// sinks travel in a context.Context; Setup also installs the standard sink as the dlog logger so
// that library code logging through dlog ends up in the standard log.
package odlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"

	"github.com/opendtect/odgo/pkg/ascistream"
)

// Sink is one log destination.
type Sink struct {
	mu     sync.Mutex
	logger *logrus.Logger
	target string
	file   *os.File
}

// plainFormatter writes bare messages, which is what OpendTect's own log files contain.
type plainFormatter struct{}

func (plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := entry.Message
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	return []byte(msg), nil
}

func newSink(level logrus.Level) *Sink {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(plainFormatter{})
	return &Sink{
		logger: logger,
		target: "stdout",
	}
}

// SetTarget redirects the sink.  "stdout", "<stdout>", "stderr" and "<stderr>" name the standard
// streams; anything else must be an existing regular file.  On error the sink is unchanged.
func (s *Sink) SetTarget(target string) error {
	var out io.Writer
	var file *os.File
	switch target {
	case "stdout", "<stdout>":
		out, target = os.Stdout, "stdout"
	case "stderr", "<stderr>":
		out, target = os.Stderr, "stderr"
	default:
		fi, err := os.Stat(target)
		if err != nil {
			return &fs.PathError{Op: "set log file", Path: target, Err: fs.ErrNotExist}
		}
		if !fi.Mode().IsRegular() {
			return &fs.PathError{Op: "set log file", Path: target, Err: errors.New("not a regular file")}
		}
		file, err = os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return err
		}
		out = file
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.SetOutput(out)
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file = file
	s.target = target
	return nil
}

// FileName returns the log file, or "" when the sink writes to a standard stream.
func (s *Sink) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ""
	}
	return s.target
}

// Target returns the file name, "stdout" or "stderr".
func (s *Sink) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.logger.SetOutput(os.Stdout)
	s.target = "stdout"
	return err
}

// Logger returns a dlog.Logger writing to the sink.
func (s *Sink) Logger() dlog.Logger {
	return dlog.WrapLogrus(s.logger)
}

// Loggers is the pair of sinks.
type Loggers struct {
	Std  *Sink
	Proc *Sink
}

// New returns sinks writing to stdout; the standard sink at INFO level and the processing sink at
// DEBUG level.
func New() *Loggers {
	return &Loggers{
		Std:  newSink(logrus.InfoLevel),
		Proc: newSink(logrus.DebugLevel),
	}
}

func (l *Loggers) Close() error {
	err := l.Std.Close()
	if perr := l.Proc.Close(); err == nil {
		err = perr
	}
	return err
}

type loggersKey struct{}

var (
	defaultOnce    sync.Once
	defaultLoggers *Loggers
)

// WithLoggers returns a context carrying l, with the standard sink as its dlog logger.
func WithLoggers(ctx context.Context, l *Loggers) context.Context {
	ctx = context.WithValue(ctx, loggersKey{}, l)
	return dlog.WithLogger(ctx, l.Std.Logger())
}

// Get returns the sinks carried by ctx, or process-wide sinks writing to stdout.
func Get(ctx context.Context) *Loggers {
	if l, ok := ctx.Value(loggersKey{}).(*Loggers); ok {
		return l
	}
	defaultOnce.Do(func() {
		defaultLoggers = New()
	})
	return defaultLoggers
}

// Setup creates fresh sinks aimed at the given targets ("" leaves a sink on stdout) and returns a
// context carrying them.  A target that cannot be used is reported on the standard log.
func Setup(ctx context.Context, stdTarget, procTarget string) context.Context {
	l := New()
	ctx = WithLoggers(ctx, l)
	if stdTarget != "" {
		if err := l.Std.SetTarget(stdTarget); err != nil {
			Std(ctx, "Log file not found: %s", stdTarget)
		}
	}
	if procTarget != "" {
		if err := l.Proc.SetTarget(procTarget); err != nil {
			Std(ctx, "Log file not found: %s", procTarget)
		}
	}
	return ctx
}

// Std writes a message to the standard log.
func Std(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Std.logger.Infof(format, args...)
}

// Proc writes a message to the processing log.
func Proc(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Proc.logger.Infof(format, args...)
}

// ProcContext returns a context whose dlog logger is the processing log; subprocess output
// started with it lands there.
func ProcContext(ctx context.Context) context.Context {
	return dlog.WithLogger(ctx, Get(ctx).Proc.Logger())
}

func StdLogFile(ctx context.Context) string {
	return Get(ctx).Std.FileName()
}

func ProcLogFile(ctx context.Context) string {
	return Get(ctx).Proc.FileName()
}

// TimeString formats t the way OpendTect stamps its logs and files.
func TimeString(t time.Time, milli, abbr bool) string {
	return ascistream.FormatTime(t, milli, abbr)
}

// ResetLogFile truncates the processing log file to its first keep lines, for instance before
// starting a new task.  It does nothing when the processing log is not a file.
func ResetLogFile(ctx context.Context, keep int) error {
	sink := Get(ctx).Proc
	fnm := sink.FileName()
	if fnm == "" {
		return nil
	}

	kept, err := headLines(fnm, keep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fnm, kept, 0o644); err != nil {
		return err
	}
	if err := sink.SetTarget(fnm); err != nil {
		return fmt.Errorf("reopening log file: %w", err)
	}
	return nil
}

func headLines(fnm string, n int) ([]byte, error) {
	fh, err := os.Open(fnm)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var ret []byte
	rd := bufio.NewReader(fh)
	for i := 0; i < n; i++ {
		line, err := rd.ReadBytes('\n')
		ret = append(ret, line...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return ret, nil
}
