// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odinstall locates an OpendTect software installation and the files inside it.
//
// A directory is taken to be an installation when it has a "relinfo" directory ("Resources/relinfo"
// on macOS, where the installation is the "Contents" directory of the application bundle).
package odinstall

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/odenv"
)

var ErrNotFound = errors.New("OpendTect installation not found")

// How many directory levels to climb when looking for the installation root.
const (
	maxClimbFromExec = 5
	maxClimbFromSelf = 4
)

// A Locator finds the pieces of an installation.  Every method takes the executables directory
// the user asked for explicitly ("dtectexec"), or "" to search.
type Locator struct {
	Platform Platform
	Env      *odenv.Env
	// Self is the path of the running program; an odgo shipped inside an installation finds
	// that installation first.  Leave empty to skip that step.
	Self string
}

// NewLocator returns a Locator for the current platform and process environment.
func NewLocator(ctx context.Context) (*Locator, error) {
	env, err := odenv.Load(ctx)
	if err != nil {
		return nil, err
	}
	self, err := os.Executable()
	if err != nil {
		dlog.Debugf(ctx, "cannot determine own executable: %v", err)
		self = ""
	}
	return &Locator{
		Platform: Current(),
		Env:      env,
		Self:     self,
	}, nil
}

// IsSoftwareDir reports whether dir is the root of an installation.
func (l *Locator) IsSoftwareDir(dir string) bool {
	if dir == "" {
		return false
	}
	if l.Platform == Mac {
		return fsutil.IsDir(filepath.Join(dir, "Resources", "relinfo"))
	}
	return fsutil.IsDir(filepath.Join(dir, "relinfo"))
}

// climb checks dir and up to n-1 of its ancestors.
func (l *Locator) climb(dir string, n int) (string, bool) {
	for i := 0; i < n; i++ {
		if l.IsSoftwareDir(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// SoftwareDir returns the root of the installation.  It tries, in order: the ancestors of
// execDir; the ancestors of the running program; DTECT_APPL; the OpendTect binary directories
// found in PATH.
func (l *Locator) SoftwareDir(ctx context.Context, execDir string) (string, error) {
	if execDir != "" {
		if dir, ok := l.climb(execDir, maxClimbFromExec); ok {
			dlog.Debugf(ctx, "software dir %q from dtectexec", dir)
			return dir, nil
		}
	}
	if l.Self != "" {
		if dir, ok := l.climb(filepath.Dir(l.Self), maxClimbFromSelf); ok {
			dlog.Debugf(ctx, "software dir %q from own location", dir)
			return dir, nil
		}
	}
	if l.Env != nil && l.Env.Appl != "" {
		dlog.Debugf(ctx, "software dir %q from DTECT_APPL", l.Env.Appl)
		return l.Env.Appl, nil
	}
	if dir, ok := l.FindInPath(); ok {
		dlog.Debugf(ctx, "software dir %q from PATH", dir)
		return dir, nil
	}
	return "", ErrNotFound
}

// hasPathSuffix reports whether the last elements of path are exactly suffix.
func hasPathSuffix(path, suffix string) bool {
	path = filepath.Clean(path)
	if path == suffix {
		return true
	}
	return strings.HasSuffix(path, string(filepath.Separator)+suffix)
}

// FindInPath looks for an installation above any PATH entry that is an OpendTect binary
// directory.
func (l *Locator) FindInPath() (string, bool) {
	if l.Env == nil {
		return "", false
	}
	ends := []string{l.Platform.binDir(Release), l.Platform.binDir(Debug)}
	for _, entry := range l.Env.PathList() {
		for _, end := range ends {
			if !hasPathSuffix(entry, end) {
				continue
			}
			if dir, ok := l.climb(entry, maxClimbFromExec); ok {
				return dir, true
			}
		}
	}
	return "", false
}

func (l *Locator) firstFile(ctx context.Context, execDir string, cfg BuildConfig, paths func(BuildConfig) []string) (string, error) {
	swDir, err := l.SoftwareDir(ctx, execDir)
	if err != nil {
		return "", err
	}
	for _, c := range cfg.candidates() {
		for _, rel := range paths(c) {
			full := filepath.Join(swDir, rel)
			if fsutil.IsFile(full) {
				return full, nil
			}
		}
	}
	return "", &fs.PathError{Op: "locate", Path: swDir, Err: fmt.Errorf("%w: no %s build", ErrNotFound, cfg)}
}

// ExecDir returns the directory with the OpendTect executables.  A non-empty execDir is returned
// as-is.  Otherwise the build is recognized by its file browser program.
func (l *Locator) ExecDir(ctx context.Context, execDir string, cfg BuildConfig) (string, error) {
	if execDir != "" {
		return execDir, nil
	}
	browser, err := l.firstFile(ctx, "", cfg, func(c BuildConfig) []string {
		dir := l.Platform.binDir(c)
		if c == Debug {
			return []string{
				filepath.Join(dir, l.Platform.exeName("od_FileBrowserd")),
				filepath.Join(dir, l.Platform.exeName("od_FileBrowser")),
			}
		}
		return []string{filepath.Join(dir, l.Platform.exeName("od_FileBrowser"))}
	})
	if err != nil {
		return "", err
	}
	return filepath.Dir(browser), nil
}

// ODBindLib returns the path of the ODBind shared library.
func (l *Locator) ODBindLib(ctx context.Context, execDir string, cfg BuildConfig) (string, error) {
	return l.firstFile(ctx, execDir, cfg, func(c BuildConfig) []string {
		dir := l.Platform.libDir(c)
		if c == Debug {
			return []string{
				filepath.Join(dir, l.Platform.sharedLib("ODBindd")),
				filepath.Join(dir, l.Platform.sharedLib("ODBind")),
			}
		}
		return []string{filepath.Join(dir, l.Platform.sharedLib("ODBind"))}
	})
}

// LibDir returns the directory with the OpendTect shared libraries.
func (l *Locator) LibDir(ctx context.Context, execDir string, cfg BuildConfig) (string, error) {
	lib, err := l.ODBindLib(ctx, execDir, cfg)
	if err != nil {
		return "", err
	}
	return filepath.Dir(lib), nil
}

// IconPath returns the path of a default-theme icon given its base name.
func (l *Locator) IconPath(ctx context.Context, execDir, name string) (string, error) {
	swDir, err := l.SoftwareDir(ctx, execDir)
	if err != nil {
		return "", err
	}
	full := filepath.Join(swDir, "data", "icons.Default", name+".png")
	if !fsutil.IsFile(full) {
		return "", &fs.PathError{Op: "locate icon", Path: full, Err: fs.ErrNotExist}
	}
	return full, nil
}

// Executable returns the full path of an OpendTect program, e.g. "od_main".
func (l *Locator) Executable(ctx context.Context, execDir, name string) (string, error) {
	dir, err := l.ExecDir(ctx, execDir, Auto)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, l.Platform.exeName(name)), nil
}
