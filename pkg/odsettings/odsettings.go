// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odsettings resolves the user side of an OpendTect setup: the personal settings
// directory, the survey data root, and the current survey.
package odsettings

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/iopar"
	"github.com/opendtect/odgo/pkg/odenv"
	"github.com/opendtect/odgo/pkg/odinstall"
)

var (
	ErrNoDataRoot = errors.New("no survey data root configured")
	ErrNoSurvey   = errors.New("no current survey configured")
)

const (
	DataRootKey      = "Default DATA directory"
	settingsFileType = "Settings"
)

// User is the settings of the user running odgo.
type User struct {
	Env      *odenv.Env
	Platform odinstall.Platform
}

// NewUser returns the settings of the current user on the current platform.
func NewUser(ctx context.Context) (*User, error) {
	env, err := odenv.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &User{
		Env:      env,
		Platform: odinstall.Current(),
	}, nil
}

// SettingsDir is DTECT_PERSONAL_DIR, or ~/.od.
func (u *User) SettingsDir() string {
	if u.Env.PersonalDir != "" {
		return u.Env.PersonalDir
	}
	return filepath.Join(u.Env.HomeDir(), ".od")
}

// SettingsFile returns the path of a per-user settings file.  With DTECT_USER set, the file name
// gets that as an extension so that several users can share one home directory.
func (u *User) SettingsFile(name string) string {
	if u.Env.User != "" {
		name += "." + u.Env.User
	}
	return filepath.Join(u.SettingsDir(), name)
}

// BaseDataDir returns the survey data root.  The environment (DTECT_WINDATA on Windows, then
// DTECT_DATA) wins when it names an existing directory; otherwise the user's settings file is
// consulted.
func (u *User) BaseDataDir() (string, error) {
	if u.Platform == odinstall.Windows && fsutil.IsDir(u.Env.WinData) {
		return u.Env.WinData, nil
	}
	if fsutil.IsDir(u.Env.Data) {
		return u.Env.Data, nil
	}
	settings := u.SettingsFile("settings")
	if !fsutil.IsFile(settings) {
		return "", ErrNoDataRoot
	}
	dir, err := iopar.ReadFromFile(settings, DataRootKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDataRoot, err)
	}
	if dir == "" {
		return "", ErrNoDataRoot
	}
	return dir, nil
}

// SurveyDir returns the directory name, below the data root, of the current survey.
func (u *User) SurveyDir() (string, error) {
	fh, err := os.Open(u.SettingsFile("survey"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoSurvey
		}
		return "", err
	}
	defer fh.Close()
	line, err := bufio.NewReader(fh).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrNoSurvey
	}
	return line, nil
}

// DataDir returns the full path of the current survey.
func (u *User) DataDir() (string, error) {
	root, err := u.BaseDataDir()
	if err != nil {
		return "", err
	}
	survey, err := u.SurveyDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, survey), nil
}

// SetDefaultSurvey makes name the current survey.
func (u *User) SetDefaultSurvey(name string) error {
	if name == "" || strings.ContainsAny(name, "\n/\\") {
		return fmt.Errorf("invalid survey directory name %q", name)
	}
	fnm := u.SettingsFile("survey")
	if err := os.MkdirAll(filepath.Dir(fnm), 0o755); err != nil {
		return err
	}
	return fsutil.WriteFile(fnm, []byte(name+"\n"), 0o644)
}

// SetDefaultDataDir stores dir as the survey data root in the user's settings file, keeping the
// other settings.
func (u *User) SetDefaultDataDir(dir string) error {
	fnm := u.SettingsFile("settings")
	par, err := iopar.ReadFile(fnm)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		par = &iopar.Par{Name: settingsFileType}
	case err != nil:
		return err
	}
	par.Set(DataRootKey, dir)

	if err := os.MkdirAll(filepath.Dir(fnm), 0o755); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(fnm, 0o644, func(w io.Writer) error {
		return par.Write(w, settingsFileType)
	})
}
