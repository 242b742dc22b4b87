// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package oddb reads and maintains the object database of an OpendTect survey.
//
// A survey is a directory below the survey data root.  Every kind of data lives in its own
// subdirectory ("Seismics", "WellInfo", ...), which lists its objects in a ".omf" file.  Objects
// are identified by a key "<directory ID>.<number>" and carry a name, a translator group (the
// kind of data), a translator (the storage format) and a file name.
package oddb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/iopar"
	"github.com/opendtect/odgo/pkg/odsettings"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrExists   = errors.New("object already exists")
)

const surveyFile = ".survey"

// StdDir is one of the database directories that every survey may have.
type StdDir struct {
	Name   string
	ID     string
	Groups []string // translator groups stored here, matched as prefixes
}

var StdDirs = []StdDir{
	{Name: "Seismics", ID: "100010", Groups: []string{"Seismic Data", "Pre-Stack Seismics"}},
	{Name: "Surfaces", ID: "100020", Groups: []string{"Horizon", "2D Horizon", "Body"}},
	{Name: "Locations", ID: "100030", Groups: []string{"PickSet Group", "Polygon"}},
	{Name: "Features", ID: "100040", Groups: []string{"Fault", "FaultStickSet"}},
	{Name: "WellInfo", ID: "100050", Groups: []string{"Well"}},
	{Name: "NLAs", ID: "100060", Groups: []string{"NonLinear Analysis"}},
	{Name: "Misc", ID: "100070"},
}

// stdDirFor returns the directory that holds objects of group; Misc for unknown groups.
func stdDirFor(group string) StdDir {
	for _, sd := range StdDirs {
		for _, g := range sd.Groups {
			if strings.HasPrefix(group, g) {
				return sd
			}
		}
	}
	return StdDirs[len(StdDirs)-1]
}

// Survey is an open survey.  It is safe for concurrent use; changes to an object directory are
// serialized.
type Survey struct {
	DataRoot string
	DirName  string

	name string
	mu   sync.Mutex
}

// Open opens the survey in directory dirName below dataRoot.
func Open(dataRoot, dirName string) (*Survey, error) {
	dir := filepath.Join(dataRoot, dirName)
	if !fsutil.IsDir(dir) {
		return nil, &fs.PathError{Op: "open survey", Path: dir, Err: fs.ErrNotExist}
	}
	par, err := iopar.ReadFile(filepath.Join(dir, surveyFile))
	if err != nil {
		return nil, fmt.Errorf("open survey: %w", err)
	}
	name, ok := par.Get("Name")
	if !ok || name == "" {
		name = dirName
	}
	return &Survey{
		DataRoot: dataRoot,
		DirName:  dirName,
		name:     name,
	}, nil
}

// OpenFromArgs opens the survey named by args, falling back to the user's data root and current
// survey for whatever args leaves out.
func OpenFromArgs(_ context.Context, user *odsettings.User, args odsettings.Args) (*Survey, error) {
	root := args.DataRoot()
	if root == "" {
		var err error
		if root, err = user.BaseDataDir(); err != nil {
			return nil, err
		}
	}
	survey := args.SurveyName()
	if survey == "" {
		var err error
		if survey, err = user.SurveyDir(); err != nil {
			return nil, err
		}
	}
	return Open(root, survey)
}

// Dir returns the full path of the survey.
func (s *Survey) Dir() string {
	return filepath.Join(s.DataRoot, s.DirName)
}

// Name returns the user-visible survey name.
func (s *Survey) Name() string {
	return s.name
}
