// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package seisman gives access to the seismic data sets registered in a survey.
package seisman

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/iopar"
	"github.com/opendtect/odgo/pkg/oddb"
)

// Group is the translator group of 3D seismic data sets.
const Group = "Seismic Data"

// Manager gives access to the seismic data sets of one survey.  The database list is cached;
// the manager is safe for concurrent use.
type Manager struct {
	Survey *oddb.Survey

	mu     sync.Mutex
	dblist []oddb.ObjectInfo
}

func NewManager(surv *oddb.Survey) *Manager {
	return &Manager{Survey: surv}
}

// DBList returns the database entries of all seismic data sets, from cache unless reload is set.
// A partial list is returned together with the error of the directories that failed.
func (m *Manager) DBList(reload bool) ([]oddb.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dblist != nil && !reload {
		return m.dblist, nil
	}
	list, err := m.Survey.ObjectInfos(Group, false)
	if err != nil && len(list) == 0 {
		return nil, err
	}
	if list == nil {
		list = []oddb.ObjectInfo{}
	}
	m.dblist = list
	return list, err
}

// Name returns the name of the data set with database key key.
func (m *Manager) Name(key string) (string, error) {
	oi, err := m.Survey.ObjectInfoByKey(key)
	if err != nil {
		return "", err
	}
	return oi.Name, nil
}

// DBKey returns the database key of a data set.
func (m *Manager) DBKey(name string, reload bool) (string, error) {
	list, err := m.DBList(reload)
	if err != nil && len(list) == 0 {
		return "", err
	}
	key, ok := oddb.KeyForName(list, name)
	if !ok {
		if err != nil {
			return "", fmt.Errorf("%w: seismic data %q: %v", oddb.ErrNotFound, name, err)
		}
		return "", fmt.Errorf("%w: seismic data %q", oddb.ErrNotFound, name)
	}
	return key, nil
}

// FileLocation returns the file holding the samples of a data set.  Formats that register a
// parameter file pointing at the data ("File name") are followed to the data file.
func (m *Manager) FileLocation(name string) (string, error) {
	key, err := m.DBKey(name, false)
	if err != nil {
		return "", err
	}
	loc, err := m.Survey.FileLocation(key)
	if err != nil {
		return "", err
	}
	if !fsutil.IsFile(loc) {
		return loc, nil
	}
	par, err := iopar.ReadFile(loc)
	if err != nil {
		// not a parameter file
		return loc, nil
	}
	if target, ok := par.Get("File name"); ok && target != "" {
		return fsutil.Resolve(filepath.Dir(loc), target), nil
	}
	return loc, nil
}

// IsPresent reports whether the survey has a data set with that name.
func (m *Manager) IsPresent(name string) bool {
	list, _ := m.DBList(false)
	_, ok := oddb.FindInList(list, name)
	return ok
}
