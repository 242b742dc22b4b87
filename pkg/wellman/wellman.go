// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package wellman loads wells, their logs, markers and tracks from an OpendTect survey.
package wellman

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/opendtect/odgo/pkg/oddb"
)

// Group is the translator group of wells.
const Group = "Well"

var ErrNoSuchLog = errors.New("no such log")

// Manager gives access to the wells of one survey.  The database list is cached; the manager is
// safe for concurrent use.
type Manager struct {
	Survey *oddb.Survey

	mu     sync.Mutex
	dblist []oddb.ObjectInfo
}

func NewManager(surv *oddb.Survey) *Manager {
	return &Manager{Survey: surv}
}

// DBList returns the database entries of all wells.  The list is read once and then served from
// cache until reload is set.  If some database directories could not be read, the entries found
// are returned together with the error.
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

// Names lists the names of the wells in the survey.  Like DBList, a partial list may come with
// an error.
func (m *Manager) Names() ([]string, error) {
	list, err := m.DBList(true)
	if err != nil && len(list) == 0 {
		return nil, err
	}
	ret := make([]string, 0, len(list))
	for _, oi := range list {
		ret = append(ret, oi.Name)
	}
	return ret, err
}

// Name returns the name of the well with database key key.
func (m *Manager) Name(key string) (string, error) {
	oi, err := m.Survey.ObjectInfoByKey(key)
	if err != nil {
		return "", err
	}
	return oi.Name, nil
}

// DBKey returns the database key of a well.
func (m *Manager) DBKey(well string) (string, error) {
	oi, err := m.Survey.ObjectInfo(well, Group)
	if err != nil {
		return "", err
	}
	return oi.ID, nil
}

func (m *Manager) wellFile(well string) (string, error) {
	oi, err := m.Survey.ObjectInfo(well, Group)
	if err != nil {
		return "", err
	}
	if oi.Status != oddb.StatusOK {
		return "", fmt.Errorf("well %q: file %s is missing", well, oi.FileName)
	}
	return oi.FileName, nil
}

func sideFile(wellFile, ext string) string {
	return strings.TrimSuffix(wellFile, filepath.Ext(wellFile)) + ext
}

// Info returns the header of a well.
func (m *Manager) Info(well string) (Info, error) {
	fnm, err := m.wellFile(well)
	if err != nil {
		return Info{}, err
	}
	info, _, err := readWellFile(fnm)
	return info, err
}

// Track returns the well path.
func (m *Manager) Track(well string) (Track, error) {
	fnm, err := m.wellFile(well)
	if err != nil {
		return Track{}, err
	}
	_, track, err := readWellFile(fnm)
	return track, err
}

// LogNames lists the logs of a well in storage order; Logs takes indices into this list.
func (m *Manager) LogNames(well string) ([]string, error) {
	fnm, err := m.wellFile(well)
	if err != nil {
		return nil, err
	}
	files, err := logFiles(fnm)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(files))
	for _, lf := range files {
		name, err := logName(lf.path)
		if err != nil {
			return nil, err
		}
		ret = append(ret, name)
	}
	return ret, nil
}

func (m *Manager) findLog(well, log string) (string, error) {
	fnm, err := m.wellFile(well)
	if err != nil {
		return "", err
	}
	files, err := logFiles(fnm)
	if err != nil {
		return "", err
	}
	for _, lf := range files {
		name, err := logName(lf.path)
		if err != nil {
			return "", err
		}
		if name == log {
			return lf.path, nil
		}
	}
	return "", fmt.Errorf("%w: well %q has no log %q", ErrNoSuchLog, well, log)
}

// Log reads a single log as stored: measured depths and values, without resampling or unit
// conversion.  Undefined values are NaN.
func (m *Manager) Log(well, log string) (dah, values []float64, err error) {
	path, err := m.findLog(well, log)
	if err != nil {
		return nil, nil, err
	}
	_, dah, values, err = readLog(path)
	return dah, values, err
}

// Markers returns the markers of a well ordered by MD.  A well without markers has none.
func (m *Manager) Markers(well string) (Markers, error) {
	fnm, err := m.wellFile(well)
	if err != nil {
		return Markers{}, err
	}
	return readMarkers(sideFile(fnm, markerExt))
}
