// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package oddb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/datawire/dlib/derror"

	"github.com/opendtect/odgo/pkg/ascistream"
	"github.com/opendtect/odgo/pkg/fsutil"
)

type Status string

const (
	StatusOK      Status = "OK"
	StatusMissing Status = "Missing"
)

// ObjectInfo describes one database object.  FileName is always absolute.
type ObjectInfo struct {
	ID       string            `json:"ID"                     yaml:"ID"`
	Name     string            `json:"Name"                   yaml:"Name"`
	Format   string            `json:"Format"                 yaml:"Format"`
	Group    string            `json:"TranslatorGroup"        yaml:"TranslatorGroup"`
	FileName string            `json:"File name"              yaml:"File name"`
	Status   Status            `json:"Status"                 yaml:"Status"`
	Extra    map[string]string `json:"Extra,omitempty"        yaml:"Extra,omitempty"`
}

// Get returns a field by the name OpendTect uses for it ("ID", "Name", "Format",
// "TranslatorGroup", "File name", "Status"), or an extra key of the object.
func (oi ObjectInfo) Get(field string) (string, bool) {
	switch field {
	case "ID":
		return oi.ID, true
	case "Name":
		return oi.Name, true
	case "Format":
		return oi.Format, true
	case "TranslatorGroup", "Group":
		return oi.Group, true
	case "File name", "File_name", "Filename":
		return oi.FileName, true
	case "Status":
		return string(oi.Status), true
	}
	val, ok := oi.Extra[field]
	return val, ok
}

func (d *objDir) info(e *entry) ObjectInfo {
	ret := ObjectInfo{
		ID:     d.key(e),
		Name:   e.name,
		Format: e.get(keyTranslator),
		Group:  e.get(keyGroup),
		Status: StatusMissing,
	}
	if fnm := e.get(keyFilename); fnm != "" {
		ret.FileName = fsutil.Resolve(d.path, fnm)
		if _, err := os.Stat(ret.FileName); err == nil {
			ret.Status = StatusOK
		}
	}
	for _, kv := range e.kvs {
		switch kv.Key {
		case keyGroup, keyTranslator, keyFilename:
			continue
		}
		if ret.Extra == nil {
			ret.Extra = make(map[string]string)
		}
		ret.Extra[kv.Key] = kv.Value
	}
	return ret
}

// objDirs reads every object directory of the survey.  Directories that cannot be read are
// reported together in the error, alongside the ones that could.
func (s *Survey) objDirs() ([]*objDir, error) {
	dirents, err := os.ReadDir(s.Dir())
	if err != nil {
		return nil, err
	}
	var ret []*objDir
	var errs derror.MultiError
	for _, de := range dirents {
		if !de.IsDir() {
			continue
		}
		path := filepath.Join(s.Dir(), de.Name())
		if !fsutil.IsFile(filepath.Join(path, omfName)) {
			continue
		}
		dir, err := readObjDir(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ret = append(ret, dir)
	}
	if len(errs) > 0 {
		return ret, errs
	}
	return ret, nil
}

func matchGroup(have, want string, all bool) bool {
	switch {
	case want == "" || have == want:
		return true
	case all:
		return strings.HasPrefix(have, want)
	default:
		return false
	}
}

func splitKey(key string) (dirID string, num int, ok bool) {
	idx := strings.LastIndexByte(key, '.')
	if idx <= 0 {
		return "", 0, false
	}
	num, err := strconv.Atoi(key[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return key[:idx], num, true
}

// keyLess orders keys by directory, then numerically by object number.
func keyLess(a, b string) bool {
	aDir, aNum, aOK := splitKey(a)
	bDir, bNum, bOK := splitKey(b)
	if !aOK || !bOK {
		return a < b
	}
	if aDir != bDir {
		return aDir < bDir
	}
	return aNum < bNum
}

// ObjectInfos lists the objects of translator group group, ordered by key.  With all, groups that
// start with group match too ("Seismic Data" also finds "Seismic Data 2D").
func (s *Survey) ObjectInfos(group string, all bool) ([]ObjectInfo, error) {
	dirs, err := s.objDirs()
	var ret []ObjectInfo
	for _, dir := range dirs {
		for _, e := range dir.entries {
			if matchGroup(e.get(keyGroup), group, all) {
				ret = append(ret, dir.info(e))
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return keyLess(ret[i].ID, ret[j].ID)
	})
	return ret, err
}

func (s *Survey) find(name, group string) (*objDir, *entry, error) {
	dirs, scanErr := s.objDirs()
	for _, dir := range dirs {
		for _, e := range dir.entries {
			if e.name == name && matchGroup(e.get(keyGroup), group, false) {
				return dir, e, nil
			}
		}
	}
	if group == "" {
		group = "any group"
	}
	if scanErr != nil {
		return nil, nil, fmt.Errorf("%w: %q (%s): %v", ErrNotFound, name, group, scanErr)
	}
	return nil, nil, fmt.Errorf("%w: %q (%s)", ErrNotFound, name, group)
}

// ObjectInfo looks an object up by name.  An empty group matches any group.
func (s *Survey) ObjectInfo(name, group string) (ObjectInfo, error) {
	dir, e, err := s.find(name, group)
	if err != nil {
		return ObjectInfo{}, err
	}
	return dir.info(e), nil
}

// ObjectInfoByKey looks an object up by its key.
func (s *Survey) ObjectInfoByKey(key string) (ObjectInfo, error) {
	dirID, num, ok := splitKey(key)
	if !ok {
		return ObjectInfo{}, fmt.Errorf("%w: invalid key %q", ErrNotFound, key)
	}
	dirs, scanErr := s.objDirs()
	for _, dir := range dirs {
		if dir.id != dirID {
			continue
		}
		for _, e := range dir.entries {
			if e.num == num {
				return dir.info(e), nil
			}
		}
	}
	if scanErr != nil {
		return ObjectInfo{}, fmt.Errorf("%w: key %q: %v", ErrNotFound, key, scanErr)
	}
	return ObjectInfo{}, fmt.Errorf("%w: key %q", ErrNotFound, key)
}

// FileLocation returns the full path of the file of the object with the given key.
func (s *Survey) FileLocation(key string) (string, error) {
	info, err := s.ObjectInfoByKey(key)
	if err != nil {
		return "", err
	}
	if info.FileName == "" {
		return "", fmt.Errorf("object %s (%q) has no file name", key, info.Name)
	}
	return info.FileName, nil
}

// HasObject reports whether an object of that name exists in group ("" for any group).
func (s *Survey) HasObject(name, group string) bool {
	_, _, err := s.find(name, group)
	return err == nil
}

// CreateObject registers a new object and returns the full path of the file the caller should
// write its data to.  When the name is taken in that group, it fails with ErrExists unless
// overwrite is set, in which case the existing entry is reused with the new translator.
func (s *Survey) CreateObject(name, group, translator string, overwrite bool) (string, error) {
	if name == "" || group == "" {
		return "", errors.New("create object: name and translator group are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dirs, scanErr := s.objDirs()
	for _, dir := range dirs {
		for _, e := range dir.entries {
			if e.name != name || e.get(keyGroup) != group {
				continue
			}
			if !overwrite {
				return "", fmt.Errorf("%w: %q (%s) is %s", ErrExists, name, group, dir.key(e))
			}
			e.set(keyTranslator, translator)
			if err := dir.write(); err != nil {
				return "", err
			}
			return fsutil.Resolve(dir.path, e.get(keyFilename)), nil
		}
	}

	sd := stdDirFor(group)
	var dir *objDir
	for _, d := range dirs {
		if d.id == sd.ID || filepath.Base(d.path) == sd.Name {
			dir = d
			break
		}
	}
	if dir == nil {
		path := filepath.Join(s.Dir(), sd.Name)
		if fsutil.IsFile(filepath.Join(path, omfName)) {
			// present but unreadable
			return "", fmt.Errorf("create object %q: %w", name, scanErr)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", err
		}
		dir = &objDir{
			path:   path,
			id:     sd.ID,
			header: []ascistream.KV{{Key: keyID, Value: sd.ID}},
		}
	}

	e := &entry{
		num:  dir.nextNum(),
		name: name,
	}
	fnm := dir.uniqueFileName(name, e.num, fileExtension(group, translator))
	e.kvs = []ascistream.KV{
		{Key: keyGroup, Value: group},
		{Key: keyTranslator, Value: translator},
		{Key: keyFilename, Value: fnm},
	}
	dir.entries = append(dir.entries, e)
	if err := dir.write(); err != nil {
		return "", err
	}
	return filepath.Join(dir.path, fnm), nil
}

// RemoveObject drops an object from the database and deletes its file.
func (s *Survey) RemoveObject(name, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir, e, err := s.find(name, group)
	if err != nil {
		return err
	}
	for i := range dir.entries {
		if dir.entries[i] == e {
			dir.entries = append(dir.entries[:i], dir.entries[i+1:]...)
			break
		}
	}
	if err := dir.write(); err != nil {
		return err
	}

	fnm := e.get(keyFilename)
	if fnm == "" {
		return nil
	}
	full := fsutil.Resolve(dir.path, fnm)
	fi, err := os.Stat(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case fi.IsDir():
		if !strings.HasPrefix(full, s.Dir()+string(filepath.Separator)) {
			return &fs.PathError{Op: "remove object", Path: full, Err: errors.New("directory outside the survey")}
		}
		return os.RemoveAll(full)
	default:
		return os.Remove(full)
	}
}

var (
	translatorExts = map[string]string{
		"CBVS":       "cbvs",
		"SEGYDirect": "sgydef",
		"Blocks":     "blocks",
		"HDF5":       "h5",
		"hdf5":       "h5",
	}
	groupExts = map[string]string{
		"Well":          "well",
		"Horizon":       "hor",
		"2D Horizon":    "hor",
		"Body":          "body",
		"PickSet Group": "pck",
		"Polygon":       "pck",
		"Fault":         "flt",
		"FaultStickSet": "fss",
	}
)

func fileExtension(group, translator string) string {
	if ext, ok := translatorExts[translator]; ok {
		return ext
	}
	if ext, ok := groupExts[group]; ok {
		return ext
	}
	if ext := cleanName(strings.ToLower(translator)); ext != "" {
		return ext
	}
	return "dat"
}

// cleanName replaces everything but ASCII letters, digits, '-', '_' and '.' by '_'.
func cleanName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
}

// uniqueFileName derives a file name from an object name that no other entry of the directory
// uses and that does not exist yet.
func (d *objDir) uniqueFileName(name string, num int, ext string) string {
	base := cleanName(name)
	if base == "" {
		base = "obj"
	}
	taken := func(fnm string) bool {
		for _, e := range d.entries {
			if strings.EqualFold(e.get(keyFilename), fnm) {
				return true
			}
		}
		_, err := os.Stat(filepath.Join(d.path, fnm))
		return err == nil
	}
	fnm := base + "." + ext
	if !taken(fnm) {
		return fnm
	}
	for i := num; ; i++ {
		fnm = fmt.Sprintf("%s_%d.%s", base, i, ext)
		if !taken(fnm) {
			return fnm
		}
	}
}
