// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Header returns an ascistream header for a file of the given type.
func Header(fileType string) string {
	return "dTect V7.0\n" + fileType + "\nMon 20 Apr 2020, 13:59:54\n!\n"
}

// Touch creates an empty file, and any missing parent directories.
func Touch(t *testing.T, path string) string {
	t.Helper()
	WriteFile(t, path, "")
	return path
}

func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// Survey is an OpendTect survey tree below a temporary data root.
type Survey struct {
	t    *testing.T
	Root string
	Name string // directory name
	dirs map[string]*omfDir
}

type omfDir struct {
	id      string
	entries []omfEntry
}

type omfEntry struct {
	num      int
	name     string
	group    string
	trl      string
	filename string
}

// NewSurvey creates <tmp>/<dirName>/.survey with the given user-visible name.
func NewSurvey(t *testing.T, dirName, name string) *Survey {
	t.Helper()
	s := &Survey{
		t:    t,
		Root: t.TempDir(),
		Name: dirName,
		dirs: make(map[string]*omfDir),
	}
	s.Write(".survey", Header("Survey Info")+"Name: "+name+"\n!\n")
	return s
}

func (s *Survey) Dir() string {
	return filepath.Join(s.Root, s.Name)
}

// Write writes a file relative to the survey directory and returns its full path.
func (s *Survey) Write(rel, content string) string {
	s.t.Helper()
	return WriteFile(s.t, filepath.Join(s.Dir(), rel), content)
}

// Register adds an object to the .omf of a database directory and returns its key.
func (s *Survey) Register(dir, dirID, name, group, trl, filename string) string {
	s.t.Helper()
	od, ok := s.dirs[dir]
	if !ok {
		od = &omfDir{id: dirID}
		s.dirs[dir] = od
	}
	num := len(od.entries) + 1
	od.entries = append(od.entries, omfEntry{num, name, group, trl, filename})

	var buf strings.Builder
	buf.WriteString(Header("Object Management file"))
	fmt.Fprintf(&buf, "ID: %s\n!\n", od.id)
	for _, e := range od.entries {
		fmt.Fprintf(&buf, "%d: %s\nGroup: %s\nTranslator: %s\nFilename: %s\n!\n",
			e.num, e.name, e.group, e.trl, e.filename)
	}
	s.Write(filepath.Join(dir, ".omf"), buf.String())
	return fmt.Sprintf("%s.%d", od.id, num)
}

// Dirs lists the database directories registered so far.
func (s *Survey) Dirs() []string {
	ret := make([]string, 0, len(s.dirs))
	for dir := range s.dirs {
		ret = append(ret, dir)
	}
	sort.Strings(ret)
	return ret
}
