// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package oddb

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/opendtect/odgo/pkg/ascistream"
	"github.com/opendtect/odgo/pkg/fsutil"
)

const (
	omfName     = ".omf"
	omfFileType = "Object Management file"

	keyID         = "ID"
	keyGroup      = "Group"
	keyTranslator = "Translator"
	keyFilename   = "Filename"
)

// entry is one object of an object directory, kept as read so that keys odgo does not know
// about survive a rewrite.
type entry struct {
	num  int
	name string
	kvs  []ascistream.KV // everything after the "<num>: <name>" line
}

func (e *entry) get(key string) string {
	for _, kv := range e.kvs {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

func (e *entry) set(key, val string) {
	for i := range e.kvs {
		if e.kvs[i].Key == key {
			e.kvs[i].Value = val
			return
		}
	}
	e.kvs = append(e.kvs, ascistream.KV{Key: key, Value: val})
}

// objDir is a database directory of a survey with its parsed .omf.
type objDir struct {
	path    string
	id      string
	header  []ascistream.KV
	entries []*entry
}

func (d *objDir) omfPath() string { return filepath.Join(d.path, omfName) }

func (d *objDir) key(e *entry) string { return fmt.Sprintf("%s.%d", d.id, e.num) }

func (d *objDir) nextNum() int {
	ret := 1
	for _, e := range d.entries {
		if e.num >= ret {
			ret = e.num + 1
		}
	}
	return ret
}

func readObjDir(path string) (*objDir, error) {
	fh, err := fsutil.Open("read object directory", filepath.Join(path, omfName))
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	rd, err := ascistream.NewReader(fh, fh.Name())
	if err != nil {
		return nil, err
	}
	header, err := rd.NextBlock()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%s: missing %s block", fh.Name(), keyID)
		}
		return nil, err
	}
	dir := &objDir{path: path, header: header}
	for _, kv := range header {
		if kv.Key == keyID {
			dir.id = kv.Value
		}
	}
	if dir.id == "" {
		return nil, &ascistream.ParseError{Name: fh.Name(), Line: rd.Line(), Msg: "no directory ID"}
	}

	for {
		block, err := rd.NextBlock()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(block) == 0 {
			continue
		}
		num, err := strconv.Atoi(block[0].Key)
		if err != nil || num <= 0 {
			return nil, &ascistream.ParseError{
				Name: fh.Name(),
				Line: rd.Line(),
				Msg:  fmt.Sprintf("invalid object number %q", block[0].Key),
			}
		}
		dir.entries = append(dir.entries, &entry{
			num:  num,
			name: block[0].Value,
			kvs:  block[1:],
		})
	}
	return dir, nil
}

func (d *objDir) write() error {
	return fsutil.WriteFileAtomic(d.omfPath(), 0o644, func(w io.Writer) error {
		aw := ascistream.NewWriter(w)
		if err := aw.WriteHeader(omfFileType); err != nil {
			return err
		}
		if err := aw.WriteBlock(d.header); err != nil {
			return err
		}
		for _, e := range d.entries {
			if err := aw.WriteKV(strconv.Itoa(e.num), e.name); err != nil {
				return err
			}
			if err := aw.WriteBlock(e.kvs); err != nil {
				return err
			}
		}
		return aw.Flush()
	})
}
