// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package ascistream reads and writes OpendTect's keyed ascii file format.
//
// Survey definitions, object directories, user settings, well tracks, well logs and markers all
// share this layout:
//
//	dTect V7.0
//	Well
//	Mon 20 Apr 2020, 13:59:54
//	!
//	Key: value
//	Other key: value
//	!
//
// The first three lines are the header (product and version, file type, timestamp) and are closed
// by a lone "!".  What follows is a sequence of blocks of "key: value" lines, each closed by "!" or
// by the end of the file.  Some file types carry bulk data (track points, log samples) after the
// last block they declare; use Reader.Rest to get at it.
package ascistream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	Separator      = "!"
	DefaultProduct = "dTect"
	DefaultVersion = "V7.0"
)

var knownProducts = []string{"dTect", "dGB-GDI"}

type Header struct {
	Product  string // "dTect"
	Version  string // "V7.0"
	FileType string // "Well", "Object Management file", ...
	Date     string
}

type KV struct {
	Key   string
	Value string
}

type ParseError struct {
	Name string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

// Reader reads the blocks of an ascistream after its header.
type Reader struct {
	name   string
	rd     *bufio.Reader
	lineno int
	hdr    Header
	eof    bool
}

// NewReader reads and validates the header from r.  The name is only used in error messages.
func NewReader(r io.Reader, name string) (*Reader, error) {
	ret := &Reader{
		name: name,
		rd:   bufio.NewReader(r),
	}
	if err := ret.readHeader(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *Reader) Header() Header { return r.hdr }

// Line returns the number of the last line consumed.
func (r *Reader) Line() int { return r.lineno }

func (r *Reader) errorf(format string, args ...interface{}) error {
	return &ParseError{
		Name: r.name,
		Line: r.lineno,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (r *Reader) readLine() (string, error) {
	if r.eof {
		return "", io.EOF
	}
	line, err := r.rd.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		r.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	r.lineno++
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *Reader) readHeader() error {
	var lines [4]string
	for i := range lines {
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return r.errorf("truncated header")
			}
			return err
		}
		lines[i] = strings.TrimSpace(line)
	}
	product, version := lines[0], ""
	if sp := strings.IndexByte(product, ' '); sp >= 0 {
		product, version = product[:sp], strings.TrimSpace(product[sp+1:])
	}
	known := false
	for _, p := range knownProducts {
		if product == p {
			known = true
			break
		}
	}
	if !known {
		return &ParseError{Name: r.name, Line: 1, Msg: fmt.Sprintf("not an OpendTect file: %q", lines[0])}
	}
	if lines[3] != Separator {
		return r.errorf("header not terminated by %q", Separator)
	}
	r.hdr = Header{
		Product:  product,
		Version:  version,
		FileType: lines[1],
		Date:     lines[2],
	}
	return nil
}

// NextBlock returns the key/value pairs up to the next separator.  It returns io.EOF once there
// are no more lines.
func (r *Reader) NextBlock() ([]KV, error) {
	var ret []KV
	for {
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) && ret != nil {
				return ret, nil
			}
			return nil, err
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == Separator {
			if ret == nil {
				ret = []KV{}
			}
			return ret, nil
		}
		if trimmed == "" {
			continue
		}
		ret = append(ret, ParseKV(trimmed))
	}
}

// Rest returns the unread remainder of the stream.
func (r *Reader) Rest() io.Reader {
	if r.eof {
		return strings.NewReader("")
	}
	return r.rd
}

// ParseKV splits a "key: value" line at the first colon.  A line without a colon is a key with an
// empty value.
func ParseKV(line string) KV {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return KV{Key: strings.TrimSpace(line)}
	}
	return KV{
		Key:   strings.TrimSpace(line[:idx]),
		Value: strings.TrimSpace(line[idx+1:]),
	}
}

// FormatTime renders t the way OpendTect stamps its files and log lines, e.g.
// "Mon 20 Apr 2020, 13:59:54".  With milli the microseconds are appended, without abbr the day
// and month names are spelled out.
func FormatTime(t time.Time, milli, abbr bool) string {
	layout := "Mon 02 Jan"
	if !abbr {
		layout = "Monday 02 January"
	}
	layout += " 2006, 15:04:05"
	if milli {
		layout += ".000000"
	}
	return t.Format(layout)
}
