// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package iopar implements OpendTect parameter sets: ordered key/value lists as stored in one
// ascistream block.
package iopar

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/opendtect/odgo/pkg/ascistream"
)

// MultiSeparator separates the elements of a multi-valued entry ("1`2`3").
const MultiSeparator = "`"

// Par is an ordered parameter set.  The zero value is an empty set ready for use.
type Par struct {
	Name string
	kvs  []ascistream.KV
}

func FromKVs(name string, kvs []ascistream.KV) *Par {
	ret := &Par{Name: name}
	for _, kv := range kvs {
		ret.Set(kv.Key, kv.Value)
	}
	return ret
}

// Read parses the first block of an ascistream.
func Read(r io.Reader, name string) (*Par, ascistream.Header, error) {
	rd, err := ascistream.NewReader(r, name)
	if err != nil {
		return nil, ascistream.Header{}, err
	}
	block, err := rd.NextBlock()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, rd.Header(), err
	}
	return FromKVs(rd.Header().FileType, block), rd.Header(), nil
}

// ReadFile parses the first block of the named file.
func ReadFile(filename string) (*Par, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	par, _, err := Read(fh, filename)
	if err != nil {
		return nil, err
	}
	return par, nil
}

// ReadFromFile returns a single value from the first block of the named file.
func ReadFromFile(filename, key string) (string, error) {
	par, err := ReadFile(filename)
	if err != nil {
		return "", err
	}
	val, ok := par.Get(key)
	if !ok {
		return "", &fs.PathError{
			Op:   "read iopar",
			Path: filename,
			Err:  fmt.Errorf("no key %q", key),
		}
	}
	return val, nil
}

// Write writes the set as a complete ascistream with a single block.
func (p *Par) Write(w io.Writer, fileType string) error {
	aw := ascistream.NewWriter(w)
	if err := aw.WriteHeader(fileType); err != nil {
		return err
	}
	if err := aw.WriteBlock(p.kvs); err != nil {
		return err
	}
	return aw.Flush()
}

func (p *Par) index(key string) int {
	for i, kv := range p.kvs {
		if kv.Key == key {
			return i
		}
	}
	return -1
}

func (p *Par) Get(key string) (string, bool) {
	if idx := p.index(key); idx >= 0 {
		return p.kvs[idx].Value, true
	}
	return "", false
}

// Set replaces the value of key in place, or appends it.
func (p *Par) Set(key, val string) {
	if idx := p.index(key); idx >= 0 {
		p.kvs[idx].Value = val
		return
	}
	p.kvs = append(p.kvs, ascistream.KV{Key: key, Value: val})
}

func (p *Par) Remove(key string) bool {
	idx := p.index(key)
	if idx < 0 {
		return false
	}
	p.kvs = append(p.kvs[:idx], p.kvs[idx+1:]...)
	return true
}

func (p *Par) Keys() []string {
	ret := make([]string, 0, len(p.kvs))
	for _, kv := range p.kvs {
		ret = append(ret, kv.Key)
	}
	return ret
}

func (p *Par) KVs() []ascistream.KV {
	return append([]ascistream.KV(nil), p.kvs...)
}

func (p *Par) Len() int { return len(p.kvs) }

// Subselect returns the entries "prefix.X" as a new set with keys "X".
func (p *Par) Subselect(prefix string) *Par {
	ret := &Par{Name: prefix}
	prefix += "."
	for _, kv := range p.kvs {
		if strings.HasPrefix(kv.Key, prefix) {
			ret.kvs = append(ret.kvs, ascistream.KV{Key: strings.TrimPrefix(kv.Key, prefix), Value: kv.Value})
		}
	}
	return ret
}

// Attr, SetAttr and AttrKeys let a Par serve as an attribute holder.

func (p *Par) Attr(key string) (string, bool) { return p.Get(key) }
func (p *Par) SetAttr(key, val string)        { p.Set(key, val) }
func (p *Par) AttrKeys() []string             { return p.Keys() }

func (p *Par) missing(key string) error {
	return fmt.Errorf("iopar %q: no key %q", p.Name, key)
}

func (p *Par) GetInt(key string) (int, error) {
	val, ok := p.Get(key)
	if !ok {
		return 0, p.missing(key)
	}
	return strconv.Atoi(strings.TrimSpace(val))
}

func (p *Par) GetFloat(key string) (float64, error) {
	val, ok := p.Get(key)
	if !ok {
		return 0, p.missing(key)
	}
	return strconv.ParseFloat(strings.TrimSpace(val), 64)
}

func (p *Par) GetBool(key string) (bool, error) {
	val, ok := p.Get(key)
	if !ok {
		return false, p.missing(key)
	}
	return ParseBool(val)
}

func (p *Par) GetFloats(key string) ([]float64, error) {
	val, ok := p.Get(key)
	if !ok {
		return nil, p.missing(key)
	}
	return ParseFloats(val)
}

// ParseBool accepts OpendTect's spellings of booleans: Yes/No, True/False, 1/0, in any case.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "yes", "y", "true", "t", "1":
		return true, nil
	case "no", "n", "false", "f", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %q", str)
	}
}

func FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// SplitMulti splits a multi-valued entry.  An empty string yields no elements.
func SplitMulti(str string) []string {
	if str == "" {
		return nil
	}
	parts := strings.Split(str, MultiSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func JoinMulti(parts []string) string {
	return strings.Join(parts, MultiSeparator)
}

func ParseFloats(str string) ([]float64, error) {
	parts := SplitMulti(str)
	ret := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// FormatFloat renders f in the shortest form that parses back exactly, avoiding exponents for
// the magnitudes of survey coordinates and depths.
func FormatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e15) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
