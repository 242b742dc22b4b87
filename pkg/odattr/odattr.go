// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odattr reads and writes typed metadata attributes the way OpendTect encodes them.
//
// OpendTect stores metadata as text, on hdf5 groups and datasets as well as in parameter files.
// Numbers are plain decimal text, booleans are "Yes"/"No", and multi-valued entries are joined
// with a back-quote ("0`1.848`0.004").  The getters and setters in this package convert between
// that encoding and Go values on anything that implements Holder.
package odattr

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/opendtect/odgo/pkg/iopar"
)

var ErrNoAttr = errors.New("no such attribute")

// A Holder is anything that carries text attributes.
type Holder interface {
	Attr(key string) (string, bool)
	SetAttr(key, val string)
	AttrKeys() []string
}

var (
	_ Holder = Map(nil)
	_ Holder = (*iopar.Par)(nil)
	_ Holder = (*H5Object)(nil)
)

// Map is an unordered Holder; AttrKeys reports keys sorted.
type Map map[string]string

func (m Map) Attr(key string) (string, bool) {
	val, ok := m[key]
	return val, ok
}

func (m Map) SetAttr(key, val string) { m[key] = val }

func (m Map) AttrKeys() []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("attribute %q: %v", e.Key, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Interval is a start/stop pair with an optional step, as in "0`1.848`0.004".
type Interval struct {
	Start, Stop float64
	Step        float64
	HasStep     bool
}

func (iv Interval) String() string {
	parts := []string{iopar.FormatFloat(iv.Start), iopar.FormatFloat(iv.Stop)}
	if iv.HasStep {
		parts = append(parts, iopar.FormatFloat(iv.Step))
	}
	return iopar.JoinMulti(parts)
}

func GetText(h Holder, key string) (string, error) {
	val, ok := h.Attr(key)
	if !ok {
		return "", &Error{Key: key, Err: ErrNoAttr}
	}
	return val, nil
}

func GetBool(h Holder, key string) (bool, error) {
	val, err := GetText(h, key)
	if err != nil {
		return false, err
	}
	ret, err := iopar.ParseBool(val)
	if err != nil {
		return false, &Error{Key: key, Err: err}
	}
	return ret, nil
}

func GetInt(h Holder, key string) (int, error) {
	val, err := GetText(h, key)
	if err != nil {
		return 0, err
	}
	ret, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, &Error{Key: key, Err: err}
	}
	return ret, nil
}

func GetFloat(h Holder, key string) (float64, error) {
	val, err := GetText(h, key)
	if err != nil {
		return 0, err
	}
	ret, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, &Error{Key: key, Err: err}
	}
	return ret, nil
}

func GetInts(h Holder, key string) ([]int, error) {
	val, err := GetText(h, key)
	if err != nil {
		return nil, err
	}
	parts := iopar.SplitMulti(val)
	ret := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &Error{Key: key, Err: err}
		}
		ret = append(ret, n)
	}
	return ret, nil
}

func GetFloats(h Holder, key string) ([]float64, error) {
	val, err := GetText(h, key)
	if err != nil {
		return nil, err
	}
	ret, err := iopar.ParseFloats(val)
	if err != nil {
		return nil, &Error{Key: key, Err: err}
	}
	return ret, nil
}

func GetInterval(h Holder, key string) (Interval, error) {
	vals, err := GetFloats(h, key)
	if err != nil {
		return Interval{}, err
	}
	switch len(vals) {
	case 2:
		return Interval{Start: vals[0], Stop: vals[1]}, nil
	case 3:
		return Interval{Start: vals[0], Stop: vals[1], Step: vals[2], HasStep: true}, nil
	default:
		return Interval{}, &Error{Key: key, Err: fmt.Errorf("interval needs 2 or 3 values, got %d", len(vals))}
	}
}

// Dict copies every attribute of h.
func Dict(h Holder) map[string]string {
	keys := h.AttrKeys()
	ret := make(map[string]string, len(keys))
	for _, key := range keys {
		ret[key], _ = h.Attr(key)
	}
	return ret
}

func SetText(h Holder, key, val string) { h.SetAttr(key, val) }

func SetBool(h Holder, key string, val bool) { h.SetAttr(key, iopar.FormatBool(val)) }

func SetInt(h Holder, key string, val int) { h.SetAttr(key, strconv.Itoa(val)) }

func SetFloat(h Holder, key string, val float64) { h.SetAttr(key, iopar.FormatFloat(val)) }

func SetInts(h Holder, key string, vals []int) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	h.SetAttr(key, iopar.JoinMulti(parts))
}

func SetFloats(h Holder, key string, vals []float64) {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = iopar.FormatFloat(v)
	}
	h.SetAttr(key, iopar.JoinMulti(parts))
}

func SetInterval(h Holder, key string, iv Interval) { h.SetAttr(key, iv.String()) }
