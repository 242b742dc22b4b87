// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odattr

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/datawire/dlib/derror"
	"github.com/scigolib/hdf5"

	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/iopar"
)

var (
	ErrGroupWrite = errors.New("attributes of existing hdf5 groups cannot be changed")
	ErrWriteCheck = errors.New("hdf5 file did not read back as written")
)

// H5Object is an hdf5 group or dataset with its attributes rendered as OpendTect text.  SetAttr
// changes the in-memory copy and marks the key; Save writes the marked keys back to File.
type H5Object struct {
	File  string
	Path  string
	Kind  string // "group" or "dataset"
	Attrs Map

	changed map[string]struct{}
}

func (o *H5Object) Attr(key string) (string, bool) { return o.Attrs.Attr(key) }
func (o *H5Object) AttrKeys() []string             { return o.Attrs.AttrKeys() }

func (o *H5Object) SetAttr(key, val string) {
	o.Attrs.SetAttr(key, val)
	if o.changed == nil {
		o.changed = make(map[string]struct{})
	}
	o.changed[key] = struct{}{}
}

// Save writes the attributes set since the object was read to its file.
func (o *H5Object) Save() error {
	if len(o.changed) == 0 {
		return nil
	}
	attrs := make(Map, len(o.changed))
	for key := range o.changed {
		attrs[key] = o.Attrs[key]
	}
	if err := WriteH5Attrs(o.File, o.Path, attrs); err != nil {
		return err
	}
	o.changed = nil
	return nil
}

// ReadH5 walks an hdf5 file and returns every group and dataset, sorted by path.  Group paths
// carry no trailing slash, except for the root group "/".  Attributes that cannot be decoded are
// reported together after the walk; the objects are still returned.
func ReadH5(filename string) ([]*H5Object, error) {
	file, err := hdf5.Open(filename)
	if err != nil {
		return nil, &fs.PathError{Op: "open hdf5", Path: filename, Err: err}
	}
	defer file.Close()

	var ret []*H5Object
	var errs derror.MultiError
	file.Walk(func(path string, obj hdf5.Object) {
		o := &H5Object{File: filename, Path: path, Attrs: make(Map)}
		addAttr := func(name string, val interface{}, err error) {
			if err != nil {
				errs = append(errs, fmt.Errorf("%s@%s: %w", o.Path, name, err))
				return
			}
			o.Attrs[name] = FormatValue(val)
		}
		switch v := obj.(type) {
		case *hdf5.Group:
			o.Kind = "group"
			if path != "/" {
				o.Path = strings.TrimSuffix(path, "/")
			}
			attrs, err := v.Attributes()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", o.Path, err))
			}
			for _, attr := range attrs {
				val, err := attr.ReadValue()
				addAttr(attr.Name, val, err)
			}
		case *hdf5.Dataset:
			o.Kind = "dataset"
			attrs, err := v.Attributes()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", o.Path, err))
			}
			for _, attr := range attrs {
				val, err := attr.ReadValue()
				addAttr(attr.Name, val, err)
			}
		default:
			return
		}
		ret = append(ret, o)
	})
	sort.Slice(ret, func(i, j int) bool { return ret[i].Path < ret[j].Path })
	if len(errs) > 0 {
		return ret, &fs.PathError{Op: "read hdf5 attributes", Path: filename, Err: errs}
	}
	return ret, nil
}

// EncodeValue converts OpendTect text to the value stored in hdf5: whole numbers become int64,
// other numbers float64, multi-values slices of those; anything else stays a string.
func EncodeValue(str string) interface{} {
	parts := iopar.SplitMulti(str)
	if len(parts) == 0 {
		return str
	}
	if ints, ok := parseAll(parts, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }); ok {
		if len(ints) == 1 {
			return ints[0]
		}
		return ints
	}
	if floats, ok := parseAll(parts, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }); ok {
		if len(floats) == 1 {
			return floats[0]
		}
		return floats
	}
	return str
}

func parseAll[T any](parts []string, parse func(string) (T, error)) ([]T, bool) {
	ret := make([]T, len(parts))
	for i, part := range parts {
		v, err := parse(part)
		if err != nil {
			return nil, false
		}
		ret[i] = v
	}
	return ret, true
}

// h5Content is what an hdf5 file holds per object path, for checking a rewrite against.
type h5Content map[string]h5Entry

type h5Entry struct {
	Kind    string
	Attrs   Map
	Data    []float64
	DataErr string
}

func readH5Content(filename string) (h5Content, error) {
	objs, err := ReadH5(filename)
	if err != nil {
		return nil, err
	}
	ret := make(h5Content, len(objs))
	for _, obj := range objs {
		ret[obj.Path] = h5Entry{Kind: obj.Kind, Attrs: obj.Attrs}
	}

	file, err := hdf5.Open(filename)
	if err != nil {
		return nil, &fs.PathError{Op: "open hdf5", Path: filename, Err: err}
	}
	defer file.Close()
	file.Walk(func(path string, obj hdf5.Object) {
		ds, ok := obj.(*hdf5.Dataset)
		if !ok {
			return
		}
		entry := ret[path]
		data, err := ds.Read()
		if err != nil {
			entry.DataErr = err.Error()
		}
		entry.Data = data
		ret[path] = entry
	})
	return ret, nil
}

// checkRewrite compares the file content after setting attrs on objPath with the content before.
func checkRewrite(before, after h5Content, objPath string, attrs Map) error {
	if len(after) != len(before) {
		return fmt.Errorf("%d objects instead of %d", len(after), len(before))
	}
	for path, want := range before {
		got, ok := after[path]
		if !ok {
			return fmt.Errorf("%s: gone", path)
		}
		if path == objPath {
			updated := make(Map, len(want.Attrs)+len(attrs))
			for key, val := range want.Attrs {
				updated[key] = val
			}
			for key, val := range attrs {
				updated[key] = FormatValue(EncodeValue(val))
			}
			want.Attrs = updated
		}
		switch {
		case got.Kind != want.Kind:
			return fmt.Errorf("%s: %s instead of %s", path, got.Kind, want.Kind)
		case !reflect.DeepEqual(got.Attrs, want.Attrs):
			return fmt.Errorf("%s: attributes differ", path)
		case got.DataErr != want.DataErr || !sameSamples(got.Data, want.Data):
			return fmt.Errorf("%s: data differs", path)
		}
	}
	return nil
}

func sameSamples(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// WriteH5Attrs stores attrs on the dataset objPath of an existing hdf5 file, replacing
// attributes with the same name.  Values are converted with EncodeValue.
//
// The hdf5 library rewrites object headers in place, so a header that grows can run into the
// object stored after it.  The attributes are therefore written to a copy of the file, which
// replaces the original only if every object, attribute and sample reads back as expected;
// otherwise the error wraps ErrWriteCheck and the file is unchanged.
func WriteH5Attrs(filename, objPath string, attrs Map) error {
	if objPath != "/" {
		objPath = strings.TrimSuffix(objPath, "/")
	}
	before, err := readH5Content(filename)
	if err != nil {
		return err
	}
	switch obj, ok := before[objPath]; {
	case !ok:
		return &fs.PathError{Op: "write hdf5 attributes", Path: filename,
			Err: fmt.Errorf("no object %q: %w", objPath, fs.ErrNotExist)}
	case obj.Kind != "dataset":
		return &fs.PathError{Op: "write hdf5 attributes", Path: filename,
			Err: fmt.Errorf("%s: %w", objPath, ErrGroupWrite)}
	}

	return fsutil.ReplaceFile(filename, func(tmp string) error {
		if err := writeDatasetAttrs(tmp, objPath, attrs); err != nil {
			return &fs.PathError{Op: "write hdf5 attributes", Path: filename, Err: err}
		}
		after, err := readH5Content(tmp)
		if err == nil {
			err = checkRewrite(before, after, objPath, attrs)
		}
		if err != nil {
			return &fs.PathError{Op: "write hdf5 attributes", Path: filename,
				Err: fmt.Errorf("%w: %v", ErrWriteCheck, err)}
		}
		return nil
	})
}

func writeDatasetAttrs(filename, objPath string, attrs Map) (err error) {
	fw, err := hdf5.OpenForWrite(filename, hdf5.OpenReadWrite)
	if err != nil {
		return err
	}
	defer func() {
		if _err := fw.Close(); _err != nil && err == nil {
			err = _err
		}
	}()
	ds, err := fw.OpenDataset(objPath)
	if err != nil {
		return err
	}
	for _, key := range attrs.AttrKeys() {
		if err := ds.WriteAttribute(key, EncodeValue(attrs[key])); err != nil {
			return fmt.Errorf("%s@%s: %w", objPath, key, err)
		}
	}
	return nil
}

// FormatValue renders a decoded attribute value as OpendTect text: scalars as-is, byte slices as
// strings, other slices and arrays joined with the multi-value separator.
func FormatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return strings.TrimRight(string(v), "\x00")
	case bool:
		return iopar.FormatBool(v)
	case float32:
		return iopar.FormatFloat(float64(v))
	case float64:
		return iopar.FormatFloat(v)
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return iopar.JoinMulti(parts)
	default:
		return fmt.Sprint(val)
	}
}
