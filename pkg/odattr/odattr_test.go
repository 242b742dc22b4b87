// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odattr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/iopar"
	"github.com/opendtect/odgo/pkg/odattr"
)

func TestGetters(t *testing.T) {
	t.Parallel()
	h := odattr.Map{
		"Name":        "F3 demo",
		"Is 2D":       "No",
		"Version":     "7",
		"Velocity":    "2000.5",
		"Inl range":   "100`750`1",
		"Z range":     "0`1.848`0.004",
		"Corner":      "1`2",
		"Bad number":  "seven",
		"Three parts": "1`2`3`4",
	}

	name, err := odattr.GetText(h, "Name")
	require.NoError(t, err)
	assert.Equal(t, "F3 demo", name)

	is2D, err := odattr.GetBool(h, "Is 2D")
	require.NoError(t, err)
	assert.False(t, is2D)

	ver, err := odattr.GetInt(h, "Version")
	require.NoError(t, err)
	assert.Equal(t, 7, ver)

	vel, err := odattr.GetFloat(h, "Velocity")
	require.NoError(t, err)
	assert.Equal(t, 2000.5, vel)

	inl, err := odattr.GetInts(h, "Inl range")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 750, 1}, inl)

	zr, err := odattr.GetInterval(h, "Z range")
	require.NoError(t, err)
	assert.Equal(t, odattr.Interval{Start: 0, Stop: 1.848, Step: 0.004, HasStep: true}, zr)

	corner, err := odattr.GetInterval(h, "Corner")
	require.NoError(t, err)
	assert.Equal(t, odattr.Interval{Start: 1, Stop: 2}, corner)

	_, err = odattr.GetText(h, "Missing")
	assert.ErrorIs(t, err, odattr.ErrNoAttr)
	assert.EqualError(t, err, `attribute "Missing": no such attribute`)

	_, err = odattr.GetInt(h, "Bad number")
	assert.EqualError(t, err, `attribute "Bad number": strconv.Atoi: parsing "seven": invalid syntax`)

	_, err = odattr.GetInterval(h, "Three parts")
	assert.EqualError(t, err, `attribute "Three parts": interval needs 2 or 3 values, got 4`)
}

func TestSettersOnPar(t *testing.T) {
	t.Parallel()
	par := &iopar.Par{}
	odattr.SetText(par, "Name", "Penobscot")
	odattr.SetBool(par, "Is 2D", true)
	odattr.SetInt(par, "Version", 3)
	odattr.SetFloat(par, "Velocity", 1500.25)
	odattr.SetInts(par, "Crl range", []int{1000, 1600, 2})
	odattr.SetFloats(par, "Origin", []float64{606554, 6080126.5})
	odattr.SetInterval(par, "Z range", odattr.Interval{Start: 0, Stop: 6})

	assert.Equal(t, map[string]string{
		"Name":      "Penobscot",
		"Is 2D":     "Yes",
		"Version":   "3",
		"Velocity":  "1500.25",
		"Crl range": "1000`1600`2",
		"Origin":    "606554`6080126.5",
		"Z range":   "0`6",
	}, odattr.Dict(par))
	assert.Equal(t, []string{"Name", "Is 2D", "Version", "Velocity", "Crl range", "Origin", "Z range"},
		par.AttrKeys())

	floats, err := odattr.GetFloats(par, "Origin")
	require.NoError(t, err)
	assert.Equal(t, []float64{606554, 6080126.5}, floats)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		In  interface{}
		Out string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("abc\x00\x00"), "abc"},
		{true, "Yes"},
		{int32(-4), "-4"},
		{float32(0.5), "0.5"},
		{[]int64{1, 2, 3}, "1`2`3"},
		{[2]float64{0, 1.848}, "0`1.848"},
		{[]string{"a", "b"}, "a`b"},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.Out, odattr.FormatValue(tc.In), "%#v", tc.In)
	}
}
