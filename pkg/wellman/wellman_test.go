// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package wellman_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/oddb"
	"github.com/opendtect/odgo/pkg/testutil"
	"github.com/opendtect/odgo/pkg/wellman"
)

func binaryLog(t *testing.T, order binary.ByteOrder, pairs ...float32) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, order, pairs))
	return buf.String()
}

func fixture(t *testing.T) *wellman.Manager {
	t.Helper()
	fx := testutil.NewSurvey(t, "F3_Demo", "F3 Demo")
	fx.Register("WellInfo", "100050", "F02-1", "Well", "dGB", "F02-1.well")
	fx.Register("WellInfo", "100050", "F03-4", "Well", "dGB", "F03-4.well")
	fx.Register("WellInfo", "100050", "Ghost", "Well", "dGB", "Ghost.well")

	fx.Write("WellInfo/F02-1.well", testutil.Header("Well")+
		"Name: F02-1\n"+
		"Unique Well ID: 12345\n"+
		"Operator: dGB\n"+
		"State: Groningen\n"+
		"County:\n"+
		"Surface coordinate: (606554,6080126.5)\n"+
		"Replacement velocity: 2000\n"+
		"Ground level elevation: 25.5\n"+
		"!\n"+
		"606554 6080126.5 -30 0\n"+
		"606554 6080126.5 970 1000\n"+
		"606600 6080200 1960 2000\n")

	fx.Write("WellInfo/F02-1.wll1", testutil.Header("Well Log")+
		"Name: GR\nUnit of Measure: API\nStorage type: Ascii\n!\n"+
		"100 1\n100.2 3\n100.6 5\n101.4 7\n")
	fx.Write("WellInfo/F02-1.wll2", testutil.Header("Well Log")+
		"Name: Sonic\nUnit of Measure: us/ft\nStorage type: Binary\n!\n"+
		binaryLog(t, binary.LittleEndian, 100.9, 10, 101.1, 1e30))
	fx.Write("WellInfo/F02-1.wll10", testutil.Header("Well Log")+
		"Name: Density\nStorage type: Swapped\n!\n"+
		binaryLog(t, binary.BigEndian, 200, 2.5, 201, 2.25))
	fx.Write("WellInfo/F02-1.wll3.bak", "ignored")
	fx.Write("WellInfo/F02-10.wll1", testutil.Header("Well Log")+"Name: Other well\n!\n")

	fx.Write("WellInfo/F02-1.wlm", testutil.Header("Well Markers")+
		"1.Name: FS8\n1.Depth along hole: 1550.5\n1.Color: 255`0`0\n"+
		"2.Name: Truncation\n2.Depth along hole: 620\n2.Color: 0`128`255`0\n"+
		"!\n")

	fx.Write("WellInfo/F03-4.well", testutil.Header("Well")+"Name: F03-4\n!\n")

	surv, err := oddb.Open(fx.Root, fx.Name)
	require.NoError(t, err)
	return wellman.NewManager(surv)
}

func TestDBAccess(t *testing.T) {
	t.Parallel()
	m := fixture(t)

	names, err := m.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"F02-1", "F03-4", "Ghost"}, names)

	key, err := m.DBKey("F03-4")
	require.NoError(t, err)
	assert.Equal(t, "100050.2", key)

	name, err := m.Name("100050.1")
	require.NoError(t, err)
	assert.Equal(t, "F02-1", name)

	_, err = m.DBKey("nope")
	assert.ErrorIs(t, err, oddb.ErrNotFound)

	list, err := m.DBList(false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, oddb.StatusMissing, list[2].Status)

	_, err = m.Survey.CreateObject("New", wellman.Group, "dGB", false)
	require.NoError(t, err)
	list, err = m.DBList(false)
	require.NoError(t, err)
	assert.Len(t, list, 3, "served from cache")
	list, err = m.DBList(true)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestDBAccessBrokenDir(t *testing.T) {
	t.Parallel()
	m := fixture(t)
	testutil.WriteFile(t, filepath.Join(m.Survey.Dir(), "Locations", ".omf"), "garbage\n")

	list, err := m.DBList(true)
	assert.Error(t, err)
	assert.Len(t, list, 3)

	names, err := m.Names()
	assert.Error(t, err)
	assert.Equal(t, []string{"F02-1", "F03-4", "Ghost"}, names)

	list, err = m.DBList(false)
	assert.NoError(t, err, "served from cache")
	assert.Len(t, list, 3)
}

func TestInfoAndTrack(t *testing.T) {
	t.Parallel()
	m := fixture(t)

	info, err := m.Info("F02-1")
	require.NoError(t, err)
	assert.Equal(t, wellman.Info{
		Name:                "F02-1",
		UWID:                "12345",
		Operator:            "dGB",
		State:               "Groningen",
		X:                   606554,
		Y:                   6080126.5,
		ReplacementVelocity: 2000,
		GroundElevation:     25.5,
	}, info)

	track, err := m.Track("F02-1")
	require.NoError(t, err)
	assert.Equal(t, wellman.Track{
		MD:    []float64{0, 1000, 2000},
		TVDSS: []float64{-30, 970, 1960},
		X:     []float64{606554, 606554, 606600},
		Y:     []float64{6080126.5, 6080126.5, 6080200},
	}, track)

	track, err = m.Track("F03-4")
	require.NoError(t, err)
	assert.Empty(t, track.MD)

	_, err = m.Info("Ghost")
	assert.Error(t, err)
}

func TestLogs(t *testing.T) {
	t.Parallel()
	m := fixture(t)

	names, err := m.LogNames("F02-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"GR", "Sonic", "Density"}, names)

	names, err = m.LogNames("F03-4")
	require.NoError(t, err)
	assert.Empty(t, names)

	dah, vals, err := m.Log("F02-1", "GR")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100.2, 100.6, 101.4}, dah)
	assert.Equal(t, []float64{1, 3, 5, 7}, vals)

	dah, vals, err = m.Log("F02-1", "Sonic")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{100.9, 101.1}, dah, 1e-4)
	require.Len(t, vals, 2)
	assert.Equal(t, 10.0, vals[0])
	assert.True(t, math.IsNaN(vals[1]))

	dah, vals, err = m.Log("F02-1", "Density")
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 201}, dah)
	assert.Equal(t, []float64{2.5, 2.25}, vals)

	_, _, err = m.Log("F02-1", "Porosity")
	assert.ErrorIs(t, err, wellman.ErrNoSuchLog)
}

func TestResampledLogs(t *testing.T) {
	t.Parallel()
	m := fixture(t)

	set, err := m.Logs("F02-1", []int{0, 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"GR", "Sonic"}, set.Names)
	assert.InDeltaSlice(t, []float64{100, 100.5, 101}, set.Dah, 1e-9)

	gr, ok := set.Log("GR")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{2, 5, 6}, gr, 1e-4)

	sonic, ok := set.Log("Sonic")
	require.True(t, ok)
	assert.True(t, math.IsNaN(sonic[0]))
	assert.True(t, math.IsNaN(sonic[1]))
	assert.Equal(t, 10.0, sonic[2])

	_, err = m.Logs("F02-1", []int{3}, 0.5)
	assert.ErrorIs(t, err, wellman.ErrNoSuchLog)
	_, err = m.Logs("F02-1", []int{0}, -1)
	assert.Error(t, err)
}

func TestResampleEmpty(t *testing.T) {
	t.Parallel()
	set, err := wellman.Resample([]string{"a"}, [][]float64{{1, 2}}, [][]float64{{1e30, math.NaN()}}, 1)
	require.NoError(t, err)
	assert.Empty(t, set.Dah)
	assert.Empty(t, set.Values[0])
}

func TestResampleTinyStep(t *testing.T) {
	t.Parallel()
	for _, zstep := range []float64{1e-12, 5e-324} {
		_, err := wellman.Resample([]string{"GR"}, [][]float64{{0, 3000}}, [][]float64{{1, 2}}, zstep)
		assert.ErrorIs(t, err, wellman.ErrTooManySamples, "zstep %v", zstep)
	}

	// A fine step within the limit still works.
	set, err := wellman.Resample([]string{"GR"}, [][]float64{{0, 99}}, [][]float64{{1, 2}}, 0.001)
	require.NoError(t, err)
	assert.Len(t, set.Dah, 99001)
}

func TestMarkers(t *testing.T) {
	t.Parallel()
	m := fixture(t)

	markers, err := m.Markers("F02-1")
	require.NoError(t, err)
	assert.Equal(t, wellman.Markers{
		Names:  []string{"Truncation", "FS8"},
		MDs:    []float64{620, 1550.5},
		Colors: []string{"#0080ff", "#ff0000"},
	}, markers)

	markers, err = m.Markers("F03-4")
	require.NoError(t, err)
	assert.Zero(t, markers.Len())
}

func TestLogStats(t *testing.T) {
	t.Parallel()
	st, err := wellman.LogStats([]float64{1, 2, math.NaN(), 3, 4, 1e30})
	require.NoError(t, err)
	assert.Equal(t, 4, st.Count)
	assert.Equal(t, 1.0, st.Min)
	assert.Equal(t, 4.0, st.Max)
	assert.Equal(t, 2.5, st.Mean)
	assert.Equal(t, 2.5, st.Median)
	assert.InDelta(t, 1.118034, st.StdDev, 1e-6)

	_, err = wellman.LogStats([]float64{math.NaN()})
	assert.ErrorIs(t, err, stats.EmptyInputErr)
}
