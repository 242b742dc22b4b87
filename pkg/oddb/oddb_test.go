// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package oddb_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/oddb"
	"github.com/opendtect/odgo/pkg/odenv"
	"github.com/opendtect/odgo/pkg/odsettings"
	"github.com/opendtect/odgo/pkg/testutil"
)

// f3 builds a small survey with wells, seismics and one horizon.
func f3(t *testing.T) (*testutil.Survey, *oddb.Survey) {
	t.Helper()
	fx := testutil.NewSurvey(t, "F3_Demo", "F3 Demo 2020")
	fx.Register("WellInfo", "100050", "F02-1", "Well", "dGB", "F02-1.well")
	fx.Register("WellInfo", "100050", "F03-2", "Well", "dGB", "F03-2.well")
	fx.Write("WellInfo/F02-1.well", testutil.Header("Well")+"Name: F02-1\n!\n")
	fx.Register("Seismics", "100010", "Median Dip Filtered", "Seismic Data", "CBVS", "Median_Dip_Filtered.cbvs")
	fx.Register("Seismics", "100010", "Line 441", "Seismic Data 2D", "2D", "Line_441")
	fx.Write("Seismics/Median_Dip_Filtered.cbvs", "")
	require.NoError(t, os.MkdirAll(filepath.Join(fx.Dir(), "Seismics", "Line_441"), 0o755))
	fx.Register("Surfaces", "100020", "Demo 0 --> FS4", "Horizon", "dGB", "Demo_0_--_FS4.hor")

	surv, err := oddb.Open(fx.Root, fx.Name)
	require.NoError(t, err)
	return fx, surv
}

func TestOpen(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)
	assert.Equal(t, "F3 Demo 2020", surv.Name())
	assert.Equal(t, fx.Dir(), surv.Dir())

	_, err := oddb.Open(fx.Root, "nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenFromArgs(t *testing.T) {
	t.Parallel()
	fx, _ := f3(t)
	home := t.TempDir()
	testutil.WriteFile(t, filepath.Join(home, ".od", "survey"), fx.Name+"\n")
	user := &odsettings.User{Env: odenv.FromMap(map[string]string{"HOME": home, "DTECT_DATA": fx.Root})}

	surv, err := oddb.OpenFromArgs(context.Background(), user, odsettings.Args{})
	require.NoError(t, err)
	assert.Equal(t, "F3 Demo 2020", surv.Name())

	other := testutil.NewSurvey(t, "Other", "Other survey")
	surv, err = oddb.OpenFromArgs(context.Background(), user, odsettings.FromValues("", other.Root, "Other"))
	require.NoError(t, err)
	assert.Equal(t, "Other survey", surv.Name())
}

func TestObjectInfos(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)

	wells, err := surv.ObjectInfos("Well", false)
	require.NoError(t, err)
	testutil.AssertEqualDump(t, []oddb.ObjectInfo{
		{
			ID:       "100050.1",
			Name:     "F02-1",
			Format:   "dGB",
			Group:    "Well",
			FileName: filepath.Join(fx.Dir(), "WellInfo", "F02-1.well"),
			Status:   oddb.StatusOK,
		},
		{
			ID:       "100050.2",
			Name:     "F03-2",
			Format:   "dGB",
			Group:    "Well",
			FileName: filepath.Join(fx.Dir(), "WellInfo", "F03-2.well"),
			Status:   oddb.StatusMissing,
		},
	}, wells)

	seis, err := surv.ObjectInfos("Seismic Data", false)
	require.NoError(t, err)
	assert.Len(t, seis, 1)

	seis, err = surv.ObjectInfos("Seismic Data", true)
	require.NoError(t, err)
	require.Len(t, seis, 2)
	assert.Equal(t, "Line 441", seis[1].Name)
	assert.Equal(t, oddb.StatusOK, seis[1].Status)

	none, err := surv.ObjectInfos("Fault", false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestObjectInfosBrokenDir(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)
	fx.Write("Locations/.omf", "garbage\n")

	wells, err := surv.ObjectInfos("Well", false)
	assert.Error(t, err)
	assert.Len(t, wells, 2)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)

	info, err := surv.ObjectInfo("F03-2", "Well")
	require.NoError(t, err)
	assert.Equal(t, "100050.2", info.ID)

	info, err = surv.ObjectInfo("Demo 0 --> FS4", "")
	require.NoError(t, err)
	assert.Equal(t, "Horizon", info.Group)

	_, err = surv.ObjectInfo("F03-2", "Seismic Data")
	assert.ErrorIs(t, err, oddb.ErrNotFound)

	info, err = surv.ObjectInfoByKey("100010.2")
	require.NoError(t, err)
	assert.Equal(t, "Line 441", info.Name)

	for _, key := range []string{"100010.9", "100099.1", "bogus"} {
		_, err = surv.ObjectInfoByKey(key)
		assert.ErrorIs(t, err, oddb.ErrNotFound, key)
	}

	loc, err := surv.FileLocation("100010.1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "Seismics", "Median_Dip_Filtered.cbvs"), loc)

	assert.True(t, surv.HasObject("F02-1", "Well"))
	assert.True(t, surv.HasObject("F02-1", ""))
	assert.False(t, surv.HasObject("F02-1", "Horizon"))
}

func TestListHelpers(t *testing.T) {
	t.Parallel()
	_, surv := f3(t)
	wells, err := surv.ObjectInfos("Well", false)
	require.NoError(t, err)

	key, ok := oddb.KeyForName(wells, "F03-2")
	assert.True(t, ok)
	assert.Equal(t, "100050.2", key)

	info, ok := oddb.FindInList(wells, "100050.1")
	assert.True(t, ok)
	assert.Equal(t, "F02-1", info.Name)

	status, ok := oddb.ValueFor(wells, "F03-2", "Status")
	assert.True(t, ok)
	assert.Equal(t, "Missing", status)

	_, ok = oddb.ValueFor(wells, "F03-2", "Nonsense")
	assert.False(t, ok)
	_, ok = oddb.KeyForName(wells, "nope")
	assert.False(t, ok)
}

func TestCreateRemove(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)

	fnm, err := surv.CreateObject("New well/2", "Well", "dGB", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "WellInfo", "New_well_2.well"), fnm)

	info, err := surv.ObjectInfo("New well/2", "Well")
	require.NoError(t, err)
	assert.Equal(t, "100050.3", info.ID)
	assert.Equal(t, oddb.StatusMissing, info.Status)

	_, err = surv.CreateObject("New well/2", "Well", "dGB", false)
	assert.ErrorIs(t, err, oddb.ErrExists)

	again, err := surv.CreateObject("New well/2", "Well", "HDF5", true)
	require.NoError(t, err)
	assert.Equal(t, fnm, again)
	info, err = surv.ObjectInfo("New well/2", "Well")
	require.NoError(t, err)
	assert.Equal(t, "HDF5", info.Format)
	assert.Equal(t, "100050.3", info.ID)

	// A name that maps to a taken file name gets a numbered one.
	other, err := surv.CreateObject("New well 2", "Well", "dGB", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "WellInfo", "New_well_2_4.well"), other)

	testutil.Touch(t, fnm)
	require.NoError(t, surv.RemoveObject("New well/2", "Well"))
	assert.NoFileExists(t, fnm)
	assert.False(t, surv.HasObject("New well/2", "Well"))
	assert.True(t, surv.HasObject("F02-1", "Well"))

	assert.ErrorIs(t, surv.RemoveObject("New well/2", "Well"), oddb.ErrNotFound)
}

func TestCreateInFreshDirectory(t *testing.T) {
	t.Parallel()
	fx, surv := f3(t)

	fnm, err := surv.CreateObject("Faults A", "Fault", "dGB", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "Features", "Faults_A.flt"), fnm)
	info, err := surv.ObjectInfo("Faults A", "Fault")
	require.NoError(t, err)
	assert.Equal(t, "100040.1", info.ID)

	fnm, err = surv.CreateObject("Notes", "Misc Data", "Text", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "Misc", "Notes.text"), fnm)
}

func TestCreateConcurrent(t *testing.T) {
	t.Parallel()
	_, surv := f3(t)
	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, name := range names {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := surv.CreateObject(name, "Horizon", "dGB", false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	hors, err := surv.ObjectInfos("Horizon", false)
	require.NoError(t, err)
	assert.Len(t, hors, len(names)+1)
}
