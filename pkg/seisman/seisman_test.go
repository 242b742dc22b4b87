// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package seisman_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/oddb"
	"github.com/opendtect/odgo/pkg/seisman"
	"github.com/opendtect/odgo/pkg/testutil"
)

func TestManager(t *testing.T) {
	t.Parallel()
	fx := testutil.NewSurvey(t, "F3_Demo", "F3 Demo")
	fx.Register("Seismics", "100010", "Original", "Seismic Data", "CBVS", "Original.cbvs")
	fx.Register("Seismics", "100010", "Linked", "Seismic Data", "SEGYDirect", "Linked.sgydef")
	fx.Register("Seismics", "100010", "Lines", "Seismic Data 2D", "2D", "Lines")
	fx.Write("Seismics/Original.cbvs", "\x00\x01binary samples")
	fx.Write("Seismics/Linked.sgydef", testutil.Header("SEG-Y Direct definition")+
		"File name: ../Import/linked.sgy\nNr samples: 462\n!\n")

	surv, err := oddb.Open(fx.Root, fx.Name)
	require.NoError(t, err)
	m := seisman.NewManager(surv)

	list, err := m.DBList(false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Original", list[0].Name)

	key, err := m.DBKey("Linked", false)
	require.NoError(t, err)
	assert.Equal(t, "100010.2", key)
	_, err = m.DBKey("Lines", false)
	assert.ErrorIs(t, err, oddb.ErrNotFound)

	name, err := m.Name("100010.3")
	require.NoError(t, err)
	assert.Equal(t, "Lines", name)

	loc, err := m.FileLocation("Original")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "Seismics", "Original.cbvs"), loc)

	loc, err = m.FileLocation("Linked")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.Dir(), "Import", "linked.sgy"), loc)

	assert.True(t, m.IsPresent("Original"))
	assert.True(t, m.IsPresent("100010.1"))
	assert.False(t, m.IsPresent("Lines"))

	_, err = surv.CreateObject("Fresh", seisman.Group, "CBVS", false)
	require.NoError(t, err)
	assert.False(t, m.IsPresent("Fresh"), "cached list")
	_, err = m.DBList(true)
	require.NoError(t, err)
	assert.True(t, m.IsPresent("Fresh"))
}

func TestManagerBrokenDir(t *testing.T) {
	t.Parallel()
	fx := testutil.NewSurvey(t, "F3_Demo", "F3 Demo")
	fx.Register("Seismics", "100010", "Original", "Seismic Data", "CBVS", "Original.cbvs")
	fx.Write("Locations/.omf", "garbage\n")

	surv, err := oddb.Open(fx.Root, fx.Name)
	require.NoError(t, err)
	m := seisman.NewManager(surv)

	list, err := m.DBList(true)
	assert.Error(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Original", list[0].Name)

	key, err := m.DBKey("Original", true)
	require.NoError(t, err)
	assert.Equal(t, "100010.1", key)
	_, err = m.DBKey("Missing", true)
	assert.ErrorIs(t, err, oddb.ErrNotFound)

	assert.True(t, m.IsPresent("Original"))
}
