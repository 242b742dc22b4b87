// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package horman_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendtect/odgo/pkg/horman"
)

func TestWriteChar(t *testing.T) {
	t.Parallel()
	data := [][]float64{
		{1000.04, 1000.06, 1e30},
		{math.NaN(), 1001.25, 1002},
		{9, 9, 9},
	}
	testcases := map[string]struct {
		Inl, Crl horman.StepRange
		Want     string
		WantErr  bool
	}{
		"full": {
			Inl:  horman.StepRange{Start: 100, Stop: 102, Step: 1},
			Crl:  horman.StepRange{Start: 300, Stop: 304, Step: 2},
			Want: "100 300 1000.0\n100 302 1000.1\n101 302 1001.3\n101 304 1002.0\n102 300 9.0\n102 302 9.0\n102 304 9.0\n",
		},
		"range-shorter-than-data": {
			Inl:  horman.StepRange{Start: 10, Stop: 11, Step: 1},
			Crl:  horman.StepRange{Start: 20, Stop: 20, Step: 1},
			Want: "10 20 1000.0\n",
		},
		"data-shorter-than-range": {
			Inl:  horman.StepRange{Start: 1, Stop: 100, Step: 50},
			Crl:  horman.StepRange{Start: 1, Stop: 1000, Step: 1},
			Want: "1 1 1000.0\n1 2 1000.1\n51 2 1001.3\n51 3 1002.0\n",
		},
		"bad-step": {
			Inl:     horman.StepRange{Start: 1, Stop: 2, Step: 0},
			Crl:     horman.StepRange{Start: 1, Stop: 2, Step: 1},
			WantErr: true,
		},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			err := horman.WriteChar(&out, data, tc.Inl, tc.Crl)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Want, out.String())
		})
	}
}

func TestCreateCharFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rng := horman.StepRange{Start: 1, Stop: 1, Step: 1}

	first, err := horman.CreateCharFile(dir, [][]float64{{5}}, rng, rng)
	require.NoError(t, err)
	second, err := horman.CreateCharFile(dir, [][]float64{{6}}, rng, rng)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, ".char", filepath.Ext(first))

	bs, err := os.ReadFile(filepath.Join(dir, first))
	require.NoError(t, err)
	assert.Equal(t, "1 1 5.0\n", string(bs))
}

func TestStepRangeFlag(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Input   string
		Want    horman.StepRange
		WantErr bool
	}{
		"default-step": {Input: "100-750", Want: horman.StepRange{Start: 100, Stop: 750, Step: 1}},
		"with-step":    {Input: "300-1250:25", Want: horman.StepRange{Start: 300, Stop: 1250, Step: 25}},
		"no-stop":      {Input: "100", WantErr: true},
		"reversed":     {Input: "10-1", WantErr: true},
		"zero-step":    {Input: "1-10:0", WantErr: true},
		"garbage":      {Input: "a-b", WantErr: true},
	}
	for name, tc := range testcases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var rng horman.StepRange
			err := rng.Set(tc.Input)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Want, rng)
			assert.Equal(t, tc.Want.Len(), (tc.Want.Stop-tc.Want.Start)/tc.Want.Step+1)

			var again horman.StepRange
			require.NoError(t, again.Set(rng.String()))
			assert.Equal(t, rng, again)
		})
	}
}

func TestStepRangeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "300-1250:25", horman.StepRange{Start: 300, Stop: 1250, Step: 25}.String())
	assert.Equal(t, "1-5:1", horman.StepRange{Start: 1, Stop: 5, Step: 1}.String())
	assert.Equal(t, "", horman.StepRange{}.String())
}

func TestReadGrid(t *testing.T) {
	t.Parallel()
	grid, err := horman.ReadGrid(strings.NewReader("# z grid\n1 2.5 undef\n\n4 nan 6\n"))
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []float64{1, 2.5}, grid[0][:2])
	assert.True(t, math.IsNaN(grid[0][2]))
	assert.Equal(t, 4.0, grid[1][0])
	assert.True(t, math.IsNaN(grid[1][1]))

	_, err = horman.ReadGrid(strings.NewReader("1 x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
