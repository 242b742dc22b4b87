// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package wellman

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{
		"W[1].well",
		"W[1].wll2",
		"W[1].wll10",
		"W[1].wll1",
		"W[1].wllx",
		"W[1].wll0",
		"W1.wll3",
		"W[1].wlm",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "W[1].wll4"), 0o755))

	files, err := logFiles(filepath.Join(dir, "W[1].well"))
	require.NoError(t, err)
	var got []string
	for _, lf := range files {
		got = append(got, filepath.Base(lf.path))
	}
	assert.Equal(t, []string{"W[1].wll1", "W[1].wll2", "W[1].wll10"}, got)
}

func TestGlobEscape(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "F02-1", globEscape("F02-1"))
	assert.Equal(t, `W\[1\]\{a\}\*\?`, globEscape("W[1]{a}*?"))
}
