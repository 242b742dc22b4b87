// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const defaultWidth = 80

// GetTerminalWidth returns the width to wrap help text to; 0 means no wrapping.
//
// A positive COLUMNS wins.  Otherwise the first of stdout and stderr that is a terminal decides,
// since group commands print their help on stderr; a terminal of unknown size is taken to be
// defaultWidth wide.  Help that goes to files or pipes is not wrapped.
func GetTerminalWidth() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
		return defaultWidth
	}
	return 0
}
