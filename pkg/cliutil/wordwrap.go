// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0
//
// wrap and wrapN are based on the unexported helpers of the same name in
// https://github.com/spf13/pflag/blob/v1.0.5/flag.go, so that help text wraps the same way as
// the flag usages that pflag renders next to it.

package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(i, w int, s string) string {
	if w == 0 {
		return strings.ReplaceAll(s, "\n", "\n"+strings.Repeat(" ", i))
	}

	width := w - i

	var r, l string

	// Too narrow next to the indent: start the text on its own line instead.
	if width < 24 {
		i = 16
		width = w - i
		r += "\n" + strings.Repeat(" ", i)
	}
	if width < 24 {
		return strings.ReplaceAll(s, "\n", r)
	}

	slop := 5
	width -= slop

	l, s = wrapN(width, slop, s)
	r += strings.ReplaceAll(l, "\n", "\n"+strings.Repeat(" ", i))

	for s != "" {
		var t string
		t, s = wrapN(width, slop, s)
		r += "\n" + strings.Repeat(" ", i) + strings.ReplaceAll(t, "\n", "\n"+strings.Repeat(" ", i))
	}

	return r
}

// wrapN splits s at the last whitespace before column i, unless the whole of s fits within i+slop.
func wrapN(i, slop int, s string) (string, string) {
	if i+slop > len(s) {
		return s, ""
	}

	w := strings.LastIndexAny(s[:i], " \t\n")
	if w <= 0 {
		return s, ""
	}
	nlPos := strings.LastIndex(s[:i], "\n")
	if nlPos > 0 && nlPos < w {
		return s[:nlPos], s[nlPos+1:]
	}
	return s[:w], s[w+1:]
}
