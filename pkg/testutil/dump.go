// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump renders v deterministically, for comparing deeply nested values in tests.
func Dump(v interface{}) string {
	return spewConfig.Sdump(v)
}

// AssertEqualDump compares the spew dumps of exp and act, and reports a unified diff on mismatch
// instead of two walls of text.
func AssertEqualDump(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	expStr, actStr := Dump(exp), Dump(act)
	if expStr == actStr {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expStr),
		B:        difflib.SplitLines(actStr),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	t.Errorf("Dump diff:\n%s", diff)
	return false
}
