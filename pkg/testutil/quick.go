// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// QuickCheck is similar to testing/quick.Check, but also feeds fn a list of static argument
// lists, so that the edge cases a reader cares about are always exercised.
func QuickCheck(t *testing.T, fn interface{}, cfg quick.Config, testcases ...[]interface{}) {
	t.Helper()
	err := quick.Check(fn, &cfg)
	assert.NoError(t, err)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		return
	}

	fnVal := reflect.ValueOf(fn)
	for i, tc := range testcases {
		args, ok := staticArgs(t, fnVal.Type(), i, tc)
		if !ok {
			continue
		}
		if !fnVal.Call(args)[0].Bool() {
			assert.NoError(t, fmt.Errorf("static%w", &quick.CheckError{
				Count: i + 1,
				In:    toInterfaces(args),
			}))
		}
	}
}

func staticArgs(t *testing.T, fnType reflect.Type, i int, tc []interface{}) ([]reflect.Value, bool) {
	t.Helper()
	if len(tc) != fnType.NumIn() {
		t.Errorf("static#%d has %d args, but the function takes %d args",
			i, len(tc), fnType.NumIn())
		return nil, false
	}
	args := make([]reflect.Value, len(tc))
	for j := range args {
		if tc[j] == nil {
			args[j] = reflect.Zero(fnType.In(j))
		} else {
			args[j] = reflect.ValueOf(tc[j])
		}
	}
	return args, true
}

func toInterfaces(values []reflect.Value) []interface{} {
	ret := make([]interface{}, len(values))
	for i, val := range values {
		ret[i] = val.Interface()
	}
	return ret
}
