// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package reproducible provides the timestamp stamped into files that odgo writes.
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns SOURCE_DATE_EPOCH if it is set, or the time of the first call otherwise.  The value
// is fixed for the life of the process so that every file written in one run carries the same
// stamp.
func Now() time.Time {
	nowOnce.Do(func() {
		now = parseEpoch(os.Getenv("SOURCE_DATE_EPOCH"), time.Now)
	})
	return now
}

func parseEpoch(str string, fallback func() time.Time) time.Time {
	secs, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return fallback()
	}
	return time.Unix(secs, 0)
}
