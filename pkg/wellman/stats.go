// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package wellman

import (
	"github.com/montanaflynn/stats"
)

// Stats summarizes the defined values of a log.
type Stats struct {
	Count  int     `json:"count"  yaml:"count"`
	Min    float64 `json:"min"    yaml:"min"`
	Max    float64 `json:"max"    yaml:"max"`
	Mean   float64 `json:"mean"   yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// LogStats computes Stats over the defined values.  A log without defined values yields
// stats.EmptyInputErr.
func LogStats(values []float64) (Stats, error) {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !IsUndefined(v) {
			data = append(data, v)
		}
	}
	var ret Stats
	var err error
	ret.Count = data.Len()
	if ret.Min, err = data.Min(); err != nil {
		return Stats{}, err
	}
	if ret.Max, err = data.Max(); err != nil {
		return Stats{}, err
	}
	if ret.Mean, err = data.Mean(); err != nil {
		return Stats{}, err
	}
	if ret.Median, err = data.Median(); err != nil {
		return Stats{}, err
	}
	if ret.StdDev, err = data.StandardDeviation(); err != nil {
		return Stats{}, err
	}
	return ret, nil
}
