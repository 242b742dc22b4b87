// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package wellman

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultZStep is the default MD sampling of Logs, in survey depth units.
const DefaultZStep = 0.5

// MaxSamples bounds the length of a resampled log.
const MaxSamples = 10_000_000

var ErrTooManySamples = errors.New("too many samples")

// LogSet is a set of logs sampled on one MD axis.  Values[i] belongs to Names[i] and has one value
// per element of Dah; NaN where the log has no value.
type LogSet struct {
	Dah    []float64   `json:"dah"    yaml:"dah"`
	Names  []string    `json:"names"  yaml:"names"`
	Values [][]float64 `json:"values" yaml:"values"`
}

// Log returns the values of the named log of the set.
func (ls *LogSet) Log(name string) ([]float64, bool) {
	for i, n := range ls.Names {
		if n == name {
			return ls.Values[i], true
		}
	}
	return nil, false
}

type sample struct {
	dah, val float64
}

// defined returns the defined samples sorted by depth.
func defined(dah, vals []float64) []sample {
	ret := make([]sample, 0, len(dah))
	for i := range dah {
		if i >= len(vals) || IsUndefined(vals[i]) || IsUndefined(dah[i]) {
			continue
		}
		ret = append(ret, sample{dah[i], vals[i]})
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].dah < ret[j].dah })
	return ret
}

// resampleAt returns the value of a log at depth z: the mean of the samples within half a step of
// z, else the linear interpolation between the nearest samples around z, else NaN.
func resampleAt(samples []sample, z, halfStep float64) float64 {
	lo := sort.Search(len(samples), func(i int) bool { return samples[i].dah >= z-halfStep })
	sum, n := 0.0, 0
	for i := lo; i < len(samples) && samples[i].dah < z+halfStep; i++ {
		sum += samples[i].val
		n++
	}
	if n > 0 {
		return sum / float64(n)
	}

	hi := sort.Search(len(samples), func(i int) bool { return samples[i].dah >= z })
	if hi == 0 || hi == len(samples) {
		return math.NaN()
	}
	before, after := samples[hi-1], samples[hi]
	if after.dah == before.dah {
		return before.val
	}
	frac := (z - before.dah) / (after.dah - before.dah)
	return before.val + frac*(after.val-before.val)
}

// Resample puts logs on a common MD axis with step zstep, from the shallowest to the deepest
// defined sample of any of them.
func Resample(names []string, dahs, vals [][]float64, zstep float64) (*LogSet, error) {
	if zstep <= 0 {
		return nil, fmt.Errorf("invalid depth step %v", zstep)
	}
	all := make([][]sample, len(names))
	zmin, zmax := math.Inf(1), math.Inf(-1)
	for i := range names {
		all[i] = defined(dahs[i], vals[i])
		if len(all[i]) == 0 {
			continue
		}
		zmin = math.Min(zmin, all[i][0].dah)
		zmax = math.Max(zmax, all[i][len(all[i])-1].dah)
	}

	ret := &LogSet{
		Names:  names,
		Values: make([][]float64, len(names)),
	}
	if zmin > zmax {
		for i := range ret.Values {
			ret.Values[i] = []float64{}
		}
		ret.Dah = []float64{}
		return ret, nil
	}

	fnz := math.Floor((zmax-zmin)/zstep+1e-6) + 1
	if math.IsNaN(fnz) || fnz > MaxSamples {
		return nil, fmt.Errorf("%w: depth step %v over %v-%v gives more than %d",
			ErrTooManySamples, zstep, zmin, zmax, MaxSamples)
	}
	nz := int(fnz)
	ret.Dah = make([]float64, nz)
	for iz := range ret.Dah {
		ret.Dah[iz] = zmin + float64(iz)*zstep
	}
	for i, samples := range all {
		ret.Values[i] = make([]float64, nz)
		for iz, z := range ret.Dah {
			ret.Values[i][iz] = resampleAt(samples, z, zstep/2)
		}
	}
	return ret, nil
}

// Logs reads the logs with the given indices into LogNames and resamples them with step zstep
// (DefaultZStep if zero).
func (m *Manager) Logs(well string, idxs []int, zstep float64) (*LogSet, error) {
	if zstep == 0 {
		zstep = DefaultZStep
	}
	fnm, err := m.wellFile(well)
	if err != nil {
		return nil, err
	}
	files, err := logFiles(fnm)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(idxs))
	dahs := make([][]float64, len(idxs))
	vals := make([][]float64, len(idxs))
	for i, idx := range idxs {
		if idx < 0 || idx >= len(files) {
			return nil, fmt.Errorf("%w: well %q has %d logs, no index %d", ErrNoSuchLog, well, len(files), idx)
		}
		hdr, dah, val, err := readLog(files[idx].path)
		if err != nil {
			return nil, err
		}
		names[i], dahs[i], vals[i] = hdr.Name, dah, val
	}
	return Resample(names, dahs, vals, zstep)
}
