// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package horman writes horizon grids in the plain-text ".char" format that OpendTect imports:
// one "inline crossline z" row per defined grid node.
package horman

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Undefined is the lower bound of OpendTect's undefined-value range.
const Undefined = 1e30

// StepRange is an inclusive range of survey line numbers.
type StepRange struct {
	Start, Stop, Step int
}

// String formats r the way Set parses it.  The zero range, an unset flag, is "".
func (r StepRange) String() string {
	if r == (StepRange{}) {
		return ""
	}
	return fmt.Sprintf("%d-%d:%d", r.Start, r.Stop, r.Step)
}

var _ pflag.Value = (*StepRange)(nil)

// Set parses "START-STOP" or "START-STOP:STEP"; the step defaults to 1.
func (r *StepRange) Set(str string) error {
	rng, stepStr, hasStep := strings.Cut(str, ":")
	startStr, stopStr, ok := strings.Cut(rng, "-")
	if !ok {
		return fmt.Errorf("invalid line range %q (want START-STOP[:STEP])", str)
	}
	var ret StepRange
	var err error
	if ret.Start, err = strconv.Atoi(strings.TrimSpace(startStr)); err != nil {
		return fmt.Errorf("invalid line range %q: %w", str, err)
	}
	if ret.Stop, err = strconv.Atoi(strings.TrimSpace(stopStr)); err != nil {
		return fmt.Errorf("invalid line range %q: %w", str, err)
	}
	ret.Step = 1
	if hasStep {
		if ret.Step, err = strconv.Atoi(strings.TrimSpace(stepStr)); err != nil {
			return fmt.Errorf("invalid line range %q: %w", str, err)
		}
	}
	if err := ret.validate(); err != nil {
		return err
	}
	*r = ret
	return nil
}

func (*StepRange) Type() string { return "range" }

func (r StepRange) validate() error {
	if r.Step <= 0 || r.Stop < r.Start {
		return fmt.Errorf("invalid line range %d-%d:%d", r.Start, r.Stop, r.Step)
	}
	return nil
}

// Len returns the number of lines in the range.
func (r StepRange) Len() int {
	if r.validate() != nil {
		return 0
	}
	return (r.Stop-r.Start)/r.Step + 1
}

// At returns the i'th line number.
func (r StepRange) At(i int) int {
	return r.Start + i*r.Step
}

// WriteChar writes the grid data, with inlines along the first dimension and crosslines along
// the second, to w.  Rows and columns beyond the end of either the range or the data are ignored.
// Z values are rounded to one decimal; undefined values are left out.
func WriteChar(w io.Writer, data [][]float64, inl, crl StepRange) error {
	if err := inl.validate(); err != nil {
		return err
	}
	if err := crl.validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < inl.Len() && i < len(data); i++ {
		row := data[i]
		for j := 0; j < crl.Len() && j < len(row); j++ {
			z := row[j]
			if math.IsNaN(z) || z >= Undefined {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%d %d %s\n",
				inl.At(i), crl.At(j), strconv.FormatFloat(math.Round(z*10)/10, 'f', 1, 64)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// CreateCharFile writes the grid to a new, uniquely named ".char" file in dir and returns the
// file's base name.
func CreateCharFile(dir string, data [][]float64, inl, crl StepRange) (_ string, err error) {
	if err := inl.validate(); err != nil {
		return "", err
	}
	if err := crl.validate(); err != nil {
		return "", err
	}
	fh, err := os.CreateTemp(dir, "*.char")
	if err != nil {
		return "", err
	}
	defer func() {
		if _err := fh.Close(); _err != nil && err == nil {
			err = _err
		}
		if err != nil {
			_ = os.Remove(fh.Name())
		}
	}()
	if err := WriteChar(fh, data, inl, crl); err != nil {
		return "", err
	}
	return filepath.Base(fh.Name()), nil
}

// ReadGrid reads a grid of z values, one row per line, values separated by white space.  Blank
// lines and lines starting with "#" are skipped.  "nan" and "undef" mark undefined nodes.
func ReadGrid(r io.Reader) ([][]float64, error) {
	var ret [][]float64
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]float64, len(fields))
		for i, field := range fields {
			if strings.EqualFold(field, "undef") {
				row[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			row[i] = v
		}
		ret = append(ret, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
