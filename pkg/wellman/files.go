// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package wellman

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/opendtect/odgo/pkg/ascistream"
	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/iopar"
)

const (
	logExt    = ".wll"
	markerExt = ".wlm"

	// Undefined is the lower bound of OpendTect's undefined-value range.
	Undefined = 1e30
)

// IsUndefined reports whether v is an undefined sample.
func IsUndefined(v float64) bool {
	return math.IsNaN(v) || math.Abs(v) >= Undefined
}

// Info is the header of a well.
type Info struct {
	Name                string  `json:"Name"                   yaml:"Name"`
	UWID                string  `json:"Unique Well ID"         yaml:"Unique Well ID"`
	Operator            string  `json:"Operator"               yaml:"Operator"`
	State               string  `json:"State"                  yaml:"State"`
	County              string  `json:"County"                 yaml:"County"`
	X                   float64 `json:"X"                      yaml:"X"`
	Y                   float64 `json:"Y"                      yaml:"Y"`
	ReplacementVelocity float64 `json:"Replacement velocity"   yaml:"Replacement velocity"`
	GroundElevation     float64 `json:"Ground level elevation" yaml:"Ground level elevation"`
}

// Track is the well path, sampled at the stored track points.
type Track struct {
	MD    []float64 `json:"dah"   yaml:"dah"`
	TVDSS []float64 `json:"tvdss" yaml:"tvdss"`
	X     []float64 `json:"x"     yaml:"x"`
	Y     []float64 `json:"y"     yaml:"y"`
}

// Markers are the named depths of a well, ordered by MD.
type Markers struct {
	Names  []string  `json:"names"  yaml:"names"`
	MDs    []float64 `json:"dah"    yaml:"dah"`
	Colors []string  `json:"colors" yaml:"colors"`
}

func (m *Markers) Len() int { return len(m.Names) }

func (m *Markers) Less(i, j int) bool { return m.MDs[i] < m.MDs[j] }

func (m *Markers) Swap(i, j int) {
	m.Names[i], m.Names[j] = m.Names[j], m.Names[i]
	m.MDs[i], m.MDs[j] = m.MDs[j], m.MDs[i]
	m.Colors[i], m.Colors[j] = m.Colors[j], m.Colors[i]
}

func parseFloatOr(str string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return def
	}
	return f
}

// parseCoord parses "(x,y)".
func parseCoord(str string) (x, y float64, err error) {
	str = strings.TrimSpace(str)
	str = strings.TrimSuffix(strings.TrimPrefix(str, "("), ")")
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate %q", str)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// floatRows parses whitespace-separated numbers, ncol per row; shorter rows are skipped.
func floatRows(r io.Reader, name string, ncol int) ([][]float64, error) {
	var ret [][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for lineno := 1; sc.Scan(); lineno++ {
		fields := strings.Fields(sc.Text())
		if len(fields) < ncol {
			continue
		}
		row := make([]float64, ncol)
		for i := range row {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: data row %d: %w", name, lineno, err)
			}
			row[i] = f
		}
		ret = append(ret, row)
	}
	return ret, sc.Err()
}

func readWellFile(fnm string) (Info, Track, error) {
	fh, err := fsutil.Open("read well", fnm)
	if err != nil {
		return Info{}, Track{}, err
	}
	defer fh.Close()

	rd, err := ascistream.NewReader(fh, fnm)
	if err != nil {
		return Info{}, Track{}, err
	}
	block, err := rd.NextBlock()
	if err != nil && !errors.Is(err, io.EOF) {
		return Info{}, Track{}, err
	}
	par := iopar.FromKVs("Well", block)
	get := func(key string) string {
		val, _ := par.Get(key)
		return val
	}
	info := Info{
		Name:                get("Name"),
		UWID:                get("Unique Well ID"),
		Operator:            get("Operator"),
		State:               get("State"),
		County:              get("County"),
		ReplacementVelocity: parseFloatOr(get("Replacement velocity"), 0),
		GroundElevation:     parseFloatOr(get("Ground level elevation"), 0),
	}
	if coord := get("Surface coordinate"); coord != "" {
		if info.X, info.Y, err = parseCoord(coord); err != nil {
			return Info{}, Track{}, fmt.Errorf("%s: %w", fnm, err)
		}
	}

	rows, err := floatRows(rd.Rest(), fnm, 4)
	if err != nil {
		return Info{}, Track{}, err
	}
	var track Track
	for _, row := range rows {
		track.X = append(track.X, row[0])
		track.Y = append(track.Y, row[1])
		track.TVDSS = append(track.TVDSS, row[2])
		track.MD = append(track.MD, row[3])
	}
	return info, track, nil
}

// logFile is one .wll<N> file.
type logFile struct {
	index int
	path  string
}

// globEscape quotes the doublestar metacharacters in a literal file name.
func globEscape(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// logFiles lists the log files of the well stored in wellFile, ordered by index.
func logFiles(wellFile string) ([]logFile, error) {
	dir := filepath.Dir(wellFile)
	base := strings.TrimSuffix(filepath.Base(wellFile), filepath.Ext(wellFile))
	names, err := doublestar.Glob(os.DirFS(dir), globEscape(base)+logExt+"*",
		doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, &fs.PathError{Op: "list logs", Path: dir, Err: err}
	}
	var ret []logFile
	for _, name := range names {
		idx, err := strconv.Atoi(strings.TrimPrefix(name, base+logExt))
		if err != nil || idx < 1 {
			continue
		}
		ret = append(ret, logFile{index: idx, path: filepath.Join(dir, name)})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].index < ret[j].index })
	return ret, nil
}

// logHeader is the first block of a log file.
type logHeader struct {
	Name    string
	Unit    string
	Storage string
}

func readLogHeader(rd *ascistream.Reader) (logHeader, error) {
	block, err := rd.NextBlock()
	if err != nil && !errors.Is(err, io.EOF) {
		return logHeader{}, err
	}
	par := iopar.FromKVs("Well Log", block)
	var hdr logHeader
	hdr.Name, _ = par.Get("Name")
	hdr.Unit, _ = par.Get("Unit of Measure")
	hdr.Storage, _ = par.Get("Storage type")
	if hdr.Storage == "" {
		hdr.Storage = "Ascii"
	}
	return hdr, nil
}

func logName(path string) (string, error) {
	fh, err := fsutil.Open("read well log", path)
	if err != nil {
		return "", err
	}
	defer fh.Close()
	rd, err := ascistream.NewReader(fh, path)
	if err != nil {
		return "", err
	}
	hdr, err := readLogHeader(rd)
	if err != nil {
		return "", err
	}
	return hdr.Name, nil
}

// readLog reads the samples of a log.  Undefined values become NaN.
func readLog(path string) (logHeader, []float64, []float64, error) {
	fh, err := fsutil.Open("read well log", path)
	if err != nil {
		return logHeader{}, nil, nil, err
	}
	defer fh.Close()
	rd, err := ascistream.NewReader(fh, path)
	if err != nil {
		return logHeader{}, nil, nil, err
	}
	hdr, err := readLogHeader(rd)
	if err != nil {
		return logHeader{}, nil, nil, err
	}

	var dah, vals []float64
	switch strings.ToLower(hdr.Storage) {
	case "ascii":
		rows, err := floatRows(rd.Rest(), path, 2)
		if err != nil {
			return logHeader{}, nil, nil, err
		}
		for _, row := range rows {
			dah = append(dah, row[0])
			vals = append(vals, row[1])
		}
	case "binary", "swapped":
		var order binary.ByteOrder = binary.LittleEndian
		if strings.EqualFold(hdr.Storage, "swapped") {
			order = binary.BigEndian
		}
		br := bufio.NewReader(rd.Rest())
		var pair [2]float32
		for {
			if err := binary.Read(br, order, &pair); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				if errors.Is(err, io.ErrUnexpectedEOF) {
					return logHeader{}, nil, nil, fmt.Errorf("%s: truncated sample data", path)
				}
				return logHeader{}, nil, nil, err
			}
			dah = append(dah, float64(pair[0]))
			vals = append(vals, float64(pair[1]))
		}
	default:
		return logHeader{}, nil, nil, fmt.Errorf("%s: unknown storage type %q", path, hdr.Storage)
	}
	for i, v := range vals {
		if IsUndefined(v) {
			vals[i] = math.NaN()
		}
	}
	return hdr, dah, vals, nil
}

func readMarkers(path string) (Markers, error) {
	var ret Markers
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ret, nil
		}
		return ret, err
	}
	defer fh.Close()
	par, _, err := iopar.Read(fh, path)
	if err != nil {
		return ret, err
	}
	for i := 1; ; i++ {
		sub := par.Subselect(strconv.Itoa(i))
		name, ok := sub.Get("Name")
		if !ok {
			break
		}
		md, err := sub.GetFloat("Depth along hole")
		if err != nil {
			return Markers{}, fmt.Errorf("%s: marker %q: %w", path, name, err)
		}
		color := "#000000"
		if str, ok := sub.Get("Color"); ok {
			if color, err = parseColor(str); err != nil {
				return Markers{}, fmt.Errorf("%s: marker %q: %w", path, name, err)
			}
		}
		ret.Names = append(ret.Names, name)
		ret.MDs = append(ret.MDs, md)
		ret.Colors = append(ret.Colors, color)
	}
	sort.Stable(&ret)
	return ret, nil
}

// parseColor turns "r`g`b[`t]" into "#rrggbb".
func parseColor(str string) (string, error) {
	parts := iopar.SplitMulti(str)
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid color %q", str)
	}
	var rgb [3]int
	for i := range rgb {
		c, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || c < 0 || c > 255 {
			return "", fmt.Errorf("invalid color %q", str)
		}
		rgb[i] = c
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), nil
}
