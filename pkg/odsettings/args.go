// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odsettings

import (
	"context"
	"io/fs"
	"os"

	"github.com/datawire/dlib/dlog"
	"sigs.k8s.io/yaml"

	"github.com/opendtect/odgo/pkg/odinstall"
	"github.com/opendtect/odgo/pkg/odlog"
)

// Args is the set of arguments that OpendTect programs take on their command line.  Every value
// is a single-element list, as OpendTect's argument parser produces them.
type Args struct {
	DtectExec []string `json:"dtectexec,omitempty" yaml:"dtectexec,omitempty"`
	DtectData []string `json:"dtectdata,omitempty" yaml:"dtectdata,omitempty"`
	Survey    []string `json:"survey,omitempty"    yaml:"survey,omitempty"`
	ProcLog   []string `json:"proclog,omitempty"   yaml:"proclog,omitempty"`
	SysLog    []string `json:"syslog,omitempty"    yaml:"syslog,omitempty"`
}

// First returns the first element of an argument, or "".
func First(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func single(val string) []string {
	if val == "" {
		return nil
	}
	return []string{val}
}

func (a Args) Exec() string       { return First(a.DtectExec) }
func (a Args) DataRoot() string   { return First(a.DtectData) }
func (a Args) SurveyName() string { return First(a.Survey) }

// Merge returns a copy of a with every non-empty argument of b taking precedence.
func (a Args) Merge(b Args) Args {
	ret := a
	if len(b.DtectExec) > 0 {
		ret.DtectExec = b.DtectExec
	}
	if len(b.DtectData) > 0 {
		ret.DtectData = b.DtectData
	}
	if len(b.Survey) > 0 {
		ret.Survey = b.Survey
	}
	if len(b.ProcLog) > 0 {
		ret.ProcLog = b.ProcLog
	}
	if len(b.SysLog) > 0 {
		ret.SysLog = b.SysLog
	}
	return ret
}

// FromValues builds Args from plain strings, leaving out the empty ones.
func FromValues(dtectexec, dtectdata, survey string) Args {
	return Args{
		DtectExec: single(dtectexec),
		DtectData: single(dtectdata),
		Survey:    single(survey),
	}
}

// ReadArgsFile loads Args from a YAML or JSON file.  Unknown keys are an error.
func ReadArgsFile(filename string) (Args, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return Args{}, err
	}
	var ret Args
	if err := yaml.Unmarshal(bs, &ret, yaml.DisallowUnknownFields); err != nil {
		return Args{}, &fs.PathError{Op: "read args", Path: filename, Err: err}
	}
	return ret, nil
}

// ODArgs completes in with the user's defaults: the executables directory of the installation,
// the data root and survey when in does not set them, and the files of the active log sinks.
// Values that cannot be determined are left out.
func ODArgs(ctx context.Context, user *User, loc *odinstall.Locator, in Args) Args {
	ret := Args{
		DtectData: in.DtectData,
		Survey:    in.Survey,
	}
	if exec, err := loc.ExecDir(ctx, in.Exec(), odinstall.Auto); err == nil {
		ret.DtectExec = single(exec)
	} else {
		dlog.Debugf(ctx, "dtectexec: %v", err)
	}
	if len(ret.DtectData) == 0 {
		if dir, err := user.BaseDataDir(); err == nil {
			ret.DtectData = single(dir)
		} else {
			dlog.Debugf(ctx, "dtectdata: %v", err)
		}
	}
	if len(ret.Survey) == 0 {
		if dir, err := user.SurveyDir(); err == nil {
			ret.Survey = single(dir)
		} else {
			dlog.Debugf(ctx, "survey: %v", err)
		}
	}
	ret.ProcLog = single(odlog.ProcLogFile(ctx))
	ret.SysLog = single(odlog.StdLogFile(ctx))
	return ret
}
