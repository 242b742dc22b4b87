// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odcmd runs OpendTect programs, such as the command driver of od_main.
package odcmd

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/opendtect/odgo/pkg/odinstall"
	"github.com/opendtect/odgo/pkg/odlog"
	"github.com/opendtect/odgo/pkg/odsettings"
)

// DriverProgram is the OpendTect program that runs command-driver scripts.
const DriverProgram = "od_main"

// Command returns the full path of the OpendTect program name.
func Command(ctx context.Context, loc *odinstall.Locator, args odsettings.Args, name string) (string, error) {
	return loc.Executable(ctx, args.Exec(), name)
}

// libPathVar is the variable the dynamic loader searches for shared libraries.
func libPathVar(plf odinstall.Platform) string {
	switch plf {
	case odinstall.Windows:
		return "PATH"
	case odinstall.Mac:
		return "DYLD_LIBRARY_PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

func lookupEnv(env []string, key string, fold bool) (int, string) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if !ok {
			continue
		}
		if k == key || (fold && strings.EqualFold(k, key)) {
			return i, v
		}
	}
	return -1, ""
}

func setEnv(env []string, key, val string, fold bool) []string {
	if i, _ := lookupEnv(env, key, fold); i >= 0 {
		env[i] = key + "=" + val
		return env
	}
	return append(env, key+"="+val)
}

// Environ returns base (typically os.Environ()) extended with what OpendTect programs need: the
// installation, data root and survey from args, and the installation's library directory in the
// loader search path.
func Environ(ctx context.Context, loc *odinstall.Locator, args odsettings.Args, base []string) ([]string, error) {
	fold := loc.Platform == odinstall.Windows
	env := append([]string(nil), base...)

	sw, err := loc.SoftwareDir(ctx, args.Exec())
	if err != nil {
		return nil, err
	}
	env = setEnv(env, "DTECT_APPL", sw, fold)
	if data := args.DataRoot(); data != "" {
		env = setEnv(env, "DTECT_DATA", data, fold)
	}
	if survey := args.SurveyName(); survey != "" {
		env = setEnv(env, "DTECT_SURVEY", survey, fold)
	}

	libDir, err := loc.LibDir(ctx, args.Exec(), odinstall.Auto)
	if err != nil {
		dlog.Debugf(ctx, "no library directory: %v", err)
		return env, nil
	}
	key := libPathVar(loc.Platform)
	sep := string(os.PathListSeparator)
	if loc.Platform == odinstall.Windows {
		sep = ";"
	}
	val := libDir
	if _, cur := lookupEnv(env, key, fold); cur != "" {
		val += sep + cur
	}
	return setEnv(env, key, val, fold), nil
}

// Exec runs cmdline with environment env.  Its output goes to the processing log.
func Exec(ctx context.Context, cmdline []string, env []string) error {
	if len(cmdline) == 0 {
		return errors.New("exec: empty command line")
	}
	odlog.Proc(ctx, "Executing: %s", strings.Join(cmdline, " "))
	cmd := dexec.CommandContext(odlog.ProcContext(ctx), cmdline[0], cmdline[1:]...)
	cmd.Env = env
	return cmd.Run()
}

// DoScript runs a command-driver script with od_main.
func DoScript(ctx context.Context, loc *odinstall.Locator, args odsettings.Args, script string) error {
	exe, err := Command(ctx, loc, args, DriverProgram)
	if err != nil {
		return err
	}
	env, err := Environ(ctx, loc, args, os.Environ())
	if err != nil {
		return err
	}
	return Exec(ctx, []string{exe, "--cmd", script}, env)
}

// HasError reports whether any line of the file mentions an error, the way the command driver
// flags failures in its log.
func HasError(filename string) (bool, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return false, err
	}
	defer fh.Close()
	sc := bufio.NewScanner(fh)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		if strings.Contains(strings.ToLower(sc.Text()), "error") {
			return true, nil
		}
	}
	return false, sc.Err()
}
