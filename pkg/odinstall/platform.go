// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package odinstall

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
)

// Platform selects the directory layout of an OpendTect installation.
type Platform int

const (
	Linux Platform = iota
	Windows
	Mac
)

// Current returns the platform odgo is running on.  Anything that is neither Windows nor macOS
// is treated as Linux.
func Current() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return Mac
	default:
		return Linux
	}
}

func (p Platform) String() string {
	switch p {
	case Linux:
		return "lux64"
	case Windows:
		return "win64"
	case Mac:
		return "mac"
	default:
		panic(fmt.Errorf("invalid Platform: %d", int(p)))
	}
}

// binDir is the directory, relative to the software dir, holding the executables of a build.
func (p Platform) binDir(cfg BuildConfig) string {
	var dir string
	switch p {
	case Mac:
		dir = "MacOS"
	default:
		dir = filepath.Join("bin", p.String(), "Release")
	}
	if cfg == Debug {
		if p == Mac {
			return filepath.Join(dir, "Debug")
		}
		return filepath.Join(filepath.Dir(dir), "Debug")
	}
	return dir
}

// libDir is the directory, relative to the software dir, holding the shared libraries.
func (p Platform) libDir(cfg BuildConfig) string {
	if p != Mac {
		return p.binDir(cfg)
	}
	if cfg == Debug {
		return filepath.Join("Frameworks", "Debug")
	}
	return "Frameworks"
}

func (p Platform) exeName(name string) string {
	if p == Windows {
		return name + ".exe"
	}
	return name
}

func (p Platform) sharedLib(base string) string {
	switch p {
	case Windows:
		return base + ".dll"
	case Mac:
		return "lib" + base + ".dylib"
	default:
		return "lib" + base + ".so"
	}
}

// BuildConfig selects between release and debug builds.  Auto prefers release.
type BuildConfig int

const (
	Auto BuildConfig = iota
	Release
	Debug
)

var _ pflag.Value = (*BuildConfig)(nil)

func (c BuildConfig) String() string {
	switch c {
	case Auto:
		return "auto"
	case Release:
		return "release"
	case Debug:
		return "debug"
	default:
		return fmt.Sprintf("BuildConfig(%d)", int(c))
	}
}

func (c *BuildConfig) Set(str string) error {
	switch strings.ToLower(str) {
	case "auto":
		*c = Auto
	case "release":
		*c = Release
	case "debug":
		*c = Debug
	default:
		return fmt.Errorf("invalid build config %q (must be one of auto, release, debug)", str)
	}
	return nil
}

func (*BuildConfig) Type() string { return "config" }

// candidates returns the configs to try, in order.
func (c BuildConfig) candidates() []BuildConfig {
	if c == Auto {
		return []BuildConfig{Release, Debug}
	}
	return []BuildConfig{c}
}
