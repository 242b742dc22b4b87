// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

// Package odenv decodes the environment variables that OpendTect and its tools look at.
package odenv

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

type Env struct {
	Appl        string `env:"DTECT_APPL"`         // software installation
	Data        string `env:"DTECT_DATA"`         // survey data root
	WinData     string `env:"DTECT_WINDATA"`      // survey data root, Windows only
	PersonalDir string `env:"DTECT_PERSONAL_DIR"` // replaces ~/.od
	User        string `env:"DTECT_USER"`         // suffix for per-user settings files
	Home        string `env:"HOME"`
	UserProfile string `env:"USERPROFILE"`
	Path        string `env:"PATH"`
}

// Load decodes the process environment.
func Load(ctx context.Context) (*Env, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes the environment seen through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Env, error) {
	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}
	return &env, nil
}

// FromMap decodes a fixed set of variables.  It is meant for tests and for callers that build an
// environment by hand; string fields cannot fail to decode.
func FromMap(vars map[string]string) *Env {
	env, err := LoadWith(context.Background(), envconfig.MapLookuper(vars))
	if err != nil {
		panic(err)
	}
	return env
}

// PathList splits PATH.
func (e *Env) PathList() []string {
	return filepath.SplitList(e.Path)
}

// HomeDir returns HOME, falling back to USERPROFILE.
func (e *Env) HomeDir() string {
	if e.Home != "" {
		return e.Home
	}
	return e.UserProfile
}
