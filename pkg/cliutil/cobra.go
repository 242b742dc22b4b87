// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0
//
// The usage-error conventions follow
// https://github.com/telepresenceio/telepresence/blob/3b63073ceafae6b548c664a83f7ac90497eab2ae/pkg/client/cli/command.go

// Package cliutil holds the cobra conventions shared by the odgo commands: exit statuses, usage
// errors, and the help template.
package cliutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Exit statuses.  A "has" style check that comes out negative is an ExitFailure.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

var exit = os.Exit

// OnlySubcommands is the cobra.PositionalArgs of command groups.  An unknown subcommand is a usage
// error, reported with the closest matching subcommands.
func OnlySubcommands(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown subcommand %q", args[0])
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = 2
	}
	switch suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) {
	case 0:
	case 1:
		msg += fmt.Sprintf("; did you mean %q?", suggestions[0])
	default:
		msg += "\nDid you mean one of these?\n\t" + strings.Join(suggestions, "\n\t")
	}
	return FlagErrorFunc(cmd, errors.New(msg))
}

// WrapPositionalArgs makes argument-count errors usage errors.
func WrapPositionalArgs(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return FlagErrorFunc(cmd, inner(cmd, args))
	}
}

// RunSubcommands is the RunE of command groups.  Running a group on its own prints its help on
// stderr and exits with ExitUsage; leaving RunE unset would make cobra report success.
func RunSubcommands(cmd *cobra.Command, args []string) error {
	cmd.SetOut(cmd.ErrOrStderr())
	cmd.HelpFunc()(cmd, args)
	exit(ExitUsage)
	return nil
}

// FlagErrorFunc is set with (*cobra.Command).SetFlagErrorFunc.  It prints err with a pointer to
// --help and exits with ExitUsage, so that Execute only ever returns execution errors.  A nil err
// is returned unchanged.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	// a multi-line message gets a blank line before the pointer to --help
	errStr := strings.TrimRight(err.Error(), "\n")
	if strings.Contains(errStr, "\n") {
		errStr += "\n"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\nSee '%s --help' for more information.\n",
		cmd.CommandPath(), errStr, cmd.CommandPath())
	exit(ExitUsage)
	return nil
}

// Fail reports an execution error returned by Execute and exits with ExitFailure.
func Fail(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %v\n", cmd.CommandPath(), err)
	exit(ExitFailure)
}
