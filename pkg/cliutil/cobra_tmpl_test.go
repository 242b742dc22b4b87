// Copyright (C) 2021  Ambassador Labs
// Copyright (C) 2026  dGB Earth Sciences
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/opendtect/odgo/pkg/cliutil"
)

func wellGroup() *cobra.Command {
	noopRunE := func(_ *cobra.Command, _ []string) error {
		return nil
	}
	cmd := &cobra.Command{
		Use:   "well {[flags]|SUBCOMMAND...}",
		Short: "Read wells, their logs, markers and tracks",
		Long: "Read wells, their logs, markers and tracks from the survey database.  " +
			"Log values are printed as stored, or resampled onto a regular depth grid " +
			"with --zstep.",
		Args: cliutil.OnlySubcommands,
		RunE: cliutil.RunSubcommands,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "resample [flags] WELL [LOG...]",
		Short: "Resample logs onto a regular depth grid, interpolating across gaps shorter than one step",
		RunE:  noopRunE,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list [flags]",
		Short: "List the wells of the survey",
		RunE:  noopRunE,
	})
	return cmd
}

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestHelpTemplate(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	type testcase struct {
		InputCmd     *cobra.Command
		ExpectedHelp string
	}
	testcases := map[string]testcase{
		"group": {
			InputCmd: wellGroup(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				"Usage: well {[flags]|SUBCOMMAND...}\n" +
				"Read wells, their logs, markers and tracks\n" +
				"\n" +
				"Read wells, their logs, markers and tracks from the survey database.  Log\n" +
				"values are printed as stored, or resampled onto a regular depth grid with\n" +
				"--zstep.\n" +
				"\n" +
				"Available Commands:\n" +
				"  list          List the wells of the survey\n" +
				"  resample      Resample logs onto a regular depth grid, interpolating\n" +
				"                across gaps shorter than one step\n" +
				"\n" +
				"Use \"well [command] --help\" for more information about a command.\n" +
				"",
		},
		"no-long": {
			InputCmd: func() *cobra.Command {
				cmd := wellGroup()
				cmd.Long = ""
				return cmd
			}(),
			ExpectedHelp: "" +
				"Usage: well {[flags]|SUBCOMMAND...}\n" +
				"Read wells, their logs, markers and tracks\n" +
				"\n" +
				"Available Commands:\n" +
				"  list          List the wells of the survey\n" +
				"  resample      Resample logs onto a regular depth grid, interpolating\n" +
				"                across gaps shorter than one step\n" +
				"\n" +
				"Use \"well [command] --help\" for more information about a command.\n" +
				"",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			tcData.InputCmd.SetHelpTemplate(cliutil.HelpTemplate)

			var out strings.Builder
			tcData.InputCmd.SetOut(&out)
			tcData.InputCmd.HelpFunc()(tcData.InputCmd, []string{"--help"})

			assert.Equal(t, tcData.ExpectedHelp, out.String())
		})
	}
}

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestTerminalWidth(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	assert.Equal(t, 132, cliutil.GetTerminalWidth())
}
