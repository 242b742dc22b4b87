package main

import (
	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/odsettings"
)

func init() {
	cmd := &cobra.Command{
		Use:   "args [flags] >ARGS.yml",
		Short: "Print the OpendTect arguments in effect",
		Long: "Print the arguments that OpendTect programs would be started with: the " +
			"executables directory, the survey data root and survey, and the log files.  " +
			"The output is accepted by --args-file.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), odsettings.ODArgs(ctx, e.User, e.Locator, e.Args))
		},
	}
	argparser.AddCommand(cmd)
}
