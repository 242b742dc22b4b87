package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/odcmd"
	"github.com/opendtect/odgo/pkg/odlog"
	"github.com/opendtect/odgo/pkg/odsettings"
)

func init() {
	cmd := &cobra.Command{
		Use:   "script [flags] SCRIPTFILE",
		Short: "Run an OpendTect command-driver script",
		Long: "Run SCRIPTFILE with the OpendTect command driver (od_main --cmd), in the " +
			"survey selected by the global flags.  The program's output goes to the " +
			"processing log (--logfile).  When that is a file, the run fails if the log " +
			"mentions an error.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			odArgs := odsettings.ODArgs(ctx, e.User, e.Locator, e.Args)
			if err := odcmd.DoScript(ctx, e.Locator, odArgs, args[0]); err != nil {
				return err
			}
			logfile := odlog.ProcLogFile(ctx)
			if logfile == "" {
				return nil
			}
			failed, err := odcmd.HasError(logfile)
			if err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("script %s: errors reported in %s", args[0], logfile)
			}
			return nil
		},
	}
	argparser.AddCommand(cmd)
}
