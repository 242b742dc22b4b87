package main

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/oddb"
	"github.com/opendtect/odgo/pkg/seisman"
)

var argparserSeis = &cobra.Command{
	Use:   "seis {[flags]|SUBCOMMAND...}",
	Short: "Find the seismic data sets of the survey",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func seisManager(cmd *cobra.Command) (context.Context, *seisman.Manager, error) {
	ctx, e, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	surv, err := e.openSurvey(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ctx, seisman.NewManager(surv), nil
}

func init() {
	argparser.AddCommand(argparserSeis)

	argparserSeis.AddCommand(&cobra.Command{
		Use:   "list [flags]",
		Short: "List the seismic data sets",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sm, err := seisManager(cmd)
			if err != nil {
				return err
			}
			list, err := sm.DBList(true)
			if err != nil {
				if len(list) == 0 {
					return err
				}
				dlog.Warnf(ctx, "%v", err)
			}
			names := make([]string, 0, len(list))
			for _, info := range list {
				names = append(names, info.Name)
			}
			return printLines(cmd.OutOrStdout(), names)
		},
	})

	argparserSeis.AddCommand(&cobra.Command{
		Use:   "location [flags] NAME",
		Short: "Print the file holding the samples of a data set",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sm, err := seisManager(cmd)
			if err != nil {
				return err
			}
			loc, err := sm.FileLocation(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), loc)
			return err
		},
	})

	argparserSeis.AddCommand(&cobra.Command{
		Use:   "has [flags] NAME",
		Short: "Exit with status 0 if the data set exists, 1 otherwise",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sm, err := seisManager(cmd)
			if err != nil {
				return err
			}
			if !sm.IsPresent(args[0]) {
				return fmt.Errorf("seismic data %q: %w", args[0], oddb.ErrNotFound)
			}
			return nil
		},
	})
}
