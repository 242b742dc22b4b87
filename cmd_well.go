package main

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/wellman"
)

var argparserWell = &cobra.Command{
	Use:   "well {[flags]|SUBCOMMAND...}",
	Short: "Read wells, their logs, markers and tracks",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func wellManager(cmd *cobra.Command) (context.Context, *wellman.Manager, error) {
	ctx, e, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	surv, err := e.openSurvey(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ctx, wellman.NewManager(surv), nil
}

// logIndices maps log names to indices into names; no names selects every log.
func logIndices(well string, names, want []string) ([]int, error) {
	if len(want) == 0 {
		idxs := make([]int, len(names))
		for i := range names {
			idxs[i] = i
		}
		return idxs, nil
	}
	idxs := make([]int, 0, len(want))
	for _, w := range want {
		found := false
		for i, n := range names {
			if n == w {
				idxs = append(idxs, i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: well %q has no log %q", wellman.ErrNoSuchLog, well, w)
		}
	}
	return idxs, nil
}

func init() {
	argparser.AddCommand(argparserWell)

	argparserWell.AddCommand(&cobra.Command{
		Use:   "list [flags]",
		Short: "List the wells of the survey",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			names, err := wm.Names()
			if err != nil {
				if len(names) == 0 {
					return err
				}
				dlog.Warnf(ctx, "%v", err)
			}
			return printLines(cmd.OutOrStdout(), names)
		},
	})

	argparserWell.AddCommand(&cobra.Command{
		Use:   "info [flags] WELL >INFO.yml",
		Short: "Print the header of a well",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			info, err := wm.Info(args[0])
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), info)
		},
	})

	argparserWell.AddCommand(&cobra.Command{
		Use:   "track [flags] WELL >TRACK.yml",
		Short: "Print the well path",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			track, err := wm.Track(args[0])
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), track)
		},
	})

	argparserWell.AddCommand(&cobra.Command{
		Use:   "markers [flags] WELL >MARKERS.yml",
		Short: "Print the markers of a well, ordered by depth",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			markers, err := wm.Markers(args[0])
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), markers)
		},
	})

	argparserWell.AddCommand(&cobra.Command{
		Use:   "logs [flags] WELL",
		Short: "List the logs of a well",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			names, err := wm.LogNames(args[0])
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), names)
		},
	})

	argparserWell.AddCommand(&cobra.Command{
		Use:   "log [flags] WELL LOG >LOG.yml",
		Short: "Print one log as stored",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			dah, vals, err := wm.Log(args[0], args[1])
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), &wellman.LogSet{
				Dah:    dah,
				Names:  []string{args[1]},
				Values: [][]float64{vals},
			})
		},
	})

	resampleCmd := func() *cobra.Command {
		var flagZStep float64
		cmd := &cobra.Command{
			Use:   "resample [flags] WELL [LOG...] >LOGS.yml",
			Short: "Print logs resampled on a common depth axis",
			Long: "Resample the named logs of WELL (all of them if none are named) on a " +
				"regular measured-depth axis.  A sample is the mean of the log values within " +
				"half a step; where there are none it is interpolated, and outside the log it " +
				"is undefined (.nan).",
			Args: cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				if flagZStep < 0 {
					return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--zstep must not be negative"))
				}
				_, wm, err := wellManager(cmd)
				if err != nil {
					return err
				}
				names, err := wm.LogNames(args[0])
				if err != nil {
					return err
				}
				idxs, err := logIndices(args[0], names, args[1:])
				if err != nil {
					return err
				}
				set, err := wm.Logs(args[0], idxs, flagZStep)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), set)
			},
		}
		cmd.Flags().Float64Var(&flagZStep, "zstep", wellman.DefaultZStep,
			"Sample the logs every `STEP` depth units")
		return cmd
	}()
	argparserWell.AddCommand(resampleCmd)

	argparserWell.AddCommand(&cobra.Command{
		Use:   "stats [flags] WELL [LOG...] >STATS.yml",
		Short: "Summarize the defined values of logs",
		Args:  cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wm, err := wellManager(cmd)
			if err != nil {
				return err
			}
			want := args[1:]
			if len(want) == 0 {
				if want, err = wm.LogNames(args[0]); err != nil {
					return err
				}
			}
			ret := make(map[string]wellman.Stats, len(want))
			for _, name := range want {
				_, vals, err := wm.Log(args[0], name)
				if err != nil {
					return err
				}
				st, err := wellman.LogStats(vals)
				if err != nil {
					return fmt.Errorf("log %q: %w", name, err)
				}
				ret[name] = st
			}
			return printYAML(cmd.OutOrStdout(), ret)
		},
	})
}
