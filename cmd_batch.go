package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/odlog"
)

var argparserBatch = &cobra.Command{
	Use:   "batch {[flags]|SUBCOMMAND...}",
	Short: "Monitor OpendTect batch jobs",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserBatch)

	argparserBatch.AddCommand(&cobra.Command{
		Use:   "status [flags] LOGFILE",
		Short: "Print whether the batch job writing LOGFILE has finished",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := odlog.BatchIsFinished(args[0])
			if err != nil {
				return err
			}
			status := "running"
			if done {
				status = "finished"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	})

	var flags struct {
		Poll    time.Duration
		Timeout time.Duration
	}
	waitCmd := &cobra.Command{
		Use:   "wait [flags] LOGFILE",
		Short: "Wait until the batch job writing LOGFILE has finished",
		Long: "Block until the last line of LOGFILE says that batch processing has finished.  " +
			"LOGFILE does not need to exist yet.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := setup(cmd)
			if err != nil {
				return err
			}
			if flags.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, flags.Timeout)
				defer cancel()
			}
			if err := odlog.WaitBatchFinished(ctx, args[0], flags.Poll); err != nil {
				return err
			}
			odlog.Std(ctx, "Batch job finished at %s", odlog.TimeString(time.Now(), false, true))
			return nil
		},
	}
	waitCmd.Flags().DurationVar(&flags.Poll, "poll", odlog.DefaultPollInterval,
		"Check LOGFILE at least every `INTERVAL`")
	waitCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0,
		"Give up after `DURATION` (0 waits forever)")
	argparserBatch.AddCommand(waitCmd)
}
