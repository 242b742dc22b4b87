package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/fsutil"
	"github.com/opendtect/odgo/pkg/horman"
)

var argparserHorizon = &cobra.Command{
	Use:   "horizon {[flags]|SUBCOMMAND...}",
	Short: "Prepare horizon grids for import",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserHorizon)

	var flags struct {
		Inl    horman.StepRange
		Crl    horman.StepRange
		OutDir string
	}
	cmd := &cobra.Command{
		Use:   "char [flags] IN_GRIDFILE [>OUT_CHARFILE]",
		Short: "Convert a grid of z values to the .char import format",
		Long: "Read a grid of z values from IN_GRIDFILE (one inline per line, crossline values " +
			"separated by white space, \"nan\" or \"undef\" for holes) and write it as " +
			"\"inline crossline z\" rows.  With --out-dir, a new uniquely named .char file is " +
			"created in that directory and its name is printed; otherwise the rows are " +
			"written to stdout.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if flags.Inl.Step == 0 || flags.Crl.Step == 0 {
				return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--inl and --crl are required"))
			}
			fh, err := fsutil.Open("read grid", args[0])
			if err != nil {
				return err
			}
			defer func() {
				if _err := fh.Close(); _err != nil && err == nil {
					err = _err
				}
			}()
			grid, err := horman.ReadGrid(fh)
			if err != nil {
				return &fs.PathError{Op: "read grid", Path: args[0], Err: err}
			}

			if flags.OutDir == "" {
				return horman.WriteChar(cmd.OutOrStdout(), grid, flags.Inl, flags.Crl)
			}
			name, err := horman.CreateCharFile(flags.OutDir, grid, flags.Inl, flags.Crl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
	cmd.Flags().Var(&flags.Inl, "inl", "Inline numbers of the grid rows, as `START-STOP[:STEP]`")
	cmd.Flags().Var(&flags.Crl, "crl", "Crossline numbers of the grid columns, as `START-STOP[:STEP]`")
	cmd.Flags().StringVar(&flags.OutDir, "out-dir", "", "Create the .char file in `DIR`")
	argparserHorizon.AddCommand(cmd)
}
