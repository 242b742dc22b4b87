package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/odinstall"
)

var argparserInstall = &cobra.Command{
	Use:   "install {[flags]|SUBCOMMAND...}",
	Short: "Locate the OpendTect installation",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserInstall)

	// installPathCommand adds a subcommand that prints a single path from the Locator.
	installPathCommand := func(use, short string, withConfig bool,
		get func(ctx context.Context, loc *odinstall.Locator, execDir string, cfg odinstall.BuildConfig) (string, error),
	) {
		var flagConfig odinstall.BuildConfig
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, e, err := setup(cmd)
				if err != nil {
					return err
				}
				path, err := get(ctx, e.Locator, e.Args.Exec(), flagConfig)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
				return err
			},
		}
		if withConfig {
			cmd.Flags().Var(&flagConfig, "config",
				"Which `BUILD` to look for: auto, release, or debug")
		}
		argparserInstall.AddCommand(cmd)
	}

	installPathCommand("dir [flags]", "Print the root directory of the installation", false,
		func(ctx context.Context, loc *odinstall.Locator, execDir string, _ odinstall.BuildConfig) (string, error) {
			return loc.SoftwareDir(ctx, execDir)
		})
	installPathCommand("exec [flags]", "Print the directory with the OpendTect executables", true,
		func(ctx context.Context, loc *odinstall.Locator, execDir string, cfg odinstall.BuildConfig) (string, error) {
			return loc.ExecDir(ctx, execDir, cfg)
		})
	installPathCommand("lib [flags]", "Print the directory with the OpendTect shared libraries", true,
		func(ctx context.Context, loc *odinstall.Locator, execDir string, cfg odinstall.BuildConfig) (string, error) {
			return loc.LibDir(ctx, execDir, cfg)
		})
	installPathCommand("odbind [flags]", "Print the path of the ODBind library", true,
		func(ctx context.Context, loc *odinstall.Locator, execDir string, cfg odinstall.BuildConfig) (string, error) {
			return loc.ODBindLib(ctx, execDir, cfg)
		})

	iconCmd := &cobra.Command{
		Use:   "icon [flags] NAME",
		Short: "Print the path of a default-theme icon",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			path, err := e.Locator.IconPath(ctx, e.Args.Exec(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	argparserInstall.AddCommand(iconCmd)
}
