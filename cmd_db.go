package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/oddb"
)

var argparserDB = &cobra.Command{
	Use:   "db {[flags]|SUBCOMMAND...}",
	Short: "Inspect and change the object database of the survey",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDB)

	argparserDB.AddCommand(&cobra.Command{
		Use:   "survey [flags] >SURVEY.yml",
		Short: "Describe the survey in use",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			surv, err := e.openSurvey(ctx)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), map[string]string{
				"Name":      surv.Name(),
				"Directory": surv.DirName,
				"Data root": surv.DataRoot,
			})
		},
	})

	listCmd := func() *cobra.Command {
		var flags struct {
			All   bool
			Match string
			Names bool
		}
		cmd := &cobra.Command{
			Use:   "list [flags] GROUP >OBJECTS.yml",
			Short: "List the objects of a translator group",
			Long: "List the objects of translator group GROUP, e.g. \"Seismic Data\" or \"Well\".  " +
				"With --all, every group whose name starts with GROUP is listed.",
			Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				if flags.Match != "" && !doublestar.ValidatePattern(flags.Match) {
					return cliutil.FlagErrorFunc(cmd, fmt.Errorf("invalid --match pattern %q", flags.Match))
				}
				ctx, e, err := setup(cmd)
				if err != nil {
					return err
				}
				surv, err := e.openSurvey(ctx)
				if err != nil {
					return err
				}
				infos, err := surv.ObjectInfos(args[0], flags.All)
				if err != nil {
					if len(infos) == 0 {
						return err
					}
					// Report the broken directories but keep what could be read.
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: warning: %v\n", cmd.CommandPath(), err)
				}
				if flags.Match != "" {
					kept := infos[:0]
					for _, info := range infos {
						if ok, _ := doublestar.Match(flags.Match, info.Name); ok {
							kept = append(kept, info)
						}
					}
					infos = kept
				}
				if flags.Names {
					names := make([]string, 0, len(infos))
					for _, info := range infos {
						names = append(names, info.Name)
					}
					return printLines(cmd.OutOrStdout(), names)
				}
				return printYAML(cmd.OutOrStdout(), infos)
			},
		}
		cmd.Flags().BoolVar(&flags.All, "all", false,
			"List every group that starts with GROUP")
		cmd.Flags().StringVar(&flags.Match, "match", "",
			"Only list objects whose name matches `GLOB`")
		cmd.Flags().BoolVar(&flags.Names, "names", false,
			"Print only the object names, one per line")
		return cmd
	}()
	argparserDB.AddCommand(listCmd)

	var flagGroup string
	infoCmd := &cobra.Command{
		Use:   "info [flags] NAME_OR_KEY >OBJECT.yml",
		Short: "Describe one object",
		Long: "Describe the object named NAME_OR_KEY in the group given by --group.  Without " +
			"--group, the argument must be a database key such as \"100010.2\".",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			surv, err := e.openSurvey(ctx)
			if err != nil {
				return err
			}
			var info oddb.ObjectInfo
			if flagGroup == "" {
				info, err = surv.ObjectInfoByKey(args[0])
			} else {
				info, err = surv.ObjectInfo(args[0], flagGroup)
			}
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), info)
		},
	}
	infoCmd.Flags().StringVar(&flagGroup, "group", "", "Look the object up by name in `GROUP`")
	argparserDB.AddCommand(infoCmd)

	argparserDB.AddCommand(&cobra.Command{
		Use:   "location [flags] KEY",
		Short: "Print the file of the object with database key KEY",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			surv, err := e.openSurvey(ctx)
			if err != nil {
				return err
			}
			loc, err := surv.FileLocation(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), loc)
			return err
		},
	})

	argparserDB.AddCommand(&cobra.Command{
		Use:   "has [flags] GROUP NAME",
		Short: "Exit with status 0 if the object exists, 1 otherwise",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			surv, err := e.openSurvey(ctx)
			if err != nil {
				return err
			}
			if !surv.HasObject(args[1], args[0]) {
				return fmt.Errorf("%s %q: %w", args[0], args[1], oddb.ErrNotFound)
			}
			return nil
		},
	})

	createCmd := func() *cobra.Command {
		var flags struct {
			Translator string
			Overwrite  bool
		}
		cmd := &cobra.Command{
			Use:   "create [flags] GROUP NAME",
			Short: "Register a new object and print the file it should be written to",
			Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, e, err := setup(cmd)
				if err != nil {
					return err
				}
				surv, err := e.openSurvey(ctx)
				if err != nil {
					return err
				}
				fnm, err := surv.CreateObject(args[1], args[0], flags.Translator, flags.Overwrite)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), fnm)
				return err
			},
		}
		cmd.Flags().StringVar(&flags.Translator, "translator", "",
			"Store the object in format `NAME`, e.g. \"CBVS\"")
		cmd.Flags().BoolVar(&flags.Overwrite, "overwrite", false,
			"Reuse the entry of an existing object with the same name")
		return cmd
	}()
	argparserDB.AddCommand(createCmd)

	argparserDB.AddCommand(&cobra.Command{
		Use:   "remove [flags] GROUP NAME",
		Short: "Remove an object and its file",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, e, err := setup(cmd)
			if err != nil {
				return err
			}
			surv, err := e.openSurvey(ctx)
			if err != nil {
				return err
			}
			return surv.RemoveObject(args[1], args[0])
		},
	})
}
