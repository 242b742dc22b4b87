// Command odgo finds OpendTect installations and surveys, and reads and writes the data stored in
// them.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
)

var globalFlags struct {
	DtectExec string
	DtectData string
	Survey    string
	ArgsFile  string
	LogFile   string
	SysOut    string
}

var argparser = &cobra.Command{
	Use:   "odgo {[flags]|SUBCOMMAND...}",
	Short: "Work with OpendTect installations and survey data",
	Long: "odgo locates an OpendTect installation and the current survey, lists the " +
		"objects of the survey database, loads well data, and runs OpendTect programs." +
		"\n\n" +
		"Where to look is taken, in order of precedence, from the command line flags, " +
		"from --args-file, from the environment (DTECT_APPL, DTECT_DATA, ...), and from " +
		"the user's OpendTect settings.",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeLoggers()
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)

	flags := argparser.PersistentFlags()
	flags.StringVar(&globalFlags.DtectExec, "dtectexec", "",
		"Use the OpendTect executables in `DIR`")
	flags.StringVar(&globalFlags.DtectData, "dtectdata", "",
		"Use `DIR` as the survey data root")
	flags.StringVar(&globalFlags.Survey, "survey", "",
		"Use survey directory `NAME` below the data root")
	flags.StringVar(&globalFlags.ArgsFile, "args-file", "",
		"Read OpendTect arguments (dtectexec, dtectdata, survey) from YAML `FILE`")
	flags.StringVar(&globalFlags.LogFile, "logfile", "",
		"Write the processing log to existing `FILE` (or stdout, stderr)")
	flags.StringVar(&globalFlags.SysOut, "sysout", "",
		"Write the standard log to existing `FILE` (or stdout, stderr)")
}

func main() {
	ctx := context.Background()

	err := argparser.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when RunE fails
	_ = closeLoggers()
	if err != nil {
		cliutil.Fail(argparser, err)
	}
}
