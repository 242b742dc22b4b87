package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/opendtect/odgo/pkg/oddb"
	"github.com/opendtect/odgo/pkg/odinstall"
	"github.com/opendtect/odgo/pkg/odlog"
	"github.com/opendtect/odgo/pkg/odsettings"
)

// env is what every subcommand works from.
type env struct {
	User    *odsettings.User
	Locator *odinstall.Locator
	// Args holds what the user asked for; ODArgs completes it.
	Args odsettings.Args
}

// openLoggers are the log sinks set up by the running command.
var openLoggers []*odlog.Loggers

// closeLoggers closes the log files opened by setup.  It is safe to call more than once.
func closeLoggers() error {
	var err error
	for _, l := range openLoggers {
		if _err := l.Close(); _err != nil && err == nil {
			err = _err
		}
	}
	openLoggers = nil
	return err
}

// setup applies the global flags: it redirects the log sinks and resolves the arguments.
func setup(cmd *cobra.Command) (context.Context, *env, error) {
	ctx := odlog.Setup(cmd.Context(), globalFlags.SysOut, globalFlags.LogFile)
	openLoggers = append(openLoggers, odlog.Get(ctx))

	loc, err := odinstall.NewLocator(ctx)
	if err != nil {
		return nil, nil, err
	}
	user := &odsettings.User{
		Env:      loc.Env,
		Platform: loc.Platform,
	}

	var args odsettings.Args
	if globalFlags.ArgsFile != "" {
		if args, err = odsettings.ReadArgsFile(globalFlags.ArgsFile); err != nil {
			return nil, nil, err
		}
	}
	args = args.Merge(odsettings.FromValues(globalFlags.DtectExec, globalFlags.DtectData, globalFlags.Survey))

	return ctx, &env{
		User:    user,
		Locator: loc,
		Args:    args,
	}, nil
}

func (e *env) openSurvey(ctx context.Context) (*oddb.Survey, error) {
	return oddb.OpenFromArgs(ctx, e.User, e.Args)
}

func printYAML(w io.Writer, v interface{}) error {
	bs, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
