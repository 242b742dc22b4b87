package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/opendtect/odgo/pkg/cliutil"
	"github.com/opendtect/odgo/pkg/iopar"
	"github.com/opendtect/odgo/pkg/odattr"
)

func isHDF5(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".h5", ".hdf5", ".hdf":
		return true
	}
	return false
}

// parseSets turns KEY=VALUE arguments into attributes.
func parseSets(sets []string) (odattr.Map, error) {
	ret := make(odattr.Map, len(sets))
	for _, set := range sets {
		key, val, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want KEY=VALUE)", set)
		}
		ret[key] = val
	}
	return ret, nil
}

func findH5Object(objs []*odattr.H5Object, path string) *odattr.H5Object {
	for _, obj := range objs {
		if obj.Path == path {
			return obj
		}
	}
	return nil
}

func init() {
	var flags struct {
		Key    string
		Object string
		Sets   []string
	}
	cmd := &cobra.Command{
		Use:   "attrs [flags] FILE >ATTRS.yml",
		Short: "Dump or change the attributes of an HDF5 or parameter file",
		Long: "Dump the attributes stored in FILE.  For HDF5 files (.h5, .hdf5) every group " +
			"and dataset is listed with its attributes; other files are read as OpendTect " +
			"parameter files." +
			"\n\n" +
			"With --key, only the value of that attribute of --object is printed.  With " +
			"--set, the attributes are stored in the file instead; numbers and " +
			"back-quote separated lists of numbers are stored as numbers.  Only HDF5 " +
			"datasets can be changed, not groups or parameter files.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(flags.Sets)
			if err != nil {
				return cliutil.FlagErrorFunc(cmd, err)
			}
			if len(sets) > 0 && flags.Key != "" {
				return cliutil.FlagErrorFunc(cmd, fmt.Errorf("--key and --set are mutually exclusive"))
			}
			ctx, _, err := setup(cmd)
			if err != nil {
				return err
			}
			filename := args[0]

			var holder odattr.Holder
			var dump interface{}
			var save func() error
			if isHDF5(filename) {
				objs, err := odattr.ReadH5(filename)
				if err != nil {
					if len(objs) == 0 {
						return err
					}
					dlog.Warnf(ctx, "%v", err)
				}
				type object struct {
					Kind  string            `yaml:"kind"`
					Attrs map[string]string `yaml:"attributes,omitempty"`
				}
				all := make(map[string]object, len(objs))
				for _, obj := range objs {
					all[obj.Path] = object{Kind: obj.Kind, Attrs: odattr.Dict(obj)}
				}
				dump = all
				if obj := findH5Object(objs, flags.Object); obj != nil {
					holder = obj
					save = obj.Save
				}
			} else {
				par, err := iopar.ReadFile(filename)
				if err != nil {
					return err
				}
				holder = par
				dump = odattr.Dict(par)
				save = func() error {
					return fmt.Errorf("%s: --set needs an HDF5 file", filename)
				}
			}
			dlog.Debugf(ctx, "read attributes of %s", filename)

			if flags.Key == "" && len(sets) == 0 {
				return printYAML(cmd.OutOrStdout(), dump)
			}
			if holder == nil {
				return fmt.Errorf("%s: no object %q", filename, flags.Object)
			}
			if flags.Key != "" {
				val, err := odattr.GetText(holder, flags.Key)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
				return err
			}
			for _, key := range sets.AttrKeys() {
				odattr.SetText(holder, key, sets[key])
			}
			return save()
		},
	}
	cmd.Flags().StringVar(&flags.Key, "key", "", "Print only the value of attribute `KEY`")
	cmd.Flags().StringVar(&flags.Object, "object", "/",
		"Use the HDF5 group or dataset at `PATH` for --key and --set")
	cmd.Flags().StringArrayVar(&flags.Sets, "set", nil,
		"Store attribute `KEY=VALUE` (may be given more than once)")
	argparser.AddCommand(cmd)
}
