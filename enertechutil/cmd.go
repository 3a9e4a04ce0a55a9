/*
Copyright © 2026 the enertech authors.
This file is part of enertech.

enertech is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

enertech is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with enertech.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package enertechutil contains the command-line interface of the
// enertech model.
package enertechutil

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/subsector"
	"github.com/spatialmodel/enertech/techinfo"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to enertech.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel sets the level of log messages: debug, info, warning
              or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "scenario",
			usage: `
              scenario specifies the TOML file describing the run: region,
              periods, demand, prices and the technology files.`,
			shorthand:  "s",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "iterations",
			usage: `
              iterations specifies the number of rounds of cost, share and
              production calculations in each period.`,
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "calibrate",
			usage: `
              calibrate specifies whether share weights are adjusted to
              reproduce the calibration values of the technologies.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "results",
			usage: `
              results specifies the SQLite database the run results are
              added to. Leave empty to skip.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "workbook",
			usage: `
              workbook specifies the Excel file the run results are written
              to. Leave empty to skip.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "debugxml",
			usage: `
              debugxml specifies the file the state of every technology in
              the periods given by debugperiods is written to.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "debugperiods",
			usage: `
              debugperiods specifies the periods written to debugxml.`,
			defaultVal: []int{0},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "dump",
			usage: `
              dump specifies whether the technology results are printed
              after the run.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "input",
			usage: `
              input specifies the XML file to read.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{roundtripCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the XML file to write. The default is
              standard output.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{roundtripCmd.Flags()},
		},
		{
			name: "global",
			usage: `
              global specifies that input is a global technology database
              rather than a subsector.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{roundtripCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ENERTECH")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(roundtripCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and configures logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("enertech: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("loglevel"))
	if err != nil {
		return fmt.Errorf("enertech: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "enertech",
	Short: "An energy technology competition model.",
	Long: `enertech calculates the costs, market shares, production and emissions of
the technologies competing to supply one subsector of an energy-economy model.
Use the subcommands specified below to access the model functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ENERTECH_var' where 'var' is
the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of enertech.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("enertech v%s\n", enertech.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run solves every period of the scenario given by --scenario and writes
the results to the outputs that are specified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario := Cfg.GetString("scenario")
		if scenario == "" {
			return fmt.Errorf("enertech: you need to specify a scenario file (for example: --scenario=base.toml)")
		}
		c, err := LoadConfigFile(scenario)
		if err != nil {
			return err
		}
		periods, err := cast.ToIntSliceE(Cfg.Get("debugperiods"))
		if err != nil {
			return fmt.Errorf("enertech: reading 'debugperiods': %v", err)
		}
		r, err := Run(c, RunOptions{
			Iterations:   Cfg.GetInt("iterations"),
			Calibrate:    Cfg.GetBool("calibrate"),
			ResultsDB:    os.ExpandEnv(Cfg.GetString("results")),
			Workbook:     os.ExpandEnv(Cfg.GetString("workbook")),
			DebugXML:     os.ExpandEnv(Cfg.GetString("debugxml")),
			DebugPeriods: periods,
		}, logrus.StandardLogger())
		if err != nil {
			return err
		}
		if r.RunID != "" {
			cmd.Printf("results saved as run %s\n", r.RunID)
		}
		if Cfg.GetBool("dump") {
			pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", r.Technologies)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Read and rewrite a technology file.",
	Long: `roundtrip reads a subsector or global technology XML file and writes it
back out in canonical form, leaving out values that equal their defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := os.ExpandEnv(Cfg.GetString("input"))
		if input == "" {
			return fmt.Errorf("enertech: you need to specify an input file (for example: --input=fossil.xml)")
		}
		in, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("enertech: opening input: %v", err)
		}
		defer in.Close()
		out := cmd.OutOrStdout()
		if output := os.ExpandEnv(Cfg.GetString("output")); output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("enertech: creating output: %v", err)
			}
			defer f.Close()
			out = f
		}
		return Roundtrip(in, out, Cfg.GetBool("global"), logrus.StandardLogger())
	},
	DisableAutoGenTag: true,
}

// GlobalDatabaseXMLName is the root element of a global technology
// database written by Roundtrip.
const GlobalDatabaseXMLName = "global-technology-database"

// Roundtrip reads a subsector, or a global technology database if global
// is true, from r and writes it to w.
func Roundtrip(r io.Reader, w io.Writer, global bool, log logrus.FieldLogger) error {
	e := xml.NewEncoder(w)
	e.Indent("", "  ")
	if global {
		db, err := techinfo.LoadDatabase(r)
		if err != nil {
			return err
		}
		err = e.EncodeElement(db, xml.StartElement{Name: xml.Name{Local: GlobalDatabaseXMLName}})
		if err != nil {
			return fmt.Errorf("enertech: writing: %v", err)
		}
	} else {
		s, err := subsector.Load(r, "", log)
		if err != nil {
			return err
		}
		if err := e.Encode(s); err != nil {
			return fmt.Errorf("enertech: writing: %v", err)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
