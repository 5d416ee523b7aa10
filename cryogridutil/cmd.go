/*
Copyright © 2026 the Cryogrid authors.
This file is part of Cryogrid.

Cryogrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Cryogrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Cryogrid.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cryogridutil wires the cryogrid library into a command-line
// interface for building grid definition files.
package cryogridutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/cryogrid"
)

// Cfg holds the program configuration, populated from command-line flags,
// environment variables in the format 'CRYOGRID_var', and an optional
// configuration file given by the --config flag.
var Cfg *viper.Viper

func init() {
	options := []struct {
		name       string
		usage      string
		defaultVal interface{}
		flagsets   []*pflag.FlagSet
	}{
		{
			name:       "config",
			usage:      "config specifies the path to a configuration file.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name:       "GridName",
			usage:      "GridName is the name of the grid to build and of the output file (<GridName>.nc).",
			defaultVal: "grid",
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name: "GridProj",
			usage: "GridProj is the projection relating the grid's XY coordinates to lon/lat, " +
				"in Proj4 format.",
			defaultVal: "+proj=stere +lon_0=0 +lat_0=-90 +lat_ts=71.0 +ellps=WGS84",
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "X0",
			usage:      "X0 is the x coordinate of the grid's lower-left corner [m].",
			defaultVal: -2802500.0,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "Y0",
			usage:      "Y0 is the y coordinate of the grid's lower-left corner [m].",
			defaultVal: -2802500.0,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "Dx",
			usage:      "Dx is the cell length in the x direction [m].",
			defaultVal: 5000.0,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "Dy",
			usage:      "Dy is the cell length in the y direction [m].",
			defaultVal: 5000.0,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "Nx",
			usage:      "Nx is the number of cells in the x direction.",
			defaultVal: 1201,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "Ny",
			usage:      "Ny is the number of cells in the y direction.",
			defaultVal: 1201,
			flagsets:   []*pflag.FlagSet{gridCmd.Flags()},
		},
		{
			name:       "VarName",
			usage:      "VarName is the name prefix of the grid variables within the output file.",
			defaultVal: "grid",
			flagsets:   []*pflag.FlagSet{gridCmd.Flags(), overlapCmd.Flags()},
		},
		{
			name:       "GridA",
			usage:      "GridA is the path to the first source grid file for the overlap.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{overlapCmd.Flags()},
		},
		{
			name:       "GridB",
			usage:      "GridB is the path to the second source grid file for the overlap.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{overlapCmd.Flags()},
		},
		{
			name:       "Output",
			usage:      "Output is the path of the exchange grid file to write.",
			defaultVal: "exchange.nc",
			flagsets:   []*pflag.FlagSet{overlapCmd.Flags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("CRYOGRID")
	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.String(option.name, v, option.usage)
			case int:
				set.Int(option.name, v, option.usage)
			case float64:
				set.Float64(option.name, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	Root.AddCommand(versionCmd)
	Root.AddCommand(gridCmd)
	Root.AddCommand(overlapCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("cryogrid: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "cryogrid",
	Short: "A conservative regridding toolkit for ice model coupling.",
	Long: `Cryogrid builds grid definition files for conservatively regridding
fields between atmosphere and ice model grids. Configuration can be changed
with a configuration file (--config), command-line arguments, or environment
variables in the format 'CRYOGRID_var'.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Cryogrid v%s\n", cryogrid.Version)
	},
	DisableAutoGenTag: true,
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Create a regular projected grid and write it to a file",
	Long: `grid realizes a regular XY grid from the configured extents and
projection and writes it to <GridName>.nc.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Grid(Cfg)
	},
	DisableAutoGenTag: true,
}

var overlapCmd = &cobra.Command{
	Use:   "overlap",
	Short: "Compute the exchange grid between two grid files",
	Long: `overlap reads two grid files, computes the exchange grid holding
their weighted cell overlaps, and writes it to the configured output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Overlap(Cfg)
	},
	DisableAutoGenTag: true,
}

// Grid builds the configured regular XY grid and writes it out.
func Grid(cfg *viper.Viper) error {
	name := cfg.GetString("GridName")
	log := logrus.WithField("grid", name)
	log.Info("realizing grid")
	g, err := cryogrid.NewXYGrid(name, cfg.GetString("GridProj"),
		cfg.GetFloat64("X0"), cfg.GetFloat64("Dx"), cfg.GetInt("Nx"),
		cfg.GetFloat64("Y0"), cfg.GetFloat64("Dy"), cfg.GetInt("Ny"), nil)
	if err != nil {
		return err
	}
	log.WithField("cells", g.NCellsFull()).Info("writing grid")
	return g.WriteFile(name+".nc", cfg.GetString("VarName"))
}

// Overlap computes and writes the exchange grid between two grid files.
func Overlap(cfg *viper.Viper) error {
	vname := cfg.GetString("VarName")
	a, err := cryogrid.ReadFile(cfg.GetString("GridA"), vname)
	if err != nil {
		return err
	}
	b, err := cryogrid.ReadFile(cfg.GetString("GridB"), vname)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"gridA": a.Name, "gridB": b.Name})
	log.Info("computing overlap")
	ex, err := cryogrid.Overlap(a, b)
	if err != nil {
		return err
	}
	log.WithField("cells", ex.NCellsRealized()).Info("writing exchange grid")
	return ex.WriteFile(cfg.GetString("Output"), vname)
}
