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

package enertechutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spatialmodel/enertech/market"
)

// Config describes a model run of one subsector in one region.
type Config struct {
	// Name identifies the run in the results database.
	Name   string `toml:"name"`
	Region string `toml:"region" validate:"required"`

	// TechnologyFile is the subsector XML file. GlobalTechnologyFile is
	// an optional global technology database. Relative paths are relative
	// to the directory of the configuration file.
	TechnologyFile       string `toml:"technology_file" validate:"required"`
	GlobalTechnologyFile string `toml:"global_technology_file"`

	Modeltime market.Modeltime `toml:"modeltime"`

	// Demand is the demand for the output of the subsector in each period.
	Demand []float64 `toml:"demand" validate:"required,dive,gte=0"`

	// GDPPerCapita and Population are optional per-period tables.
	GDPPerCapita []float64 `toml:"gdp_per_capita" validate:"omitempty,dive,gt=0"`
	Population   []float64 `toml:"population" validate:"omitempty,dive,gte=0"`

	// Prices holds the price of each fuel in each period.
	Prices map[string][]float64 `toml:"prices" validate:"required,dive,dive,gte=0"`

	// CarbonPrice is the price of CO2 emissions in each period.
	CarbonPrice []float64 `toml:"carbon_price" validate:"omitempty,dive,gte=0"`

	// CarbonContent holds the CO2 emissions per unit of each fuel.
	CarbonContent map[string]float64 `toml:"carbon_content" validate:"dive,gte=0"`

	DebugChecking bool `toml:"debug_checking"`
}

var validate = validator.New()

// LoadConfig reads a configuration from r and checks it.
func LoadConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("enertech: decoding configuration: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfigFile reads a configuration from the file at path. Environment
// variables in the file paths of the configuration are expanded.
func LoadConfigFile(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("enertech: opening configuration: %v", err)
	}
	defer f.Close()
	c, err := LoadConfig(f)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	c.TechnologyFile = resolvePath(dir, c.TechnologyFile)
	c.GlobalTechnologyFile = resolvePath(dir, c.GlobalTechnologyFile)
	return c, nil
}

func resolvePath(dir, p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks that the fields of c are valid and that every
// per-period table has one value per period.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("enertech: invalid configuration: %v", err)
	}
	n := c.Modeltime.Periods
	check := func(name string, v []float64, optional bool) error {
		if optional && len(v) == 0 {
			return nil
		}
		if len(v) != n {
			return fmt.Errorf("enertech: invalid configuration: %s has %d values but there are %d periods", name, len(v), n)
		}
		return nil
	}
	if err := check("demand", c.Demand, false); err != nil {
		return err
	}
	if err := check("gdp_per_capita", c.GDPPerCapita, true); err != nil {
		return err
	}
	if err := check("population", c.Population, true); err != nil {
		return err
	}
	if err := check("carbon_price", c.CarbonPrice, true); err != nil {
		return err
	}
	for _, fuel := range c.Fuels() {
		if err := check("prices."+fuel, c.Prices[fuel], false); err != nil {
			return err
		}
	}
	return nil
}

// Fuels returns the names of the priced fuels in alphabetical order.
func (c *Config) Fuels() []string {
	fuels := make([]string, 0, len(c.Prices))
	for f := range c.Prices {
		fuels = append(fuels, f)
	}
	sort.Strings(fuels)
	return fuels
}
