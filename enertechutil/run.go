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
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/internal/hash"
	"github.com/spatialmodel/enertech/market"
	"github.com/spatialmodel/enertech/report"
	"github.com/spatialmodel/enertech/store"
	"github.com/spatialmodel/enertech/subsector"
	"github.com/spatialmodel/enertech/techinfo"
)

// RunOptions control how a configuration is run and where the results go.
type RunOptions struct {
	// Iterations is the number of solution rounds in each period.
	Iterations int
	// Calibrate adjusts share weights to reproduce calibration values.
	Calibrate bool

	// ResultsDB, Workbook and DebugXML are output file paths. Empty
	// paths are skipped.
	ResultsDB string
	Workbook  string
	DebugXML  string

	// DebugPeriods are the periods written to DebugXML.
	DebugPeriods []int
}

// Result holds the outcome of a run.
type Result struct {
	RunID     string
	Subsector *subsector.Subsector
	Market    *market.Marketplace
	store.Collector
}

// Run solves every period of the run described by c.
func Run(c *Config, o RunOptions, log logrus.FieldLogger) (*Result, error) {
	if o.Iterations < 1 {
		return nil, fmt.Errorf("enertech: iterations must be at least 1, got %d", o.Iterations)
	}

	var globals *techinfo.Database
	if c.GlobalTechnologyFile != "" {
		f, err := os.Open(c.GlobalTechnologyFile)
		if err != nil {
			return nil, fmt.Errorf("enertech: opening global technologies: %v", err)
		}
		globals, err = techinfo.LoadDatabase(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		globals.Log = log
	}

	f, err := os.Open(c.TechnologyFile)
	if err != nil {
		return nil, fmt.Errorf("enertech: opening technologies: %v", err)
	}
	s, err := subsector.Load(f, c.Region, log)
	f.Close()
	if err != nil {
		return nil, err
	}

	m := newMarket(c, log)
	sc := &enertech.Scenario{
		Market:        m,
		Modeltime:     c.Modeltime,
		Log:           log,
		DebugChecking: c.DebugChecking,
	}
	deps := market.NewDependencies()
	if err := s.CompleteInit(sc, deps, globals); err != nil {
		return nil, err
	}
	order, err := deps.SolutionOrder()
	if err != nil {
		return nil, err
	}
	log.WithField("order", order).Debug("enertech: market solution order")

	var gdp enertech.GDP
	if len(c.GDPPerCapita) > 0 {
		gdp = market.GDP(c.GDPPerCapita)
	}
	var demographics enertech.Demographics
	if len(c.Population) > 0 {
		demographics = market.Population(c.Population)
	}

	var wb *report.Workbook
	if o.Workbook != "" {
		if wb, err = report.New(); err != nil {
			return nil, err
		}
		wb.Log = log
	}

	r := &Result{Subsector: s, Market: m}
	for p := 0; p < c.Modeltime.NumPeriods(); p++ {
		s.InitCalc(demographics, p)
		s.Solve(m, c.Demand[p], gdp, o.Calibrate, o.Iterations, p)
		s.Finalize(p)
		s.Accept(&r.Collector, p)
		if wb != nil {
			s.Accept(wb, p)
		}
		log.WithFields(logrus.Fields{
			"year":   c.Modeltime.PeriodToYear(p),
			"demand": c.Demand[p],
			"cost":   s.Cost(p),
		}).Info("enertech: period solved")
	}

	if o.DebugXML != "" {
		if err := writeDebugXML(o.DebugXML, s, o.DebugPeriods, c.Modeltime.NumPeriods()); err != nil {
			return nil, err
		}
	}
	if wb != nil {
		if err := wb.Save(o.Workbook); err != nil {
			return nil, err
		}
	}
	if o.ResultsDB != "" {
		db, err := store.Open(o.ResultsDB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		db.Log = log
		run, err := db.NewRun(c.Name, c.Region, s.Sector, s.Name, hash.Key(c))
		if err != nil {
			return nil, err
		}
		if err := db.Save(run.ID, r.Technologies, r.Emissions); err != nil {
			return nil, err
		}
		r.RunID = run.ID
	}
	return r, nil
}

// newMarket returns a marketplace holding the fuel prices, carbon prices
// and fuel carbon contents of c.
func newMarket(c *Config, log logrus.FieldLogger) *market.Marketplace {
	m := market.NewMarketplace()
	m.Log = log
	for p := 0; p < c.Modeltime.NumPeriods(); p++ {
		for _, fuel := range c.Fuels() {
			m.SetPrice(fuel, c.Region, p, c.Prices[fuel][p])
		}
		if len(c.CarbonPrice) > 0 {
			m.SetPrice(ghg.CO2Name, c.Region, p, c.CarbonPrice[p])
		}
		for fuel, v := range c.CarbonContent {
			m.MarketInfo(fuel, c.Region, p, true).SetDouble(ghg.CoefficientKey, v)
		}
	}
	return m
}

// writeDebugXML writes the state of every technology in periods to path.
func writeDebugXML(path string, s *subsector.Subsector, periods []int, numPeriods int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("enertech: creating debug output: %v", err)
	}
	for _, p := range periods {
		if p < 0 || p >= numPeriods {
			f.Close()
			return fmt.Errorf("enertech: debug period %d is out of range", p)
		}
		for _, t := range s.Techs(p) {
			if err := t.WriteDebugXML(f, p); err != nil {
				f.Close()
				return err
			}
		}
	}
	return f.Close()
}
