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

// Package subsector runs the competition between the technologies of one
// subsector. For every period it calls each technology's calculations in
// the required order and supplies the subsector totals they need.
package subsector

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
	"github.com/spatialmodel/enertech/market"
	"github.com/spatialmodel/enertech/techinfo"
	"github.com/spatialmodel/enertech/technology"
	"gonum.org/v1/gonum/floats"
)

// XMLName is the element name of a subsector.
const XMLName = "subsector"

// Vintages holds the vintages of one technology, one per period.
type Vintages struct {
	Name string
	// ByPeriod holds the vintage for each period once the subsector is
	// initialized. Before that it holds the vintages read in, in any
	// order.
	ByPeriod []*technology.Technology
}

// Subsector is a group of technologies competing to supply the demand for
// the good of a sector in one region.
type Subsector struct {
	Name   string
	Sector string
	Region string

	Technologies []*Vintages

	// Info holds values shared by the technologies of the subsector.
	Info *market.Info

	scenario *enertech.Scenario

	// Log receives diagnostic messages.
	Log logrus.FieldLogger
}

// New returns an empty subsector.
func New(name, sector, region string) *Subsector {
	return &Subsector{
		Name:   name,
		Sector: sector,
		Region: region,
		Info:   market.NewInfo("subsector " + name),
		Log:    logrus.StandardLogger(),
	}
}

// Load reads a subsector from r. The subsector element carries name and
// sector attributes and contains <technology name="..."> elements, each
// holding one <period year="..."> element per vintage.
func Load(r io.Reader, region string, log logrus.FieldLogger) (*Subsector, error) {
	s := New("", "", region)
	if log != nil {
		s.Log = log
		s.Info.Log = log
	}
	if err := xml.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("subsector: loading: %v", err)
	}
	return s, nil
}

// UnmarshalXML implements xml.Unmarshaler.
func (s *Subsector) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}
	if s.Info == nil {
		s.Info = market.NewInfo("subsector")
	}
	if v, ok := xmlio.Attr(start, "name"); ok {
		s.Name = v
	}
	if v, ok := xmlio.Attr(start, "sector"); ok {
		s.Sector = v
	}
	return xmlio.Children(d, start, func(child xml.StartElement) error {
		if child.Name.Local != "technology" {
			s.Log.WithFields(logrus.Fields{
				"element":   child.Name.Local,
				"subsector": s.Name,
			}).Warn("subsector: unrecognized element")
			return d.Skip()
		}
		name, ok := xmlio.Attr(child, "name")
		if !ok || name == "" {
			return fmt.Errorf("subsector %s: technology has no name", s.Name)
		}
		v := s.vintages(name)
		return xmlio.Children(d, child, func(p xml.StartElement) error {
			if p.Name.Local != technology.XMLNamePeriod {
				s.Log.WithFields(logrus.Fields{
					"element":    p.Name.Local,
					"technology": name,
				}).Warn("subsector: unrecognized element in technology")
				return d.Skip()
			}
			t, err := technology.Decode(d, p, name, s.Log)
			if err != nil {
				return err
			}
			v.ByPeriod = append(v.ByPeriod, t)
			return nil
		})
	})
}

// MarshalXML implements xml.Marshaler.
func (s *Subsector) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xmlio.StartElement(XMLName, "name", s.Name, "sector", s.Sector)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, v := range s.Technologies {
		ts := xmlio.StartElement("technology", "name", v.Name)
		if err := e.EncodeToken(ts); err != nil {
			return err
		}
		for _, t := range v.ByPeriod {
			if err := e.Encode(t); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(ts.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (s *Subsector) vintages(name string) *Vintages {
	for _, v := range s.Technologies {
		if v.Name == name {
			return v
		}
	}
	v := &Vintages{Name: name}
	s.Technologies = append(s.Technologies, v)
	return v
}

// Add adds t as a vintage of the technology of the same name.
func (s *Subsector) Add(t *technology.Technology) {
	v := s.vintages(t.Name())
	v.ByPeriod = append(v.ByPeriod, t)
}

// CompleteInit arranges the vintages of every technology by period and
// initializes them. A period without a vintage gets a copy of the
// preceding vintage. Gas parameters that were not read in are carried
// forward from the preceding vintage.
func (s *Subsector) CompleteInit(sc *enertech.Scenario, deps enertech.DependencyFinder, globals *techinfo.Database) error {
	enertech.Require(sc != nil && sc.Modeltime != nil, "subsector.CompleteInit", "subsector %s: scenario has no model time", s.Name)
	s.scenario = sc
	if sc.Log != nil {
		s.Log = sc.Log
		s.Info.Log = sc.Log
	}
	mt := sc.Modeltime
	for _, v := range s.Technologies {
		if len(v.ByPeriod) == 0 {
			return fmt.Errorf("subsector %s: technology %s has no vintages", s.Name, v.Name)
		}
		byPeriod := make([]*technology.Technology, mt.NumPeriods())
		sort.SliceStable(v.ByPeriod, func(i, j int) bool { return v.ByPeriod[i].Year() < v.ByPeriod[j].Year() })
		for _, t := range v.ByPeriod {
			p := mt.YearToPeriod(t.Year())
			if p < 0 || p >= len(byPeriod) || mt.PeriodToYear(p) != t.Year() {
				s.Log.WithFields(logrus.Fields{
					"technology": v.Name,
					"year":       t.Year(),
				}).Warn("subsector: vintage year is not a model year; ignored")
				continue
			}
			byPeriod[p] = t
		}
		for p := range byPeriod {
			if byPeriod[p] != nil {
				continue
			}
			if p == 0 {
				return fmt.Errorf("subsector %s: technology %s has no vintage for %d", s.Name, v.Name, mt.PeriodToYear(0))
			}
			c, err := byPeriod[p-1].Clone()
			if err != nil {
				return fmt.Errorf("subsector %s: copying %s: %v", s.Name, v.Name, err)
			}
			c.SetYear(mt.PeriodToYear(p))
			c.SetCalibration(nil)
			byPeriod[p] = c
		}
		for _, t := range byPeriod {
			t.CompleteInit(sc, s.Sector, deps, globals)
		}
		for p := 1; p < len(byPeriod); p++ {
			prev := byPeriod[p-1]
			for _, name := range prev.GHGNames() {
				g, _ := prev.GHG(name)
				byPeriod[p].CopyGHGParameters(g)
			}
		}
		v.ByPeriod = byPeriod
	}
	return nil
}

// techs returns the vintage of every technology for period.
func (s *Subsector) techs(period int) []*technology.Technology {
	o := make([]*technology.Technology, len(s.Technologies))
	for i, v := range s.Technologies {
		o[i] = v.ByPeriod[period]
	}
	return o
}

// Techs returns the competing vintages of period.
func (s *Subsector) Techs(period int) []*technology.Technology { return s.techs(period) }

// InitCalc prepares the technologies for period.
func (s *Subsector) InitCalc(demographics enertech.Demographics, period int) {
	for _, t := range s.techs(period) {
		t.InitCalc(s.Region, s.Sector, s.Info, demographics, period)
		t.ResetFixedOutput(period)
	}
}

// CalcCosts calculates the cost of every technology.
func (s *Subsector) CalcCosts(period int) {
	for _, t := range s.techs(period) {
		t.CalcCost(s.Region, s.Sector, period)
	}
}

// CalcShares calculates and normalizes the technology shares, then adjusts
// them for fixed output given the subsector demand. Technologies locked off
// with a fixed output of zero get no share.
func (s *Subsector) CalcShares(demand float64, gdp enertech.GDP, period int) {
	techs := s.techs(period)
	shares := make([]float64, len(techs))
	for i, t := range techs {
		t.CalcShare(s.Region, s.Sector, gdp, period)
		if t.HasNoInputOrOutput() {
			t.SetTechShare(0)
		}
		shares[i] = t.Share()
	}
	sum := floats.Sum(shares)
	for _, t := range techs {
		t.NormShare(sum)
	}

	fixed := s.FixedOutput(period)
	if fixed > demand && fixed > 0 {
		ratio := demand / fixed
		for _, t := range techs {
			t.ScaleFixedOutput(ratio)
		}
		fixed = s.FixedOutput(period)
	}
	var varShareTotal float64
	for _, t := range techs {
		if !t.FixedOutputOverride().IsSet() {
			varShareTotal += t.Share()
		}
	}
	for _, t := range techs {
		t.AdjShares(demand, fixed, varShareTotal, period)
	}
}

// FixedOutput returns the total fixed output of the technologies.
func (s *Subsector) FixedOutput(period int) float64 {
	var v float64
	for _, t := range s.techs(period) {
		v += t.FixedOutput()
	}
	return v
}

// Calibrate adjusts the share weights of the calibrated technologies to
// reproduce their calibration output.
func (s *Subsector) Calibrate(demand float64, period int) {
	for _, t := range s.techs(period) {
		if t.CalibrationStatus() {
			t.AdjustForCalibration(demand, s.Region, s.Info, period)
		}
	}
}

// Production distributes demand to the technologies according to their
// shares.
func (s *Subsector) Production(demand float64, gdp enertech.GDP, period int) {
	for _, t := range s.techs(period) {
		t.Production(s.Region, s.Sector, demand, gdp, period)
	}
}

// Finalize collects emissions and tabulates fixed demands once the period
// is solved.
func (s *Subsector) Finalize(period int) {
	for _, t := range s.techs(period) {
		t.CalcEmission(s.Sector, period)
		t.TabulateFixedDemands(s.Region, period, s.Info)
	}
}

// Cost returns the share-weighted cost of the subsector.
func (s *Subsector) Cost(period int) float64 {
	techs := s.techs(period)
	shares := make([]float64, len(techs))
	costs := make([]float64, len(techs))
	for i, t := range techs {
		shares[i] = t.Share()
		costs[i] = t.Cost()
	}
	return floats.Dot(shares, costs)
}

// Solve runs iterations rounds of cost, share, calibration and production
// calculations for period. Demand posted by earlier rounds is cleared from
// market before each round.
func (s *Subsector) Solve(m *market.Marketplace, demand float64, gdp enertech.GDP, calibrate bool, iterations, period int) {
	enertech.Require(iterations > 0, "subsector.Solve", "iterations %d must be positive", iterations)
	for i := 0; i < iterations; i++ {
		m.ClearDemand(period)
		s.CalcCosts(period)
		s.CalcShares(demand, gdp, period)
		if calibrate {
			s.Calibrate(demand, period)
			s.CalcShares(demand, gdp, period)
		}
		s.Production(demand, gdp, period)
	}
	s.Log.WithFields(logrus.Fields{
		"subsector": s.Name,
		"region":    s.Region,
		"period":    period,
		"cost":      s.Cost(period),
	}).Debug("subsector: solved")
}

// Accept shows the technologies of period to v.
func (s *Subsector) Accept(v enertech.Visitor, period int) {
	for _, t := range s.techs(period) {
		t.Accept(v, period)
	}
}
