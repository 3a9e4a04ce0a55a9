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

package store

import "github.com/spatialmodel/enertech"

// Collector gathers results from the technologies it visits. The first
// output visited for a technology is taken as its primary output.
type Collector struct {
	Technologies []TechnologyResult
	Emissions    []EmissionResult

	current   *TechnologyResult
	gotOutput bool
}

// StartVisitTechnology implements enertech.Visitor.
func (c *Collector) StartVisitTechnology(t enertech.TechnologyView, period int) {
	c.current = &TechnologyResult{
		Technology:  t.Name(),
		Year:        t.Year(),
		Period:      period,
		Fuel:        t.FuelName(),
		Share:       t.Share(),
		ShareWeight: t.ShareWeight(),
		Cost:        t.Cost(),
		FuelCost:    t.FuelCost(),
		Input:       t.Input(),
	}
	c.gotOutput = false
}

// VisitOutput implements enertech.Visitor.
func (c *Collector) VisitOutput(o enertech.OutputView, period int) {
	if c.current == nil || c.gotOutput {
		return
	}
	c.current.Output = o.PhysicalOutput(period)
	c.gotOutput = true
}

// VisitGHG implements enertech.Visitor.
func (c *Collector) VisitGHG(g enertech.GHGView, period int) {
	if c.current == nil {
		return
	}
	c.Emissions = append(c.Emissions, EmissionResult{
		Technology: c.current.Technology,
		Year:       c.current.Year,
		Period:     period,
		Gas:        g.Name(),
		Emission:   g.Emission(period),
	})
}

// EndVisitTechnology implements enertech.Visitor.
func (c *Collector) EndVisitTechnology(t enertech.TechnologyView, period int) {
	if c.current != nil {
		c.Technologies = append(c.Technologies, *c.current)
	}
	c.current = nil
}
