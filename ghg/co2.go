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

package ghg

import (
	"encoding/xml"

	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
	"github.com/spatialmodel/enertech/output"
)

// CoefficientKey is the market information key under which a fuel market
// stores the carbon content of the fuel, in emissions per unit of fuel.
const CoefficientKey = "CO2coef"

// CO2 calculates carbon dioxide emissions from the carbon content of the
// fuel a technology burns. A fraction of the emissions can be removed and
// stored at a cost.
type CO2 struct {
	base
}

// NewCO2 returns a CO2 calculator with default parameters.
func NewCO2() *CO2 {
	return &CO2{base: newBase(CO2Name, "MTC")}
}

// coefficient returns the carbon content of fuelName. Fuels without a
// market, such as renewables, contain no carbon.
func (c *CO2) coefficient(region, fuelName string, period int) float64 {
	if c.scenario == nil || c.scenario.Market == nil {
		return 0
	}
	info := c.scenario.Market.MarketInfo(fuelName, region, period, false)
	if info == nil {
		return 0
	}
	return info.Double(CoefficientKey, false)
}

// InitCalc clears the sequestration amounts from the previous period.
func (c *CO2) InitCalc(region, fuelName string, subsectorInfo enertech.Info, period int) {
	c.sequestGeologic = 0
	c.sequestNonEngy = 0
}

// CalcEmission calculates CO2 emissions as fuel input times carbon content,
// less the removed fraction.
func (c *CO2) CalcEmission(region, fuelName string, input float64, outputs []output.Output, gdp enertech.GDP, period int) {
	total := input * c.coefficient(region, fuelName, period)
	c.setEmissions(region, period, total, total*c.removeFraction)
}

// GHGValue returns the carbon tax and storage cost per unit of output.
func (c *CO2) GHGValue(region, fuelName string, outputs []output.Output, efficiency float64, period int) float64 {
	enertech.Require(efficiency > 0, "ghg.CO2.GHGValue", "efficiency %g must be positive", efficiency)
	perOutput := c.coefficient(region, fuelName, period) / efficiency
	tax := c.tax(region, period) * c.gwp
	return perOutput * (tax*(1-c.removeFraction) + c.storageCost*c.removeFraction)
}

// CopyGHGParameters copies the global warming potential from prev if it
// was not read in.
func (c *CO2) CopyGHGParameters(prev GHG) {
	p, ok := prev.(*CO2)
	if !ok || c.gwpSet {
		return
	}
	c.gwp = p.gwp
}

func (c *CO2) Clone() GHG {
	return &CO2{base: c.base.clone()}
}

func (c *CO2) EncodeXML(e *xml.Encoder) error {
	start := xmlio.StartElement(XMLName, "name", c.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := c.encodeElements(e); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (c *CO2) EncodeDebug(e *xml.Encoder, period int) error {
	start := xmlio.StartElement(XMLName, "name", c.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := c.encodeDebugElements(e, period); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (c *CO2) Accept(v enertech.Visitor, period int) { v.VisitGHG(c, period) }
