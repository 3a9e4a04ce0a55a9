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
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
	"github.com/spatialmodel/enertech/output"
)

// Driver selects the technology quantity that gas emissions are
// proportional to.
type Driver string

// Emissions drivers.
const (
	InputDriver  Driver = "input"
	OutputDriver Driver = "output"
)

// Gas is a greenhouse gas other than CO2 whose emissions are a fixed
// coefficient times either the fuel input or the primary output of the
// technology. The coefficient can be reduced as income grows.
type Gas struct {
	base

	emissCoef float64
	coefSet   bool
	driver    Driver

	// Income driven emissions control. maxControl is the largest fraction
	// of emissions that can be controlled, reached as GDP per capita rises
	// well above gdpCap0 over a scale of tau.
	maxControl float64
	gdpCap0    float64
	tau        float64
}

// NewGas returns a gas called name with no emissions.
func NewGas(name string) *Gas {
	return &Gas{base: newBase(name, "Tg"), driver: InputDriver, tau: 1}
}

// SetEmissionsCoefficient sets the emissions per unit of driver.
func (g *Gas) SetEmissionsCoefficient(c float64) {
	g.emissCoef = c
	g.coefSet = true
}

// EmissionsCoefficient returns the emissions per unit of driver.
func (g *Gas) EmissionsCoefficient() float64 { return g.emissCoef }

// SetDriver sets the quantity emissions are proportional to.
func (g *Gas) SetDriver(d Driver) { g.driver = d }

// SetControl sets the income driven emissions control parameters.
func (g *Gas) SetControl(maxControl, gdpCap0, tau float64) {
	g.maxControl, g.gdpCap0, g.tau = maxControl, gdpCap0, tau
}

func (g *Gas) parseElement(d *xml.Decoder, start xml.StartElement) (bool, error) {
	var err error
	switch start.Name.Local {
	case "emisscoef":
		g.emissCoef, err = xmlio.Float(d, start)
		g.coefSet = true
	case "emissions-driver":
		var s string
		if s, err = xmlio.String(d, start); err == nil {
			switch Driver(s) {
			case InputDriver, OutputDriver:
				g.driver = Driver(s)
			default:
				err = fmt.Errorf("ghg: gas %s: invalid emissions driver %q", g.name, s)
			}
		}
	case "maxCntrl":
		g.maxControl, err = xmlio.Float(d, start)
	case "gdpcap0":
		g.gdpCap0, err = xmlio.Float(d, start)
	case "tau":
		g.tau, err = xmlio.Float(d, start)
	default:
		return false, nil
	}
	return true, err
}

// CompleteInit stores the scenario. A zero tau with income driven control
// is logged and reset to 1.
func (g *Gas) CompleteInit(s *enertech.Scenario) {
	g.base.CompleteInit(s)
	if g.maxControl > 0 && g.tau == 0 {
		s.Logger().WithFields(logrus.Fields{
			"gas": g.name,
			"tau": g.tau,
		}).Warn("ghg: tau must be non-zero, resetting to 1")
		g.tau = 1
	}
}

// InitCalc clears the sequestration amounts from the previous period.
func (g *Gas) InitCalc(region, fuelName string, subsectorInfo enertech.Info, period int) {
	g.sequestGeologic = 0
	g.sequestNonEngy = 0
}

// driverValue returns the quantity emissions are proportional to.
func (g *Gas) driverValue(input float64, outputs []output.Output, period int) float64 {
	if g.driver == OutputDriver {
		if len(outputs) == 0 {
			return 0
		}
		return outputs[0].PhysicalOutput(period)
	}
	return input
}

// controlFraction returns the fraction of uncontrolled emissions removed by
// income driven controls.
func (g *Gas) controlFraction(gdp enertech.GDP, period int) float64 {
	if g.maxControl <= 0 || gdp == nil {
		return 0
	}
	enertech.Require(g.tau != 0, "ghg.Gas.controlFraction", "gas %s: tau must be non-zero", g.name)
	gdpCap := gdp.BestScaledGDPPerCapita(period)
	return g.maxControl / (1 + math.Exp(-(gdpCap-g.gdpCap0)/g.tau))
}

// CalcEmission calculates emissions as the coefficient times the driver,
// reduced by income driven controls and the removed fraction.
func (g *Gas) CalcEmission(region, fuelName string, input float64, outputs []output.Output, gdp enertech.GDP, period int) {
	total := g.emissCoef * g.driverValue(input, outputs, period) * (1 - g.controlFraction(gdp, period))
	g.setEmissions(region, period, total, total*g.removeFraction)
}

// GHGValue returns the emissions tax per unit of output. Input driven
// emissions are converted to output with efficiency.
func (g *Gas) GHGValue(region, fuelName string, outputs []output.Output, efficiency float64, period int) float64 {
	v := g.tax(region, period) * g.gwp * g.emissCoef * (1 - g.removeFraction)
	if g.driver == OutputDriver {
		return v
	}
	enertech.Require(efficiency > 0, "ghg.Gas.GHGValue", "efficiency %g must be positive", efficiency)
	return v / efficiency
}

// CopyGHGParameters copies the global warming potential and emissions
// coefficient from prev where they were not read in.
func (g *Gas) CopyGHGParameters(prev GHG) {
	p, ok := prev.(*Gas)
	if !ok {
		return
	}
	if !g.gwpSet {
		g.gwp = p.gwp
	}
	if !g.coefSet {
		g.emissCoef = p.emissCoef
		g.driver = p.driver
	}
}

func (g *Gas) Clone() GHG {
	c := *g
	c.base = g.base.clone()
	return &c
}

func (g *Gas) encodeGasElements(e *xml.Encoder) error {
	if g.coefSet {
		if err := xmlio.Element(e, "emisscoef", g.emissCoef); err != nil {
			return err
		}
	}
	if g.driver != InputDriver {
		if err := xmlio.Element(e, "emissions-driver", string(g.driver)); err != nil {
			return err
		}
	}
	if g.maxControl == 0 {
		return nil
	}
	return xmlio.Elements(e,
		"maxCntrl", g.maxControl,
		"gdpcap0", g.gdpCap0,
		"tau", g.tau,
	)
}

func (g *Gas) EncodeXML(e *xml.Encoder) error {
	start := xmlio.StartElement(XMLName, "name", g.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := g.encodeElements(e); err != nil {
		return err
	}
	if err := g.encodeGasElements(e); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (g *Gas) EncodeDebug(e *xml.Encoder, period int) error {
	start := xmlio.StartElement(XMLName, "name", g.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := g.encodeDebugElements(e, period); err != nil {
		return err
	}
	err := xmlio.Elements(e,
		"emisscoef", g.emissCoef,
		"emissions-driver", string(g.driver),
	)
	if err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (g *Gas) Accept(v enertech.Visitor, period int) { v.VisitGHG(g, period) }
