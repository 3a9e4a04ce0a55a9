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

// Package ghg calculates greenhouse gas emissions from technologies and the
// cost that emission taxes add to them.
package ghg

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
	"github.com/spatialmodel/enertech/output"
)

// XMLName is the element name of every gas. The gas is selected by its
// name attribute.
const XMLName = "GHG"

// CO2Name is the name of the reference gas that every technology has.
const CO2Name = "CO2"

// GHG is a greenhouse gas emitted by a technology.
type GHG interface {
	Name() string

	// CompleteInit is called once when the owning technology is
	// initialized.
	CompleteInit(s *enertech.Scenario)

	// InitCalc prepares the gas for period.
	InitCalc(region, fuelName string, subsectorInfo enertech.Info, period int)

	// CalcEmission calculates emissions in period from the input of fuel
	// and the technology outputs.
	CalcEmission(region, fuelName string, input float64, outputs []output.Output, gdp enertech.GDP, period int)

	// GHGValue returns the cost (positive) or benefit (negative) of the
	// gas per unit of technology output.
	GHGValue(region, fuelName string, outputs []output.Output, efficiency float64, period int) float64

	// Emission returns the emissions calculated for period.
	Emission(period int) float64
	// EmissFuel returns the emissions implied by the fuel input in period
	// before any sequestration.
	EmissFuel(period int) float64
	// SequestAmountGeologic returns the amount most recently sequestered
	// in geologic storage.
	SequestAmountGeologic() float64
	// SequestAmountNonEnergy returns the amount most recently stored in
	// non-energy uses.
	SequestAmountNonEnergy() float64
	// CarbonTaxPaid returns the emission tax paid in period.
	CarbonTaxPaid(region string, period int) float64

	// CopyGHGParameters copies parameters that were not read in from the
	// corresponding gas of a previous vintage.
	CopyGHGParameters(prev GHG)

	// Clone returns a deep copy.
	Clone() GHG

	// EncodeXML writes the persistent form of the gas.
	EncodeXML(e *xml.Encoder) error
	// EncodeDebug writes the state of the gas in period.
	EncodeDebug(e *xml.Encoder, period int) error
	// Accept shows the gas to v.
	Accept(v enertech.Visitor, period int)
}

// IsGHGNode returns whether an element called name describes a gas.
func IsGHGNode(name string) bool {
	return name == XMLName
}

// New creates a gas from its name. CO2 gets the fuel-coefficient based
// calculator, all other gases the generic one.
func New(name string) GHG {
	if name == CO2Name {
		return NewCO2()
	}
	return NewGas(name)
}

// Parse reads a gas from the element start.
func Parse(d *xml.Decoder, start xml.StartElement, log logrus.FieldLogger) (GHG, error) {
	name, ok := xmlio.Attr(start, "name")
	if !ok || name == "" {
		return nil, fmt.Errorf("ghg: <%s> has no name", start.Name.Local)
	}
	g := New(name)
	var b *base
	switch gg := g.(type) {
	case *CO2:
		b = &gg.base
	case *Gas:
		b = &gg.base
	}
	err := xmlio.Children(d, start, func(child xml.StartElement) error {
		handled, err := b.parseElement(d, child)
		if err != nil || handled {
			return err
		}
		if gg, ok := g.(*Gas); ok {
			if handled, err = gg.parseElement(d, child); err != nil || handled {
				return err
			}
		}
		log.WithFields(logrus.Fields{
			"element": child.Name.Local,
			"gas":     name,
		}).Warn("ghg: unrecognized element")
		return d.Skip()
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// base holds the state common to all gases.
type base struct {
	name           string
	unit           string
	gwp            float64
	removeFraction float64
	storageCost    float64

	// gwpSet records whether gwp was read in rather than defaulted.
	gwpSet bool

	emissions       map[int]float64
	emissFuel       map[int]float64
	sequestGeologic float64
	sequestNonEngy  float64

	scenario *enertech.Scenario
}

func newBase(name, unit string) base {
	return base{
		name:      name,
		unit:      unit,
		gwp:       1,
		emissions: make(map[int]float64),
		emissFuel: make(map[int]float64),
	}
}

func (b *base) clone() base {
	c := *b
	c.emissions = make(map[int]float64, len(b.emissions))
	for k, v := range b.emissions {
		c.emissions[k] = v
	}
	c.emissFuel = make(map[int]float64, len(b.emissFuel))
	for k, v := range b.emissFuel {
		c.emissFuel[k] = v
	}
	return c
}

func (b *base) parseElement(d *xml.Decoder, start xml.StartElement) (bool, error) {
	var err error
	switch start.Name.Local {
	case "unit":
		b.unit, err = xmlio.String(d, start)
	case "GWP":
		b.gwp, err = xmlio.Float(d, start)
		b.gwpSet = true
	case "removefrac":
		b.removeFraction, err = xmlio.Float(d, start)
	case "storageCost":
		b.storageCost, err = xmlio.Float(d, start)
	default:
		return false, nil
	}
	return true, err
}

func (b *base) encodeElements(e *xml.Encoder) error {
	if err := xmlio.StringCheckDefault(e, "unit", b.unit, ""); err != nil {
		return err
	}
	if b.gwpSet {
		if err := xmlio.Element(e, "GWP", b.gwp); err != nil {
			return err
		}
	}
	if err := xmlio.FloatCheckDefault(e, "removefrac", b.removeFraction, 0); err != nil {
		return err
	}
	return xmlio.FloatCheckDefault(e, "storageCost", b.storageCost, 0)
}

func (b *base) encodeDebugElements(e *xml.Encoder, period int) error {
	return xmlio.Elements(e,
		"unit", b.unit,
		"GWP", b.gwp,
		"removefrac", b.removeFraction,
		"storageCost", b.storageCost,
		"emission", b.emissions[period],
		"emissFuel", b.emissFuel[period],
		"sequestGeologic", b.sequestGeologic,
		"sequestNonEngy", b.sequestNonEngy,
	)
}

func (b *base) Name() string { return b.name }

// GWP returns the global warming potential.
func (b *base) GWP() float64 { return b.gwp }

// Unit returns the unit of the emissions.
func (b *base) Unit() string { return b.unit }

func (b *base) CompleteInit(s *enertech.Scenario) { b.scenario = s }

func (b *base) Emission(period int) float64 { return b.emissions[period] }

func (b *base) EmissFuel(period int) float64 { return b.emissFuel[period] }

func (b *base) SequestAmountGeologic() float64 { return b.sequestGeologic }

func (b *base) SequestAmountNonEnergy() float64 { return b.sequestNonEngy }

// tax returns the emission price of the gas, or zero if the gas has no
// market in region.
func (b *base) tax(region string, period int) float64 {
	if b.scenario == nil || b.scenario.Market == nil {
		return 0
	}
	p, ok := b.scenario.Market.Price(b.name, region, period)
	if !ok {
		return 0
	}
	return p
}

// CarbonTaxPaid returns the tax paid on the emissions of period.
func (b *base) CarbonTaxPaid(region string, period int) float64 {
	return b.tax(region, period) * b.gwp * b.emissions[period]
}

// setEmissions stores the result of an emissions calculation and posts
// the net emissions to the market for the gas.
func (b *base) setEmissions(region string, period int, total, sequestered float64) {
	b.emissFuel[period] = total
	b.sequestGeologic = sequestered
	b.emissions[period] = total - sequestered
	if b.scenario != nil && b.scenario.Market != nil {
		b.scenario.Market.AddToDemand(b.name, region, b.emissions[period], period)
	}
}

// Mass returns the emissions of period as a mass, interpreting the
// emissions with the unit of the gas.
func (b *base) Mass(period int) (*unit.Unit, error) {
	f, err := kilogramsPer(b.unit)
	if err != nil {
		return nil, err
	}
	return unit.New(b.emissions[period]*f, unit.Kilogram), nil
}

// kilogramsPer returns the number of kilograms in one of the mass unit u.
func kilogramsPer(u string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "kg":
		return 1, nil
	case "t", "tonne", "tonnes":
		return 1e3, nil
	case "gg", "kt":
		return 1e6, nil
	case "tg", "mt", "mtc":
		return 1e9, nil
	default:
		return 0, fmt.Errorf("ghg: unknown emissions unit %q", u)
	}
}
