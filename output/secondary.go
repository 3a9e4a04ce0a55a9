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

package output

import (
	"encoding/xml"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
)

// XMLNameSecondary is the element name of a secondary output.
const XMLNameSecondary = "secondary-output"

// Secondary is a good produced alongside the primary output in a fixed
// ratio. Its production is added to the supply of its market and its value
// reduces the cost of the technology.
type Secondary struct {
	name        string
	outputRatio float64
	pMultiplier float64
	physical    quantities

	scenario *enertech.Scenario
}

// NewSecondary returns a secondary output of good name produced at ratio
// units per unit of primary output.
func NewSecondary(name string, ratio float64) *Secondary {
	return &Secondary{
		name:        name,
		outputRatio: ratio,
		pMultiplier: 1,
		physical:    make(quantities),
	}
}

// ParseSecondary reads a secondary output from the element start.
// Unrecognized child elements are reported to log and skipped.
func ParseSecondary(d *xml.Decoder, start xml.StartElement, log logrus.FieldLogger) (*Secondary, error) {
	name, ok := xmlio.Attr(start, "name")
	if !ok || name == "" {
		return nil, fmt.Errorf("output: %s has no name", XMLNameSecondary)
	}
	s := NewSecondary(name, 0)
	err := xmlio.Children(d, start, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case "output-ratio":
			s.outputRatio, err = xmlio.Float(d, child)
		case "pMultiplier":
			s.pMultiplier, err = xmlio.Float(d, child)
		default:
			log.WithFields(logrus.Fields{
				"element": child.Name.Local,
				"output":  name,
			}).Warn("output: unrecognized element in secondary output")
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Secondary) Name() string { return s.name }

// OutputRatio returns the units of output per unit of primary output.
func (s *Secondary) OutputRatio() float64 { return s.outputRatio }

// CompleteInit registers the secondary good as depending on the sector
// that produces it.
func (s *Secondary) CompleteInit(sc *enertech.Scenario, sectorName string, depFinder enertech.DependencyFinder, technologyOperates bool) {
	s.scenario = sc
	if depFinder != nil && technologyOperates {
		depFinder.AddDependency(s.name, sectorName)
	}
}

func (s *Secondary) InitCalc(string, int) {}

// SetPhysicalOutput records the secondary production and adds it to the
// supply of its market.
func (s *Secondary) SetPhysicalOutput(primaryOutput float64, region string, period int) {
	out := primaryOutput * s.outputRatio
	s.physical[period] = out
	if s.scenario != nil && s.scenario.Market != nil {
		s.scenario.Market.AddToSupply(s.name, region, out, period)
	}
}

func (s *Secondary) PhysicalOutput(period int) float64 { return s.physical[period] }

// Value returns the market value of the secondary output per unit of
// primary output. Goods without a price have no value.
func (s *Secondary) Value(region string, period int) float64 {
	if s.scenario == nil || s.scenario.Market == nil {
		return 0
	}
	price, ok := s.scenario.Market.Price(s.name, region, period)
	if !ok {
		return 0
	}
	return price * s.pMultiplier * s.outputRatio
}

func (s *Secondary) Clone() Output {
	c := *s
	c.physical = s.physical.clone()
	return &c
}

func (s *Secondary) EncodeXML(e *xml.Encoder) error {
	start := xmlio.StartElement(XMLNameSecondary, "name", s.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := xmlio.Element(e, "output-ratio", s.outputRatio); err != nil {
		return err
	}
	if err := xmlio.FloatCheckDefault(e, "pMultiplier", s.pMultiplier, 1); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (s *Secondary) EncodeDebug(e *xml.Encoder, period int) error {
	start := xmlio.StartElement(XMLNameSecondary, "name", s.name)
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	err := xmlio.Elements(e,
		"output-ratio", s.outputRatio,
		"pMultiplier", s.pMultiplier,
		"physical-output", s.physical[period],
	)
	if err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (s *Secondary) Accept(v enertech.Visitor, period int) { v.VisitOutput(s, period) }
