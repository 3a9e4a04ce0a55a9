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

	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
)

// Primary is the output of the good produced by the technology's sector.
// Its value is zero because its price is what the technology competes on.
type Primary struct {
	name     string
	physical quantities
}

// NewPrimary returns the primary output for sectorName.
func NewPrimary(sectorName string) *Primary {
	return &Primary{name: sectorName, physical: make(quantities)}
}

func (p *Primary) Name() string { return p.name }

func (p *Primary) CompleteInit(*enertech.Scenario, string, enertech.DependencyFinder, bool) {}

func (p *Primary) InitCalc(string, int) {}

func (p *Primary) SetPhysicalOutput(primaryOutput float64, region string, period int) {
	p.physical[period] = primaryOutput
}

func (p *Primary) PhysicalOutput(period int) float64 { return p.physical[period] }

// Value is always zero for the primary output.
func (p *Primary) Value(string, int) float64 { return 0 }

func (p *Primary) Clone() Output {
	return &Primary{name: p.name, physical: p.physical.clone()}
}

// EncodeXML writes nothing: the primary output is recreated from the
// sector name when the technology is initialized.
func (p *Primary) EncodeXML(*xml.Encoder) error { return nil }

func (p *Primary) EncodeDebug(e *xml.Encoder, period int) error {
	s := xmlio.StartElement("primary-output", "name", p.name)
	if err := e.EncodeToken(s); err != nil {
		return err
	}
	if err := xmlio.Element(e, "physical-output", p.physical[period]); err != nil {
		return err
	}
	return e.EncodeToken(s.End())
}

func (p *Primary) Accept(v enertech.Visitor, period int) { v.VisitOutput(p, period) }
