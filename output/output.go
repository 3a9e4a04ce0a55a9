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

// Package output accounts for the goods produced by a technology. Every
// technology has exactly one primary output, the good of its sector, and
// may have any number of secondary outputs produced in fixed ratio to it.
package output

import (
	"encoding/xml"

	"github.com/spatialmodel/enertech"
)

// Output is a good produced by a technology.
type Output interface {
	Name() string

	// CompleteInit is called once when the owning technology is
	// initialized. technologyOperates is false if the technology is
	// fixed to produce nothing.
	CompleteInit(s *enertech.Scenario, sectorName string, depFinder enertech.DependencyFinder, technologyOperates bool)

	// InitCalc prepares the output for a period.
	InitCalc(region string, period int)

	// SetPhysicalOutput sets the quantity produced in period given the
	// primary output of the technology.
	SetPhysicalOutput(primaryOutput float64, region string, period int)

	// PhysicalOutput returns the quantity produced in period.
	PhysicalOutput(period int) float64

	// Value returns the revenue per unit of primary output that this
	// output earns the technology.
	Value(region string, period int) float64

	// Clone returns a deep copy.
	Clone() Output

	// EncodeXML writes the persistent form of the output.
	EncodeXML(e *xml.Encoder) error

	// EncodeDebug writes the state of the output in period.
	EncodeDebug(e *xml.Encoder, period int) error

	// Accept shows the output to v.
	Accept(v enertech.Visitor, period int)
}

// quantities stores a value per period.
type quantities map[int]float64

func (q quantities) clone() quantities {
	c := make(quantities, len(q))
	for k, v := range q {
		c[k] = v
	}
	return c
}
