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

// Package caldata holds the calibration targets of a technology. A target
// is given either as an input quantity, an output quantity, or an output
// quantity per capita, and can be converted to the other forms with the
// technology's efficiency.
package caldata

import (
	"encoding/xml"
	"fmt"

	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/xmlio"
)

// Element names of the calibration data variants.
const (
	XMLNameInput           = "calInputValue"
	XMLNameOutput          = "calOutputValue"
	XMLNameOutputPerCapita = "calOutputPercapValue"
)

// CalData is a calibration target.
type CalData interface {
	// CalInput returns the target expressed as an input quantity.
	CalInput(efficiency float64) float64
	// CalOutput returns the target expressed as an output quantity.
	CalOutput(efficiency float64) float64
	// ScaleValue multiplies the target by factor.
	ScaleValue(factor float64)
	// InitCalc prepares the target for period.
	InitCalc(demographics enertech.Demographics, period int)
	// Clone returns a deep copy.
	Clone() CalData
	// XMLName returns the element name of the variant.
	XMLName() string
	// Value returns the value as read in, after any scaling.
	Value() float64
}

// IsCalDataNode returns whether name is the element name of a calibration
// data variant.
func IsCalDataNode(name string) bool {
	switch name {
	case XMLNameInput, XMLNameOutput, XMLNameOutputPerCapita:
		return true
	}
	return false
}

// New creates an empty calibration data variant from its element name.
func New(name string) (CalData, error) {
	switch name {
	case XMLNameInput:
		return new(Input), nil
	case XMLNameOutput:
		return new(Output), nil
	case XMLNameOutputPerCapita:
		return new(OutputPerCapita), nil
	default:
		return nil, fmt.Errorf("caldata: unknown calibration data type %q", name)
	}
}

// Parse reads the calibration data variant given by the element start.
func Parse(d *xml.Decoder, start xml.StartElement) (CalData, error) {
	c, err := New(start.Name.Local)
	if err != nil {
		return nil, err
	}
	v, err := xmlio.Float(d, start)
	if err != nil {
		return nil, err
	}
	switch cc := c.(type) {
	case *Input:
		cc.value = v
	case *Output:
		cc.value = v
	case *OutputPerCapita:
		cc.perCapita = v
	}
	return c, nil
}

// Encode writes c as a single element.
func Encode(e *xml.Encoder, c CalData) error {
	return xmlio.Element(e, c.XMLName(), c.Value())
}

// Input is a calibration target given as an input quantity.
type Input struct {
	value float64
}

// NewInput returns an input calibration target.
func NewInput(v float64) *Input { return &Input{value: v} }

func (c *Input) CalInput(efficiency float64) float64 { return c.value }

func (c *Input) CalOutput(efficiency float64) float64 { return c.value * efficiency }

func (c *Input) ScaleValue(factor float64) { c.value *= factor }

func (c *Input) InitCalc(enertech.Demographics, int) {}

func (c *Input) Clone() CalData { cc := *c; return &cc }

func (c *Input) XMLName() string { return XMLNameInput }

func (c *Input) Value() float64 { return c.value }

// Output is a calibration target given as an output quantity.
type Output struct {
	value float64
}

// NewOutput returns an output calibration target.
func NewOutput(v float64) *Output { return &Output{value: v} }

// CalInput converts the target to input. efficiency must be positive.
func (c *Output) CalInput(efficiency float64) float64 {
	enertech.Require(efficiency > 0, "caldata.Output.CalInput", "efficiency %g must be positive", efficiency)
	return c.value / efficiency
}

func (c *Output) CalOutput(efficiency float64) float64 { return c.value }

func (c *Output) ScaleValue(factor float64) { c.value *= factor }

func (c *Output) InitCalc(enertech.Demographics, int) {}

func (c *Output) Clone() CalData { cc := *c; return &cc }

func (c *Output) XMLName() string { return XMLNameOutput }

func (c *Output) Value() float64 { return c.value }

// OutputPerCapita is a calibration target given as output per person. The
// total target is only known after InitCalc has been called for a period.
type OutputPerCapita struct {
	perCapita float64
	total     float64
	// set records whether total has been calculated.
	set bool
}

// NewOutputPerCapita returns a per-capita output calibration target.
func NewOutputPerCapita(v float64) *OutputPerCapita { return &OutputPerCapita{perCapita: v} }

// InitCalc calculates the total target from the population in period. If
// demographics is nil the target is left unset.
func (c *OutputPerCapita) InitCalc(demographics enertech.Demographics, period int) {
	if demographics == nil {
		return
	}
	c.total = c.perCapita * demographics.Total(period)
	c.set = true
}

// CalOutput returns the total output target, or zero before InitCalc.
func (c *OutputPerCapita) CalOutput(efficiency float64) float64 {
	if !c.set {
		return 0
	}
	return c.total
}

// CalInput converts the total target to input. efficiency must be
// positive.
func (c *OutputPerCapita) CalInput(efficiency float64) float64 {
	enertech.Require(efficiency > 0, "caldata.OutputPerCapita.CalInput", "efficiency %g must be positive", efficiency)
	return c.CalOutput(efficiency) / efficiency
}

// ScaleValue scales both the per-capita and total targets.
func (c *OutputPerCapita) ScaleValue(factor float64) {
	c.perCapita *= factor
	c.total *= factor
}

func (c *OutputPerCapita) Clone() CalData { cc := *c; return &cc }

func (c *OutputPerCapita) XMLName() string { return XMLNameOutputPerCapita }

func (c *OutputPerCapita) Value() float64 { return c.perCapita }
