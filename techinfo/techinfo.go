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

// Package techinfo holds the slowly changing parameters of a technology:
// the fuel it uses, its efficiency and non-energy cost, and the
// multipliers applied to them. Parameters are either owned by a single
// technology (Generic) or shared between technologies through a
// Database of global technologies.
package techinfo

import (
	"encoding/xml"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech/internal/xmlio"
)

// Info is the read interface to technology parameters.
type Info interface {
	Name() string
	FuelName() string
	Efficiency() float64
	EffPenalty() float64
	NonEnergyCost() float64
	NECostPenalty() float64
	FMultiplier() float64
	FuelPrefElasticity() float64

	// CompleteInit corrects invalid parameter values. It is called once
	// before the parameters are used.
	CompleteInit()

	// Clone returns a deep copy.
	Clone() Info

	// EncodeElements writes the parameters that differ from their
	// defaults as child elements of the current element.
	EncodeElements(e *xml.Encoder) error

	// EncodeDebug writes all parameters as child elements of the current
	// element.
	EncodeDebug(e *xml.Encoder, period int) error
}

// Default parameter values.
const (
	DefaultEfficiency    = 1.0
	DefaultFMultiplier   = 1.0
	DefaultEffPenalty    = 0.0
	DefaultNonEnergyCost = 0.0
)

// Generic is a set of technology parameters owned by one technology.
type Generic struct {
	name               string
	fuelName           string
	efficiency         float64
	effPenalty         float64
	nonEnergyCost      float64
	neCostPenalty      float64
	fMultiplier        float64
	fuelPrefElasticity float64

	// Log receives warnings about parameter values that had to be
	// corrected.
	Log logrus.FieldLogger
}

// NewGeneric returns a parameter set with default values for the
// technology called name.
func NewGeneric(name string) *Generic {
	return &Generic{
		name:        name,
		efficiency:  DefaultEfficiency,
		fMultiplier: DefaultFMultiplier,
		Log:         logrus.StandardLogger(),
	}
}

func (g *Generic) Name() string                { return g.name }
func (g *Generic) FuelName() string            { return g.fuelName }
func (g *Generic) Efficiency() float64         { return g.efficiency }
func (g *Generic) EffPenalty() float64         { return g.effPenalty }
func (g *Generic) NonEnergyCost() float64      { return g.nonEnergyCost }
func (g *Generic) NECostPenalty() float64      { return g.neCostPenalty }
func (g *Generic) FMultiplier() float64        { return g.fMultiplier }
func (g *Generic) FuelPrefElasticity() float64 { return g.fuelPrefElasticity }

func (g *Generic) SetFuelName(v string)            { g.fuelName = strings.TrimSpace(v) }
func (g *Generic) SetEfficiency(v float64)         { g.efficiency = v }
func (g *Generic) SetEffPenalty(v float64)         { g.effPenalty = v }
func (g *Generic) SetNonEnergyCost(v float64)      { g.nonEnergyCost = v }
func (g *Generic) SetNECostPenalty(v float64)      { g.neCostPenalty = v }
func (g *Generic) SetFMultiplier(v float64)        { g.fMultiplier = v }
func (g *Generic) SetFuelPrefElasticity(v float64) { g.fuelPrefElasticity = v }

// CompleteInit resets efficiency values that would make the effective
// efficiency non-positive.
func (g *Generic) CompleteInit() {
	if g.Log == nil {
		g.Log = logrus.StandardLogger()
	}
	if !(g.efficiency > 0) {
		g.Log.WithFields(logrus.Fields{
			"technology": g.name,
			"efficiency": g.efficiency,
		}).Error("techinfo: efficiency must be positive; resetting to 1")
		g.efficiency = DefaultEfficiency
	}
	if g.effPenalty >= 1 || g.effPenalty < 0 {
		g.Log.WithFields(logrus.Fields{
			"technology":        g.name,
			"efficiencyPenalty": g.effPenalty,
		}).Error("techinfo: efficiency penalty must be in [0, 1); resetting to 0")
		g.effPenalty = DefaultEffPenalty
	}
}

// Clone returns a deep copy of g.
func (g *Generic) Clone() Info {
	c := *g
	return &c
}

// ParseElement sets the parameter named by the element start. It returns
// false without consuming anything if start is not a parameter element.
func (g *Generic) ParseElement(d *xml.Decoder, start xml.StartElement) (bool, error) {
	var set func(float64)
	switch start.Name.Local {
	case "fuelname":
		s, err := xmlio.String(d, start)
		if err != nil {
			return true, err
		}
		g.SetFuelName(s)
		return true, nil
	case "efficiency":
		set = g.SetEfficiency
	case "efficiencyPenalty":
		set = g.SetEffPenalty
	case "nonenergycost":
		set = g.SetNonEnergyCost
	case "neCostPenalty":
		set = g.SetNECostPenalty
	case "fMultiplier":
		set = g.SetFMultiplier
	case "fuelprefElasticity":
		set = g.SetFuelPrefElasticity
	default:
		return false, nil
	}
	v, err := xmlio.Float(d, start)
	if err != nil {
		return true, err
	}
	set(v)
	return true, nil
}

// EncodeElements writes the non-default parameters of g.
func (g *Generic) EncodeElements(e *xml.Encoder) error {
	if err := xmlio.StringCheckDefault(e, "fuelname", g.fuelName, ""); err != nil {
		return err
	}
	for _, f := range []struct {
		name   string
		v, def float64
	}{
		{"efficiency", g.efficiency, DefaultEfficiency},
		{"efficiencyPenalty", g.effPenalty, DefaultEffPenalty},
		{"nonenergycost", g.nonEnergyCost, DefaultNonEnergyCost},
		{"neCostPenalty", g.neCostPenalty, 0},
		{"fMultiplier", g.fMultiplier, DefaultFMultiplier},
		{"fuelprefElasticity", g.fuelPrefElasticity, 0},
	} {
		if err := xmlio.FloatCheckDefault(e, f.name, f.v, f.def); err != nil {
			return err
		}
	}
	return nil
}

// EncodeDebug writes all parameters of g.
func (g *Generic) EncodeDebug(e *xml.Encoder, period int) error {
	return xmlio.Elements(e,
		"fuelname", g.fuelName,
		"efficiency", g.efficiency,
		"efficiencyPenalty", g.effPenalty,
		"nonenergycost", g.nonEnergyCost,
		"neCostPenalty", g.neCostPenalty,
		"fMultiplier", g.fMultiplier,
		"fuelprefElasticity", g.fuelPrefElasticity,
	)
}
