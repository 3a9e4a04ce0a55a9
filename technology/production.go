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

package technology

import (
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/ghg"
)

// Suffixes of the emissions keys written by CalcEmission.
const (
	SequestGeologicSuffix  = "sequestGeologic"
	SequestNonEnergySuffix = "sequestNonEngy"
)

// Production calculates the output and input of the technology for its
// share of demand, the subsector demand in period. The input is added to
// the demand for the fuel, every output records its production and every
// gas calculates its emissions. demand must be a valid, non-negative
// number.
func (t *Technology) Production(region, sectorName string, demand float64, gdp enertech.GDP, period int) {
	enertech.Require(enertech.IsValidNumber(demand) && demand >= 0, "technology.Production",
		"technology %s (%d): invalid demand %g", t.name, t.year, demand)

	primary := t.share * demand
	if primary < 0 {
		t.logger().WithFields(logrus.Fields{
			"sector": sectorName,
			"region": region,
			"period": period,
			"output": primary,
		}).Error("technology: primary output is less than zero")
	}

	eff := t.Efficiency()
	enertech.Require(eff > 0, "technology.Production", "technology %s (%d): efficiency %g must be positive", t.name, t.year, eff)
	t.input = primary / eff

	if f := t.Fuel(); f.UsesMarket() && t.scenario != nil && t.scenario.Market != nil {
		t.scenario.Market.AddToDemand(f.Name, region, t.input, period)
	}
	t.calcEmissionsAndOutputs(region, t.input, primary, gdp, period)
}

func (t *Technology) calcEmissionsAndOutputs(region string, input, primary float64, gdp enertech.GDP, period int) {
	for _, o := range t.outputs {
		o.SetPhysicalOutput(primary, region, period)
	}
	fuel := t.FuelName()
	for _, g := range t.ghgs {
		g.CalcEmission(region, fuel, input, t.outputs, gdp, period)
	}
}

// CalcEmission collects the emissions of period for reporting. Emissions
// are stored by gas, by gas and fuel, and as sequestered amounts by gas
// with SequestGeologicSuffix and SequestNonEnergySuffix. CO2 emissions of
// the fuel before sequestration are stored by fuel.
func (t *Technology) CalcEmission(goodName string, period int) {
	t.emissions = make(map[string]float64, 4*len(t.ghgs))
	t.emissionsByFuel = make(map[string]float64, 1)
	fuel := t.FuelName()
	for _, g := range t.ghgs {
		name := g.Name()
		t.emissions[name] = g.Emission(period)
		t.emissions[name+fuel] = g.Emission(period)
		t.emissions[name+SequestGeologicSuffix] = g.SequestAmountGeologic()
		t.emissions[name+SequestNonEnergySuffix] = g.SequestAmountNonEnergy()
		if name == ghg.CO2Name {
			t.emissionsByFuel[fuel] = g.EmissFuel(period)
		}
	}
}

// Emissions returns the emissions collected by CalcEmission. The map must
// not be modified.
func (t *Technology) Emissions() map[string]float64 { return t.emissions }

// EmissionsByFuel returns the fuel-related emissions collected by
// CalcEmission. The map must not be modified.
func (t *Technology) EmissionsByFuel() map[string]float64 { return t.emissionsByFuel }

// Emission returns the emissions stored under key by CalcEmission, or zero.
func (t *Technology) Emission(key string) float64 { return t.emissions[key] }
