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
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
)

// fuelPrice returns the price of the technology's fuel. Fuels without a
// market are free. A missing price is logged and replaced with
// enertech.LargeNumber, which prices the technology out of the market.
func (t *Technology) fuelPrice(region, sectorName string, period int) float64 {
	f := t.Fuel()
	if !f.UsesMarket() {
		return 0
	}
	var price float64
	ok := false
	if t.scenario != nil && t.scenario.Market != nil {
		price, ok = t.scenario.Market.Price(f.Name, region, period)
	}
	if !ok {
		t.logger().WithFields(logrus.Fields{
			"fuel":   f.Name,
			"sector": sectorName,
			"region": region,
			"period": period,
		}).Error("technology: requested fuel has no price")
		return enertech.LargeNumber
	}
	return price
}

// CalcCost calculates the fuel cost and the total cost per unit of output
// in period. The total cost includes the non-energy cost and the net
// value of emissions and secondary outputs, and is never less than
// enertech.SmallNumber.
func (t *Technology) CalcCost(region, sectorName string, period int) {
	eff := t.Efficiency()
	enertech.Require(eff > 0, "technology.CalcCost", "technology %s (%d): efficiency %g must be positive", t.name, t.year, eff)

	t.fuelCost = t.fuelPrice(region, sectorName, period) * t.info().FMultiplier() / eff
	cost := (t.fuelCost + t.NonEnergyCost()) * t.pMultiplier
	cost -= t.calcSecondaryValue(region, period)

	// Costs can drift below zero while markets are out of equilibrium.
	t.cost = math.Max(cost, enertech.SmallNumber)
}

// calcSecondaryValue returns the value of the outputs less the cost of the
// emissions, per unit of primary output. The primary output contributes
// nothing.
func (t *Technology) calcSecondaryValue(region string, period int) float64 {
	var v float64
	for _, o := range t.outputs {
		v += o.Value(region, period)
	}
	return v - t.TotalGHGCost(region, period)
}

// TotalGHGCost returns the emissions cost per unit of output in period.
func (t *Technology) TotalGHGCost(region string, period int) float64 {
	var v float64
	fuel := t.FuelName()
	eff := t.Efficiency()
	for _, g := range t.ghgs {
		v += g.GHGValue(region, fuel, t.outputs, eff, period)
	}
	return v
}

// CarbonTaxPaid returns the emissions tax paid by the technology in period.
func (t *Technology) CarbonTaxPaid(region string, period int) float64 {
	var v float64
	for _, g := range t.ghgs {
		v += g.CarbonTaxPaid(region, period)
	}
	return v
}
