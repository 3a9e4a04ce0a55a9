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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/output"
	"gonum.org/v1/gonum/floats"
)

func TestCalcCost(t *testing.T) {
	s, m, hook := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)

	tech := coalSteam()
	tech.CompleteInit(s, testSector, nil, nil)
	tech.InitCalc(testRegion, testSector, nil, nil, 0)
	tech.CalcCost(testRegion, testSector, 0)

	if different(tech.FuelCost(), 5, testTolerance) {
		t.Errorf("fuel cost = %g, want 5", tech.FuelCost())
	}
	if different(tech.Cost(), 6, testTolerance) {
		t.Errorf("cost = %g, want 6", tech.Cost())
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected log entries: %v", hook.AllEntries())
	}
}

func TestCalcCostPenalties(t *testing.T) {
	s, m, _ := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)

	tech := coalSteam()
	tech.SetEffPenalty(0.5)
	tech.SetNECostPenalty(1)
	tech.SetFMultiplier(2)
	tech.SetPMultiplier(1.5)
	tech.CompleteInit(s, testSector, nil, nil)
	tech.CalcCost(testRegion, testSector, 0)

	// fuel cost = 2 * 2 / (0.4 * 0.5) = 20; cost = (20 + 1*2) * 1.5 = 33.
	if different(tech.FuelCost(), 20, testTolerance) {
		t.Errorf("fuel cost = %g, want 20", tech.FuelCost())
	}
	if different(tech.Cost(), 33, testTolerance) {
		t.Errorf("cost = %g, want 33", tech.Cost())
	}
}

func TestCalcCostNoFuel(t *testing.T) {
	for _, fuel := range []string{FuelNone, FuelRenewable, ""} {
		t.Run(fuel, func(t *testing.T) {
			s, m, hook := testScenario()
			m.SetPrice(fuel, testRegion, 0, 100)

			tech := New("hydro", 2005)
			tech.SetFuelName(fuel)
			tech.SetNonEnergyCost(3)
			tech.CompleteInit(s, testSector, nil, nil)
			tech.CalcCost(testRegion, testSector, 0)

			if tech.FuelCost() != 0 {
				t.Errorf("fuel cost = %g, want 0", tech.FuelCost())
			}
			if different(tech.Cost(), 3, testTolerance) {
				t.Errorf("cost = %g, want 3", tech.Cost())
			}
			if len(hook.AllEntries()) != 0 {
				t.Errorf("unexpected log entries: %v", hook.AllEntries())
			}
		})
	}
}

func TestCalcCostMissingPrice(t *testing.T) {
	s, m, hook := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)

	coal := coalSteam()
	biomass := New("biomass steam", 2005)
	biomass.SetFuelName("biomass")
	techs := []*Technology{coal, biomass}

	shares := make([]float64, len(techs))
	for i, tech := range techs {
		tech.CompleteInit(s, testSector, nil, nil)
		tech.CalcCost(testRegion, testSector, 0)
		tech.CalcShare(testRegion, testSector, nil, 0)
		shares[i] = tech.Share()
	}

	if biomass.Cost() < enertech.LargeNumber {
		t.Errorf("cost without a fuel price = %g, want at least %g", biomass.Cost(), enertech.LargeNumber)
	}
	if !hasEntry(hook, logrus.ErrorLevel, "technology: requested fuel has no price") {
		t.Error("missing price was not logged")
	}

	sum := floats.Sum(shares)
	for _, tech := range techs {
		tech.NormShare(sum)
	}
	if biomass.Share() > 1e-12 {
		t.Errorf("share without a fuel price = %g, want about 0", biomass.Share())
	}
	if different(coal.Share(), 1, testTolerance) {
		t.Errorf("share of the priced technology = %g, want 1", coal.Share())
	}
}

func TestCalcCostFloor(t *testing.T) {
	s, m, _ := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)
	m.SetPrice("heat", testRegion, 0, 100)

	tech := coalSteam()
	tech.AddSecondaryOutput(output.NewSecondary("heat", 1))
	tech.CompleteInit(s, testSector, nil, nil)
	tech.CalcCost(testRegion, testSector, 0)

	// 6 - 100 is clamped.
	if tech.Cost() != enertech.SmallNumber {
		t.Errorf("cost = %g, want %g", tech.Cost(), enertech.SmallNumber)
	}

	tech.CalcShare(testRegion, testSector, nil, 0)
	if !enertech.IsValidNumber(tech.Share()) {
		t.Errorf("share at the cost floor is %g", tech.Share())
	}
}

func TestCalcCostFloorProperty(t *testing.T) {
	s, m, _ := testScenario()
	tech := coalSteam()
	tech.AddSecondaryOutput(output.NewSecondary("heat", 1))
	tech.CompleteInit(s, testSector, nil, nil)
	for _, price := range []float64{-1000, -6, -1, 0, 1e-9, 1, 5.9999999, 6, 1e6} {
		m.SetPrice("heat", testRegion, 0, price)
		for _, coal := range []float64{-10, 0, 2} {
			m.SetPrice("coal", testRegion, 0, coal)
			tech.CalcCost(testRegion, testSector, 0)
			if !(tech.Cost() >= enertech.SmallNumber) {
				t.Errorf("heat %g, coal %g: cost %g below floor", price, coal, tech.Cost())
			}
		}
	}
}

func TestCalcCostCarbonTax(t *testing.T) {
	s, m, _ := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)
	m.SetPrice(ghg.CO2Name, testRegion, 0, 10)
	m.MarketInfo("coal", testRegion, 0, true).SetDouble(ghg.CoefficientKey, 0.1)

	tech := coalSteam()
	tech.CompleteInit(s, testSector, nil, nil)
	tech.CalcCost(testRegion, testSector, 0)

	// The tax adds 10 * 0.1 / 0.4 = 2.5 per unit of output.
	if different(tech.TotalGHGCost(testRegion, 0), 2.5, testTolerance) {
		t.Errorf("GHG cost = %g, want 2.5", tech.TotalGHGCost(testRegion, 0))
	}
	if different(tech.Cost(), 8.5, testTolerance) {
		t.Errorf("cost = %g, want 8.5", tech.Cost())
	}

	tech.SetTechShare(1)
	tech.Production(testRegion, testSector, 4, nil, 0)
	// Input is 10, emissions 1, tax paid 10.
	if different(tech.CarbonTaxPaid(testRegion, 0), 10, testTolerance) {
		t.Errorf("tax paid = %g, want 10", tech.CarbonTaxPaid(testRegion, 0))
	}
}

func TestCalcCostInvalidEfficiency(t *testing.T) {
	s, m, _ := testScenario()
	m.SetPrice("coal", testRegion, 0, 2)
	tech := coalSteam()
	tech.CompleteInit(s, testSector, nil, nil)
	// Bypass the correction done at initialization.
	tech.owned.SetEfficiency(0)
	expectContractError(t, func() { tech.CalcCost(testRegion, testSector, 0) })
}
