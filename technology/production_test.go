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
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/output"
)

func TestProduction(t *testing.T) {
	s, m, hook := testScenario()
	m.MarketInfo("coal", testRegion, 0, true).SetDouble(ghg.CoefficientKey, 0.02)

	tech := coalSteam()
	tech.AddSecondaryOutput(output.NewSecondary("heat", 0.5))
	tech.CompleteInit(s, testSector, nil, nil)
	tech.InitCalc(testRegion, testSector, nil, nil, 0)
	tech.SetTechShare(0.5)
	tech.Production(testRegion, testSector, 100, nil, 0)

	if different(tech.Output(0), 50, testTolerance) {
		t.Errorf("output = %g, want 50", tech.Output(0))
	}
	if different(tech.Input(), 125, testTolerance) {
		t.Errorf("input = %g, want 125", tech.Input())
	}
	if different(m.Demand("coal", testRegion, 0), 125, testTolerance) {
		t.Errorf("coal demand = %g, want 125", m.Demand("coal", testRegion, 0))
	}
	if different(m.Supply("heat", testRegion, 0), 25, testTolerance) {
		t.Errorf("heat supply = %g, want 25", m.Supply("heat", testRegion, 0))
	}
	co2, _ := tech.GHG(ghg.CO2Name)
	if different(co2.Emission(0), 2.5, testTolerance) {
		t.Errorf("CO2 emissions = %g, want 2.5", co2.Emission(0))
	}
	if different(m.Demand(ghg.CO2Name, testRegion, 0), 2.5, testTolerance) {
		t.Errorf("CO2 market demand = %g, want 2.5", m.Demand(ghg.CO2Name, testRegion, 0))
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected log entries: %v", hook.AllEntries())
	}
}

func TestProductionNoFuel(t *testing.T) {
	s, m, _ := testScenario()
	tech := New("wind", 2005)
	tech.SetFuelName(FuelRenewable)
	tech.CompleteInit(s, testSector, nil, nil)
	tech.SetTechShare(1)
	tech.Production(testRegion, testSector, 10, nil, 0)
	if different(tech.Input(), 10, testTolerance) {
		t.Errorf("input = %g, want 10", tech.Input())
	}
	if goods := m.Goods(testRegion, 0); len(goods) != 1 || goods[0] != ghg.CO2Name {
		t.Errorf("goods with demand = %v, want only %s", goods, ghg.CO2Name)
	}
}

func TestProductionNegativeOutput(t *testing.T) {
	s, m, hook := testScenario()
	tech := coalSteam()
	tech.CompleteInit(s, testSector, nil, nil)
	tech.SetTechShare(-0.1)
	tech.Production(testRegion, testSector, 100, nil, 0)
	if !hasEntry(hook, logrus.ErrorLevel, "technology: primary output is less than zero") {
		t.Error("negative output was not logged")
	}
	// The calculation continues with the negative value.
	if different(m.Demand("coal", testRegion, 0), -25, testTolerance) {
		t.Errorf("coal demand = %g, want -25", m.Demand("coal", testRegion, 0))
	}
}

func TestProductionInvalidDemand(t *testing.T) {
	s, _, _ := testScenario()
	tech := coalSteam()
	tech.CompleteInit(s, testSector, nil, nil)
	tech.SetTechShare(0.5)
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		expectContractError(t, func() { tech.Production(testRegion, testSector, d, nil, 0) })
	}
}

func TestCalcEmission(t *testing.T) {
	s, m, _ := testScenario()
	m.MarketInfo("coal", testRegion, 0, true).SetDouble(ghg.CoefficientKey, 0.02)

	tech := coalSteam()
	co2 := ghg.NewCO2()
	ch4 := ghg.NewGas("CH4")
	ch4.SetEmissionsCoefficient(0.001)
	tech.AddGHG(co2)
	tech.AddGHG(ch4)
	tech.CompleteInit(s, testSector, nil, nil)
	tech.SetTechShare(1)
	tech.Production(testRegion, testSector, 40, nil, 0)
	tech.CalcEmission(testSector, 0)

	// Input is 100.
	for key, want := range map[string]float64{
		"CO2":                          2,
		"CO2coal":                      2,
		"CO2" + SequestGeologicSuffix:  0,
		"CO2" + SequestNonEnergySuffix: 0,
		"CH4":                          0.1,
		"CH4coal":                      0.1,
		"CH4" + SequestGeologicSuffix:  0,
	} {
		if v, ok := tech.Emissions()[key]; !ok || math.Abs(v-want) > 1e-12 {
			t.Errorf("emissions[%s] = %g (present %v), want %g", key, v, ok, want)
		}
	}
	if v := tech.EmissionsByFuel()["coal"]; different(v, 2, testTolerance) {
		t.Errorf("CO2 from coal = %g, want 2", v)
	}
	if names := tech.GHGNames(); len(names) != 2 || names[0] != "CH4" || names[1] != "CO2" {
		t.Errorf("gas names = %v", names)
	}
}
