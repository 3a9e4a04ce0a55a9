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
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/caldata"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/market"
	"github.com/spatialmodel/enertech/output"
	"github.com/spatialmodel/enertech/techinfo"
)

const (
	testTolerance = 1.e-10
	testSector    = "electricity"
	testRegion    = "USA"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// testScenario returns a scenario with an empty marketplace, periods
// starting in 2005 at five year steps, and a logger whose entries are
// recorded by the returned hook.
func testScenario() (*enertech.Scenario, *market.Marketplace, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel
	m := market.NewMarketplace()
	m.Log = log
	s := &enertech.Scenario{
		Market:    m,
		Modeltime: market.Modeltime{StartYear: 2005, TimeStep: 5, Periods: 4},
		Log:       log,
	}
	return s, m, hook
}

// coalSteam returns the technology used in most tests: it burns coal at
// an efficiency of 0.4 with a non-energy cost of 1.
func coalSteam() *Technology {
	t := New("coal steam", 2005)
	t.SetFuelName("coal")
	t.SetEfficiency(0.4)
	t.SetNonEnergyCost(1)
	return t
}

// hasEntry returns whether hook recorded an entry with the given level and
// message.
func hasEntry(hook *test.Hook, level logrus.Level, msg string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// expectContractError fails the test if f does not panic with a contract
// error.
func expectContractError(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a contract violation, got none")
		}
		if _, ok := r.(*enertech.ContractError); !ok {
			t.Fatalf("expected *enertech.ContractError, got %T: %v", r, r)
		}
	}()
	f()
}

func TestCompleteInit(t *testing.T) {
	s, _, hook := testScenario()
	deps := market.NewDependencies()

	tech := coalSteam()
	tech.AddSecondaryOutput(output.NewSecondary("heat", 0.5))
	tech.CompleteInit(s, testSector, deps, nil)

	outputs := tech.Outputs()
	if len(outputs) != 2 {
		t.Fatalf("have %d outputs, want 2", len(outputs))
	}
	if _, ok := outputs[0].(*output.Primary); !ok || outputs[0].Name() != testSector {
		t.Errorf("first output is %T %s, want primary %s", outputs[0], outputs[0].Name(), testSector)
	}
	if _, ok := tech.GHG(ghg.CO2Name); !ok {
		t.Error("CO2 was not added")
	}
	if tech.NumGHGs() != 1 {
		t.Errorf("have %d gases, want 1", tech.NumGHGs())
	}
	if d := deps.DependenciesOf(testSector); len(d) != 1 || d[0] != "coal" {
		t.Errorf("dependencies of %s = %v, want [coal]", testSector, d)
	}
	if d := deps.DependenciesOf("heat"); len(d) != 1 || d[0] != testSector {
		t.Errorf("dependencies of heat = %v, want [%s]", d, testSector)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected log entries: %v", hook.AllEntries())
	}

	expectContractError(t, func() { tech.CompleteInit(s, testSector, deps, nil) })
}

func TestCompleteInitLocked(t *testing.T) {
	s, _, _ := testScenario()
	deps := market.NewDependencies()
	tech := coalSteam()
	tech.SetFixedOutput(0)
	tech.CompleteInit(s, testSector, deps, nil)
	if !tech.HasNoInputOrOutput() {
		t.Error("technology should be locked")
	}
	if d := deps.DependenciesOf(testSector); len(d) != 0 {
		t.Errorf("locked technology registered dependencies %v", d)
	}
}

func TestCompleteInitInvalidYear(t *testing.T) {
	s, _, hook := testScenario()
	tech := New("wind", 0)
	tech.SetFuelName(FuelRenewable)
	tech.CompleteInit(s, testSector, nil, nil)
	if !hasEntry(hook, logrus.ErrorLevel, "technology: invalid year attribute") {
		t.Error("invalid year was not logged")
	}
}

func TestSetYear(t *testing.T) {
	s, _, hook := testScenario()
	tech := coalSteam()
	tech.Log = s.Log
	tech.SetYear(-5)
	if tech.Year() != 2005 {
		t.Errorf("year = %d, want 2005", tech.Year())
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
		t.Error("invalid year was not logged as an error")
	}
	tech.SetYear(2010)
	if tech.Year() != 2010 {
		t.Errorf("year = %d, want 2010", tech.Year())
	}
}

func TestGlobalTechnology(t *testing.T) {
	s, _, _ := testScenario()
	db := techinfo.NewDatabase()
	p := techinfo.NewGeneric("coal steam")
	p.SetFuelName("coal")
	p.SetEfficiency(0.5)
	db.Add(2005, p)

	tech := New("coal steam", 2005)
	tech.UseGlobal()

	c, err := tech.Clone()
	if err != nil {
		t.Fatal(err)
	}

	tech.CompleteInit(s, testSector, nil, db)
	if tech.FuelName() != "coal" || tech.Efficiency() != 0.5 {
		t.Errorf("parameters not taken from the global technology: fuel %q, efficiency %g", tech.FuelName(), tech.Efficiency())
	}
	if _, err := tech.Clone(); err != ErrCloneAfterInit {
		t.Errorf("clone after init: have %v, want %v", err, ErrCloneAfterInit)
	}

	// Setting a parameter on the copy overrides the global technology.
	c.SetEfficiency(0.3)
	c.CompleteInit(s, testSector, nil, db)
	if c.UsesGlobal() || c.Efficiency() != 0.3 || c.FuelName() != "" {
		t.Errorf("copy: global %v, efficiency %g, fuel %q", c.UsesGlobal(), c.Efficiency(), c.FuelName())
	}
}

func TestClone(t *testing.T) {
	tech := coalSteam()
	tech.SetCalibration(caldata.NewOutput(50))
	co2 := ghg.NewCO2()
	tech.AddGHG(co2)
	tech.AddSecondaryOutput(output.NewSecondary("heat", 0.5))

	c, err := tech.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.SetEfficiency(0.9)
	c.ScaleCalibrationInput(2)
	if tech.Efficiency() != 0.4 {
		t.Errorf("clone shares parameters: efficiency %g", tech.Efficiency())
	}
	if g, _ := c.GHG(ghg.CO2Name); g == ghg.GHG(co2) {
		t.Error("clone shares gases")
	}

	s, _, _ := testScenario()
	tech.CompleteInit(s, testSector, nil, nil)
	c.CompleteInit(s, testSector, nil, nil)
	if v := tech.CalibrationOutput(0); v != 50 {
		t.Errorf("original calibration output %g, want 50", v)
	}
	if v := c.CalibrationOutput(0); v != 100 {
		t.Errorf("clone calibration output %g, want 100", v)
	}
}

func TestInitCalcRemovesNegativeCalibration(t *testing.T) {
	s, _, hook := testScenario()
	tech := coalSteam()
	tech.SetCalibration(caldata.NewInput(-10))
	tech.CompleteInit(s, testSector, nil, nil)
	tech.InitCalc(testRegion, testSector, nil, nil, 0)
	if tech.CalibrationStatus() {
		t.Error("negative calibration value was not removed")
	}
	if !hasEntry(hook, logrus.DebugLevel, "technology: negative calibration value, calibration removed") {
		t.Error("removal was not logged")
	}
}

func TestCalibrationOnlyInVintagePeriod(t *testing.T) {
	s, _, _ := testScenario()
	tech := coalSteam()
	tech.SetCalibration(caldata.NewInput(10))
	tech.CompleteInit(s, testSector, nil, nil)
	if v := tech.CalibrationInput(0); v != 10 {
		t.Errorf("calibration input in 2005 = %g, want 10", v)
	}
	if v := tech.CalibrationOutput(0); different(v, 4, testTolerance) {
		t.Errorf("calibration output in 2005 = %g, want 4", v)
	}
	if v := tech.CalibrationInput(1); v != 0 {
		t.Errorf("calibration input in 2010 = %g, want 0", v)
	}
}

func TestAvailability(t *testing.T) {
	for _, tc := range []struct {
		name                 string
		setup                func(*Technology)
		outputFixed, enabled bool
	}{
		{name: "variable", setup: func(*Technology) {}, outputFixed: false, enabled: true},
		{name: "fixed", setup: func(t *Technology) { t.SetFixedOutput(10) }, outputFixed: true, enabled: false},
		{name: "zero share weight", setup: func(t *Technology) { t.SetShareWeight(0) }, outputFixed: true, enabled: false},
		{name: "calibrated", setup: func(t *Technology) { t.SetCalibration(caldata.NewOutput(1)) }, outputFixed: true, enabled: true},
		{
			name: "calibrated and fixed",
			setup: func(t *Technology) {
				t.SetCalibration(caldata.NewOutput(1))
				t.SetFixedOutput(10)
			},
			outputFixed: true, enabled: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tech := coalSteam()
			tc.setup(tech)
			if tech.OutputFixed() != tc.outputFixed {
				t.Errorf("OutputFixed = %v, want %v", tech.OutputFixed(), tc.outputFixed)
			}
			if tech.TechAvailable() != tc.enabled {
				t.Errorf("TechAvailable = %v, want %v", tech.TechAvailable(), tc.enabled)
			}
		})
	}
}

type recorder struct {
	visits []string
}

func (r *recorder) StartVisitTechnology(t enertech.TechnologyView, _ int) {
	r.visits = append(r.visits, "start "+t.Name())
}
func (r *recorder) VisitOutput(o enertech.OutputView, _ int) {
	r.visits = append(r.visits, "output "+o.Name())
}
func (r *recorder) VisitGHG(g enertech.GHGView, _ int) { r.visits = append(r.visits, "ghg "+g.Name()) }
func (r *recorder) EndVisitTechnology(t enertech.TechnologyView, _ int) {
	r.visits = append(r.visits, "end "+t.Name())
}

func TestAccept(t *testing.T) {
	s, _, _ := testScenario()
	tech := coalSteam()
	tech.AddSecondaryOutput(output.NewSecondary("heat", 0.5))
	tech.AddGHG(ghg.NewGas("CH4"))
	tech.CompleteInit(s, testSector, nil, nil)

	r := new(recorder)
	tech.Accept(r, 0)
	want := []string{
		"start coal steam",
		"output electricity",
		"output heat",
		"ghg CH4",
		"ghg CO2",
		"end coal steam",
	}
	if len(r.visits) != len(want) {
		t.Fatalf("visits = %v, want %v", r.visits, want)
	}
	for i := range want {
		if r.visits[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, r.visits[i], want[i])
		}
	}
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel
	return log, hook
}

func TestInputRequiredForOutput(t *testing.T) {
	tech := coalSteam()
	tech.SetEffPenalty(0.2)
	if in := tech.InputRequiredForOutput(8); different(in, 25, testTolerance) {
		t.Errorf("input = %g, want 25", in)
	}
	tech.SetEfficiency(0)
	expectContractError(t, func() { tech.InputRequiredForOutput(8) })
}
