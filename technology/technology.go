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

// Package technology calculates the cost, market share, production and
// emissions of a single vintage of an energy technology.
//
// A Technology is created with New, populated by its setters or by
// decoding XML, and finalized once with CompleteInit. After that the
// containing subsector calls, for every period and every solver iteration,
// InitCalc once and then CalcCost, CalcShare, NormShare, AdjShares,
// AdjustForCalibration (in calibration runs) and Production, in that
// order. A Technology is not safe for concurrent use.
package technology

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/caldata"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/output"
	"github.com/spatialmodel/enertech/techinfo"
)

// Default values of the technology level parameters.
const (
	DefaultShareWeight   = 1.0
	DefaultPMultiplier   = 1.0
	DefaultLogitExponent = -6.0
)

// largeShareWeight is the share weight above which calibration warns when
// debug checking is on.
const largeShareWeight = 1e6

// ErrCloneAfterInit is returned by Clone for a technology that has
// already been initialized.
var ErrCloneAfterInit = errors.New("technology: cannot clone a technology after CompleteInit")

// Technology is one vintage of a technology.
type Technology struct {
	name string
	year int

	shareWeight float64
	share       float64
	fuelCost    float64
	cost        float64
	pMultiplier float64
	logitExp    float64
	input       float64
	note        string

	fixed    FixedOutput
	fixedVal float64

	// The parameters are either owned, or shared with other vintages
	// through the global technology database. useGlobal requests the
	// shared set, which is bound to shared in CompleteInit.
	owned     *techinfo.Generic
	shared    techinfo.Info
	useGlobal bool

	calData caldata.CalData

	ghgs     []ghg.GHG
	ghgIndex map[string]int

	// outputs[0] is the primary output once the technology is
	// initialized.
	outputs []output.Output

	emissions       map[string]float64
	emissionsByFuel map[string]float64

	scenario    *enertech.Scenario
	initialized bool

	// Log receives all diagnostic messages. CompleteInit replaces it
	// with the scenario logger if the scenario has one.
	Log logrus.FieldLogger
}

// New creates a technology called name for the vintage year.
func New(name string, year int) *Technology {
	t := &Technology{
		name:            name,
		year:            year,
		shareWeight:     DefaultShareWeight,
		pMultiplier:     DefaultPMultiplier,
		logitExp:        DefaultLogitExponent,
		fixed:           UnsetFixedOutput(),
		ghgIndex:        make(map[string]int),
		emissions:       make(map[string]float64),
		emissionsByFuel: make(map[string]float64),
		Log:             logrus.StandardLogger(),
	}
	t.owned = techinfo.NewGeneric(name)
	t.owned.Log = t.Log
	return t
}

// Clone returns a deep copy of t. Only technologies that have not been
// initialized can be cloned, because an initialized technology may refer
// to a global technology that belongs to the database.
func (t *Technology) Clone() (*Technology, error) {
	if t.initialized {
		return nil, ErrCloneAfterInit
	}
	c := *t
	c.owned = t.owned.Clone().(*techinfo.Generic)
	if t.calData != nil {
		c.calData = t.calData.Clone()
	}
	c.ghgs = make([]ghg.GHG, len(t.ghgs))
	c.ghgIndex = make(map[string]int, len(t.ghgIndex))
	for i, g := range t.ghgs {
		c.ghgs[i] = g.Clone()
		c.ghgIndex[g.Name()] = i
	}
	c.outputs = make([]output.Output, len(t.outputs))
	for i, o := range t.outputs {
		c.outputs[i] = o.Clone()
	}
	c.emissions = copyMap(t.emissions)
	c.emissionsByFuel = copyMap(t.emissionsByFuel)
	return &c, nil
}

func copyMap(m map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// logger returns the technology's logger annotated with its identity.
func (t *Technology) logger() *logrus.Entry {
	return t.Log.WithFields(logrus.Fields{
		"technology": t.name,
		"year":       t.year,
	})
}

// CompleteInit finalizes the technology. It is called once per model run,
// after all input has been read and before the first period. Markets need
// not exist yet.
//
// CompleteInit binds the global technology if one was requested, makes
// sure there is a CO2 calculator, inserts the primary output for
// sectorName and registers the dependency of sectorName on the fuel.
func (t *Technology) CompleteInit(s *enertech.Scenario, sectorName string, depFinder enertech.DependencyFinder, globals *techinfo.Database) {
	enertech.Require(!t.initialized, "technology.CompleteInit", "technology %s (%d) is already initialized", t.name, t.year)
	t.scenario = s
	if s != nil && s.Log != nil {
		t.Log = s.Log
		t.owned.Log = s.Log
	}
	if t.year == 0 {
		t.logger().WithField("sector", sectorName).Error("technology: invalid year attribute")
	}

	if t.useGlobal {
		if g, ok := globals.Technology(t.name, t.year); ok {
			t.shared = g
		} else {
			t.logger().Warn("technology: global technology not found, using default parameters")
		}
	}
	t.info().CompleteInit()

	if _, ok := t.ghgIndex[ghg.CO2Name]; !ok {
		t.addGHG(ghg.NewCO2())
	}
	for _, g := range t.ghgs {
		g.CompleteInit(s)
	}

	t.outputs = append([]output.Output{output.NewPrimary(sectorName)}, t.outputs...)
	operates := !t.HasNoInputOrOutput()
	for _, o := range t.outputs {
		o.CompleteInit(s, sectorName, depFinder, operates)
	}

	if depFinder != nil && operates {
		depFinder.AddDependency(sectorName, t.FuelName())
	}

	if t.fixed.IsSet() {
		t.fixedVal = t.fixed.Value()
	}
	t.initialized = true
}

// InitCalc prepares the technology for period. It is called once per
// period before any other per-period calculation. A calibration value
// that implies a negative input is removed.
func (t *Technology) InitCalc(region, sectorName string, subsectorInfo enertech.Info, demographics enertech.Demographics, period int) {
	if t.calData != nil {
		t.calData.InitCalc(demographics, period)
		if t.calData.CalInput(t.Efficiency()) < 0 {
			t.logger().WithFields(logrus.Fields{
				"sector": sectorName,
				"region": region,
			}).Debug("technology: negative calibration value, calibration removed")
			t.calData = nil
		}
	}
	for _, g := range t.ghgs {
		g.InitCalc(region, t.FuelName(), subsectorInfo, period)
	}
	for _, o := range t.outputs {
		o.InitCalc(region, period)
	}
}

// info returns the parameter set in use.
func (t *Technology) info() techinfo.Info {
	if t.shared != nil {
		return t.shared
	}
	return t.owned
}

// ownParams returns the owned parameter set for modification. Setting a
// parameter overrides an earlier request for the global technology.
func (t *Technology) ownParams() *techinfo.Generic {
	t.useGlobal = false
	return t.owned
}

// UseGlobal requests that the parameters be taken from the global
// technology database when the technology is initialized.
func (t *Technology) UseGlobal() { t.useGlobal = true }

// UsesGlobal returns whether the technology takes its parameters from the
// global technology database.
func (t *Technology) UsesGlobal() bool { return t.useGlobal }

// The parameter setters below write to the technology's own parameters,
// which replace any global technology.

// SetFuelName sets the fuel consumed by the technology.
func (t *Technology) SetFuelName(v string) { t.ownParams().SetFuelName(v) }

// SetEfficiency sets the raw efficiency, before the efficiency penalty.
func (t *Technology) SetEfficiency(v float64) { t.ownParams().SetEfficiency(v) }

// SetEffPenalty sets the fractional efficiency penalty.
func (t *Technology) SetEffPenalty(v float64) { t.ownParams().SetEffPenalty(v) }

// SetNonEnergyCost sets the non-energy cost per unit of output.
func (t *Technology) SetNonEnergyCost(v float64) { t.ownParams().SetNonEnergyCost(v) }

// SetNECostPenalty sets the fractional non-energy cost penalty.
func (t *Technology) SetNECostPenalty(v float64) { t.ownParams().SetNECostPenalty(v) }

// SetFMultiplier sets the fuel price multiplier.
func (t *Technology) SetFMultiplier(v float64) { t.ownParams().SetFMultiplier(v) }

// SetFuelPrefElasticity sets the elasticity of the share with respect to
// GDP per capita.
func (t *Technology) SetFuelPrefElasticity(v float64) { t.ownParams().SetFuelPrefElasticity(v) }

// SetPMultiplier sets the multiplier applied to the total cost.
func (t *Technology) SetPMultiplier(v float64) { t.pMultiplier = v }

// SetLogitExponent sets the exponent applied to cost in the share
// calculation. It is normally negative.
func (t *Technology) SetLogitExponent(v float64) { t.logitExp = v }

// SetNote sets a free text note that is kept with the technology.
func (t *Technology) SetNote(v string) { t.note = v }

// SetFixedOutput sets the fixed output override. A negative value removes
// the override.
func (t *Technology) SetFixedOutput(v float64) { t.fixed = FixedOutputFromValue(v) }

// SetCalibration sets the calibration target. A nil value removes it.
func (t *Technology) SetCalibration(c caldata.CalData) { t.calData = c }

// AddGHG adds g to the technology, replacing any gas of the same name.
func (t *Technology) AddGHG(g ghg.GHG) { t.addGHG(g) }

func (t *Technology) addGHG(g ghg.GHG) {
	if i, ok := t.ghgIndex[g.Name()]; ok {
		t.ghgs[i] = g
		return
	}
	t.ghgs = append(t.ghgs, g)
	t.ghgIndex[g.Name()] = len(t.ghgs) - 1
}

// AddSecondaryOutput adds a secondary output to the technology. It must be
// called before CompleteInit.
func (t *Technology) AddSecondaryOutput(o *output.Secondary) {
	enertech.Require(!t.initialized, "technology.AddSecondaryOutput", "technology %s (%d) is already initialized", t.name, t.year)
	t.outputs = append(t.outputs, o)
}

// SetYear sets the vintage year. Years that are not positive are logged
// and ignored.
func (t *Technology) SetYear(year int) {
	if year <= 0 {
		t.logger().WithField("invalid_year", year).Error("technology: invalid year passed to SetYear")
		return
	}
	t.year = year
}

// Name returns the technology name.
func (t *Technology) Name() string { return t.name }

// Year returns the vintage year.
func (t *Technology) Year() int { return t.year }

// Note returns the free text note.
func (t *Technology) Note() string { return t.note }

// FuelName returns the name of the fuel the technology consumes.
func (t *Technology) FuelName() string { return t.info().FuelName() }

// Fuel returns how the technology's fuel is bound to the marketplace.
func (t *Technology) Fuel() FuelBinding { return BindFuel(t.FuelName()) }

// Efficiency returns the effective efficiency, the ratio of output to
// input after the efficiency penalty.
func (t *Technology) Efficiency() float64 {
	p := t.info()
	return p.Efficiency() * (1 - p.EffPenalty())
}

// NonEnergyCost returns the non-energy cost after the cost penalty.
func (t *Technology) NonEnergyCost() float64 {
	p := t.info()
	return p.NonEnergyCost() * (1 + p.NECostPenalty())
}

// Intensity returns the input required per unit of output.
func (t *Technology) Intensity() float64 {
	eff := t.Efficiency()
	enertech.Require(eff > 0, "technology.Intensity", "technology %s (%d): efficiency %g must be positive", t.name, t.year, eff)
	return 1 / eff
}

// InputRequiredForOutput returns the input needed to produce
// requiredOutput.
func (t *Technology) InputRequiredForOutput(requiredOutput float64) float64 {
	return requiredOutput * t.Intensity()
}

func (t *Technology) Share() float64         { return t.share }
func (t *Technology) ShareWeight() float64   { return t.shareWeight }
func (t *Technology) Cost() float64          { return t.cost }
func (t *Technology) FuelCost() float64      { return t.fuelCost }
func (t *Technology) Input() float64         { return t.input }
func (t *Technology) PMultiplier() float64   { return t.pMultiplier }
func (t *Technology) LogitExponent() float64 { return t.logitExp }

// FuelPrefElasticity returns the elasticity of the share with respect to
// GDP per capita.
func (t *Technology) FuelPrefElasticity() float64 { return t.info().FuelPrefElasticity() }

// SetShareWeight sets the share weight.
func (t *Technology) SetShareWeight(v float64) { t.shareWeight = v }

// ScaleShareWeight multiplies the share weight by v.
func (t *Technology) ScaleShareWeight(v float64) { t.shareWeight *= v }

// SetTechShare overrides the share.
func (t *Technology) SetTechShare(v float64) { t.share = v }

// Output returns the primary output produced in period.
func (t *Technology) Output(period int) float64 {
	enertech.Require(len(t.outputs) > 0 && t.initialized, "technology.Output", "technology %s (%d) is not initialized", t.name, t.year)
	return t.outputs[0].PhysicalOutput(period)
}

// Outputs returns the outputs of the technology, with the primary output
// first. The slice must not be modified.
func (t *Technology) Outputs() []output.Output { return t.outputs }

// CalibrationStatus returns whether the technology has a calibration
// value.
func (t *Technology) CalibrationStatus() bool { return t.calData != nil }

// isVintagePeriod returns whether period is the period the vintage was
// built in.
func (t *Technology) isVintagePeriod(period int) bool {
	if t.scenario == nil || t.scenario.Modeltime == nil {
		return false
	}
	return t.year == t.scenario.Modeltime.PeriodToYear(period)
}

// CalibrationInput returns the calibrated input in period, which is zero
// outside the vintage period.
func (t *Technology) CalibrationInput(period int) float64 {
	if t.calData == nil || !t.isVintagePeriod(period) {
		return 0
	}
	return t.calData.CalInput(t.Efficiency())
}

// CalibrationOutput returns the calibrated output in period, which is zero
// outside the vintage period.
func (t *Technology) CalibrationOutput(period int) float64 {
	if t.calData == nil || !t.isVintagePeriod(period) {
		return 0
	}
	return t.calData.CalOutput(t.Efficiency())
}

// ScaleCalibrationInput multiplies the calibration value by factor.
func (t *Technology) ScaleCalibrationInput(factor float64) {
	if t.calData != nil {
		t.calData.ScaleValue(factor)
	}
}

// OutputFixed returns whether the output of the technology is not
// determined by the logit competition: it is calibrated, fixed or has a
// zero share weight.
func (t *Technology) OutputFixed() bool {
	return t.CalibrationStatus() || t.fixed.IsSet() || t.shareWeight == 0
}

// TechAvailable returns whether the technology can produce variable
// output.
func (t *Technology) TechAvailable() bool {
	return t.CalibrationStatus() || !(t.fixed.IsSet() || t.shareWeight == 0)
}

// GHG returns the gas called name.
func (t *Technology) GHG(name string) (ghg.GHG, bool) {
	i, ok := t.ghgIndex[name]
	if !ok {
		return nil, false
	}
	return t.ghgs[i], true
}

// GHGNames returns the names of the gases of the technology in
// alphabetical order.
func (t *Technology) GHGNames() []string {
	names := make([]string, 0, len(t.ghgIndex))
	for n := range t.ghgIndex {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NumGHGs returns the number of gases of the technology.
func (t *Technology) NumGHGs() int { return len(t.ghgs) }

// CopyGHGParameters copies parameters that were not read in from prev,
// the gas of the same name in a previous vintage.
func (t *Technology) CopyGHGParameters(prev ghg.GHG) {
	if prev == nil {
		return
	}
	if g, ok := t.GHG(prev.Name()); ok {
		g.CopyGHGParameters(prev)
	}
}

// Accept shows the technology, its outputs and its gases to v.
func (t *Technology) Accept(v enertech.Visitor, period int) {
	v.StartVisitTechnology(t, period)
	for _, o := range t.outputs {
		o.Accept(v, period)
	}
	for _, g := range t.ghgs {
		g.Accept(v, period)
	}
	v.EndVisitTechnology(t, period)
}
