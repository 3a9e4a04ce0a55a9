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
)

// FixedOutputState is the state of a fixed output override.
type FixedOutputState int

// Fixed output states.
const (
	// FixedUnset means output is determined by competition.
	FixedUnset FixedOutputState = iota
	// FixedLocked means the technology never produces or consumes
	// anything.
	FixedLocked
	// FixedActive means output is fixed at a positive value.
	FixedActive
)

// Market information keys used to tabulate fixed demands.
const (
	CalDemandKey      = "calDemand"
	CalFixedDemandKey = "calFixedDemand"

	// notAllFixed is stored under CalDemandKey when some technology using
	// the fuel has variable output.
	notAllFixed = -1.0
)

// FixedOutput is an exogenous override of the output of a technology.
type FixedOutput struct {
	state FixedOutputState
	value float64
}

// UnsetFixedOutput returns an override that fixes nothing.
func UnsetFixedOutput() FixedOutput { return FixedOutput{} }

// FixedOutputFromValue returns the override for v. Negative values leave
// output unfixed and zero locks the technology off.
func FixedOutputFromValue(v float64) FixedOutput {
	switch {
	case v < 0:
		return FixedOutput{}
	case enertech.IsEqual(v, 0):
		return FixedOutput{state: FixedLocked}
	default:
		return FixedOutput{state: FixedActive, value: v}
	}
}

// State returns the state of the override.
func (f FixedOutput) State() FixedOutputState { return f.state }

// IsSet returns whether output is fixed, including fixed at zero.
func (f FixedOutput) IsSet() bool { return f.state != FixedUnset }

// Value returns the fixed output, or zero if unset.
func (f FixedOutput) Value() float64 { return f.value }

// Float returns the override in its persistent form, where -1 means
// unset.
func (f FixedOutput) Float() float64 {
	if !f.IsSet() {
		return -1
	}
	return f.value
}

// FixedOutputOverride returns the configured override.
func (t *Technology) FixedOutputOverride() FixedOutput { return t.fixed }

// ResetFixedOutput restores the working fixed output to the override at
// the start of period.
func (t *Technology) ResetFixedOutput(period int) {
	if t.fixed.IsSet() {
		t.fixedVal = t.fixed.Value()
	}
}

// ScaleFixedOutput scales the working fixed output by ratio. Technologies
// without fixed output are not affected.
func (t *Technology) ScaleFixedOutput(ratio float64) {
	if t.fixed.IsSet() {
		t.fixedVal *= ratio
	}
}

// FixedOutput returns the working fixed output, or zero if output is not
// fixed.
func (t *Technology) FixedOutput() float64 {
	if !t.fixed.IsSet() {
		return 0
	}
	return t.fixedVal
}

// FixedInput returns the input needed for the fixed output in period. It is
// zero unless output is fixed and period is the vintage period.
func (t *Technology) FixedInput(period int) float64 {
	if !t.fixed.IsSet() || !t.isVintagePeriod(period) {
		return 0
	}
	return t.fixedVal * t.Intensity()
}

// HasNoInputOrOutput returns whether the technology is locked off.
func (t *Technology) HasNoInputOrOutput() bool {
	return t.fixed.State() == FixedLocked
}

// TabulateFixedDemands adds the calibrated or fixed input of the technology
// to the fixed demand counters of its fuel market. A technology with
// variable output marks the fuel as not entirely fixed.
func (t *Technology) TabulateFixedDemands(region string, period int, subsectorInfo enertech.Info) {
	if t.scenario == nil || t.scenario.Market == nil {
		return
	}
	info := t.scenario.Market.MarketInfo(t.FuelName(), region, period, false)
	if info == nil {
		return
	}
	if !t.OutputFixed() {
		info.SetDouble(CalDemandKey, notAllFixed)
		return
	}
	var fixedOrCalInput, fixedInput float64
	if t.CalibrationStatus() {
		fixedOrCalInput = t.CalibrationInput(period)
	} else if t.fixed.IsSet() {
		fixedInput = t.FixedInput(period)
		fixedOrCalInput = fixedInput
	}
	existing := max0(info.Double(CalDemandKey, false))
	info.SetDouble(CalDemandKey, existing+fixedOrCalInput)
	existing = max0(info.Double(CalFixedDemandKey, false))
	info.SetDouble(CalFixedDemandKey, existing+fixedInput)

	t.logger().WithFields(logrus.Fields{
		"region":      region,
		"period":      period,
		"fixed_input": fixedOrCalInput,
	}).Debug("technology: tabulated fixed demand")
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
