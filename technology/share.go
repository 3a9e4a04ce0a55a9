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

// CalcShare calculates the unnormalized logit share from the cost
// calculated by CalcCost. If the fuel preference elasticity is not zero
// the share is also scaled by GDP per capita raised to it.
func (t *Technology) CalcShare(region, sectorName string, gdp enertech.GDP, period int) {
	t.share = t.shareWeight * math.Pow(t.cost, t.logitExp)
	if e := t.FuelPrefElasticity(); e != 0 {
		enertech.Require(gdp != nil, "technology.CalcShare", "technology %s (%d): GDP is required with a fuel preference elasticity", t.name, t.year)
		t.share *= math.Pow(gdp.BestScaledGDPPerCapita(period), e)
	}
}

// NormShare divides the share by sum, the sum of the unnormalized shares of
// all technologies in the subsector. The share is zero if sum is zero.
func (t *Technology) NormShare(sum float64) {
	if sum == 0 {
		t.share = 0
		return
	}
	t.share /= sum
}

// AdjShares adjusts the share for the fixed output in the subsector. A
// technology with fixed output takes the share its fixed output makes up of
// subsecDemand, and the other technologies divide the remaining demand in
// proportion to their shares, varShareTotal being the sum of their shares.
// Nothing changes if the subsector has no fixed output.
//
// The adjustment is only exact if at most one technology in the subsector
// has fixed output.
func (t *Technology) AdjShares(subsecDemand, subsecFixedOutput, varShareTotal float64, period int) {
	if subsecFixedOutput <= 0 {
		return
	}
	if subsecDemand <= 0 {
		t.share = 0
		return
	}
	if t.fixed.IsSet() {
		t.share = t.fixedVal / subsecDemand
		if t.fixedVal > subsecDemand {
			t.fixedVal = subsecFixedOutput
		}
		return
	}
	if varShareTotal == 0 {
		t.share = 0
		return
	}
	remaining := math.Max(subsecDemand-subsecFixedOutput, 0)
	t.share *= (remaining / subsecDemand) / varShareTotal
}

// AdjustForCalibration scales the share weight so that the share of
// subsecDemand matches the calibration output of period. A share weight of
// zero is reset to one first if there is calibration output, and a
// negative share weight is reset to one with a warning.
func (t *Technology) AdjustForCalibration(subsecDemand float64, region string, subsectorInfo enertech.Info, period int) {
	calOutput := t.CalibrationOutput(period)
	if t.shareWeight == 0 && calOutput > 0 {
		t.shareWeight = 1
	}

	techDemand := t.share * subsecDemand
	if techDemand > 0 {
		t.shareWeight *= calOutput / techDemand
	}

	if t.shareWeight < 0 {
		t.logger().WithFields(logrus.Fields{
			"region":       region,
			"period":       period,
			"share_weight": t.shareWeight,
		}).Warn("technology: share weight is less than zero, reset to 1")
		t.shareWeight = 1
	}

	if t.scenario != nil && t.scenario.DebugChecking && t.shareWeight > largeShareWeight {
		t.logger().WithFields(logrus.Fields{
			"region":       region,
			"period":       period,
			"share_weight": t.shareWeight,
		}).Warn("technology: large share weight in calibration")
	}
}
