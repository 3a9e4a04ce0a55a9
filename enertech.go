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

// Package enertech holds the types shared by the components of an
// energy-technology model: the interfaces of the collaborators a technology
// talks to (markets, GDP, demographics, model time, dependency tracking and
// reporting visitors), numerical constants, and the error type used for
// broken calling contracts.
//
// The technology calculation itself lives in the technology subpackage.
package enertech

import (
	"math"
)

// Version gives the version number.
const Version = "0.3.1"

const (
	// SmallNumber is the floor applied to technology costs. Costs are
	// raised to a (negative) logit exponent, which is undefined at or below
	// zero.
	SmallNumber = 1e-6

	// LargeNumber is substituted for prices that are missing from the
	// marketplace.
	LargeNumber = 1e99

	// equalityTolerance is the tolerance used by IsEqual.
	equalityTolerance = 1e-10
)

// IsValidNumber returns whether v is a finite number.
func IsValidNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsEqual returns whether a and b are equal within a small absolute
// tolerance.
func IsEqual(a, b float64) bool {
	return math.Abs(a-b) < equalityTolerance
}
