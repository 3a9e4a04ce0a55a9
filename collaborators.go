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

package enertech

// Marketplace is the ledger of prices, demands and supplies that a
// technology reads from and posts to. Calls are made sequentially by a
// single solver loop, so implementations need no transactional behavior.
type Marketplace interface {
	// Price returns the price of good in region for the given period.
	// ok is false if there is no market or no valid price.
	Price(good, region string, period int) (price float64, ok bool)

	// AddToDemand adds value to the demand for good.
	AddToDemand(good, region string, value float64, period int)

	// AddToSupply adds value to the supply of good.
	AddToSupply(good, region string, value float64, period int)

	// MarketInfo returns the information record attached to the market
	// for good. If the record does not exist and create is false,
	// MarketInfo returns nil.
	MarketInfo(good, region string, period int, create bool) Info
}

// Info is a set of named numbers attached to a market or to a model
// container such as a subsector.
type Info interface {
	// Double returns the value stored under key. A missing key returns
	// zero; required only changes whether the miss is reported.
	Double(key string, required bool) float64

	// SetDouble stores value under key.
	SetDouble(key string, value float64)
}

// GDP provides regional economic activity.
type GDP interface {
	// BestScaledGDPPerCapita returns GDP per capita for period,
	// scaled to the base period.
	BestScaledGDPPerCapita(period int) float64
}

// Demographics provides regional population.
type Demographics interface {
	// Total returns the total population in period.
	Total(period int) float64
}

// DependencyFinder records which goods depend on which other goods so
// that markets can be solved in order.
type DependencyFinder interface {
	AddDependency(dependent, dependency string)
}

// Modeltime converts between model periods and calendar years.
type Modeltime interface {
	PeriodToYear(period int) int
	YearToPeriod(year int) int
	NumPeriods() int
}

// TechnologyView is the read-only face of a technology shown to visitors.
type TechnologyView interface {
	Name() string
	Year() int
	FuelName() string
	Share() float64
	ShareWeight() float64
	Cost() float64
	FuelCost() float64
	Input() float64
}

// OutputView is the read-only face of a technology output.
type OutputView interface {
	Name() string
	PhysicalOutput(period int) float64
}

// GHGView is the read-only face of a greenhouse gas calculator.
type GHGView interface {
	Name() string
	Emission(period int) float64
}

// Visitor walks a technology and the outputs and gases it owns for a single
// period. Visitors must not modify what they are shown.
type Visitor interface {
	StartVisitTechnology(t TechnologyView, period int)
	VisitOutput(o OutputView, period int)
	VisitGHG(g GHGView, period int)
	EndVisitTechnology(t TechnologyView, period int)
}
