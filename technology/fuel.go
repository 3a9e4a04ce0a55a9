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

// FuelKind classifies the fuel of a technology by how it interacts with
// the marketplace.
type FuelKind int

// Fuel kinds.
const (
	// MarketFuel is bought on the market of the same name.
	MarketFuel FuelKind = iota
	// NoFuel means the technology consumes no input.
	NoFuel
	// RenewableFuel is a free resource with no market.
	RenewableFuel
)

// Fuel names with special meaning.
const (
	FuelNone      = "none"
	FuelRenewable = "renewable"
)

func (k FuelKind) String() string {
	switch k {
	case NoFuel:
		return "no fuel"
	case RenewableFuel:
		return "renewable"
	default:
		return "market"
	}
}

// FuelBinding is the fuel of a technology together with its kind.
type FuelBinding struct {
	Kind FuelKind
	// Name is the market name of the fuel. It is only meaningful for
	// MarketFuel.
	Name string
}

// BindFuel classifies the fuel called name. An empty name and "none" mean
// no fuel.
func BindFuel(name string) FuelBinding {
	switch name {
	case "", FuelNone:
		return FuelBinding{Kind: NoFuel}
	case FuelRenewable:
		return FuelBinding{Kind: RenewableFuel}
	default:
		return FuelBinding{Kind: MarketFuel, Name: name}
	}
}

// UsesMarket returns whether the fuel is priced by and demanded from the
// marketplace.
func (f FuelBinding) UsesMarket() bool { return f.Kind == MarketFuel }
