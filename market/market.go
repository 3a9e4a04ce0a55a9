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

// Package market provides in-memory implementations of the collaborators
// a technology needs from the rest of an energy-economy model: the
// marketplace, model time, dependency tracking, GDP and population.
package market

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
)

type key struct {
	good   string
	region string
	period int
}

// Marketplace is an in-memory ledger of prices, demands and supplies keyed
// by good, region and period. It is not safe for concurrent use.
type Marketplace struct {
	prices map[key]float64
	demand map[key]float64
	supply map[key]float64
	info   map[key]*Info

	// Log receives messages about missing market information.
	Log logrus.FieldLogger
}

// NewMarketplace returns an empty marketplace.
func NewMarketplace() *Marketplace {
	return &Marketplace{
		prices: make(map[key]float64),
		demand: make(map[key]float64),
		supply: make(map[key]float64),
		info:   make(map[key]*Info),
		Log:    logrus.StandardLogger(),
	}
}

// SetPrice sets the price of good.
func (m *Marketplace) SetPrice(good, region string, period int, price float64) {
	m.prices[key{good, region, period}] = price
}

// Price implements enertech.Marketplace. Goods whose price was never set
// have no price.
func (m *Marketplace) Price(good, region string, period int) (float64, bool) {
	p, ok := m.prices[key{good, region, period}]
	return p, ok
}

// AddToDemand implements enertech.Marketplace.
func (m *Marketplace) AddToDemand(good, region string, value float64, period int) {
	m.demand[key{good, region, period}] += value
}

// AddToSupply implements enertech.Marketplace.
func (m *Marketplace) AddToSupply(good, region string, value float64, period int) {
	m.supply[key{good, region, period}] += value
}

// Demand returns the demand posted for good.
func (m *Marketplace) Demand(good, region string, period int) float64 {
	return m.demand[key{good, region, period}]
}

// Supply returns the supply posted for good.
func (m *Marketplace) Supply(good, region string, period int) float64 {
	return m.supply[key{good, region, period}]
}

// ClearDemand removes the demands and supplies of period so that a new
// solver iteration can post them again.
func (m *Marketplace) ClearDemand(period int) {
	for k := range m.demand {
		if k.period == period {
			delete(m.demand, k)
		}
	}
	for k := range m.supply {
		if k.period == period {
			delete(m.supply, k)
		}
	}
}

// MarketInfo implements enertech.Marketplace.
func (m *Marketplace) MarketInfo(good, region string, period int, create bool) enertech.Info {
	k := key{good, region, period}
	if i, ok := m.info[k]; ok {
		return i
	}
	if !create {
		return nil
	}
	i := NewInfo(good + " in " + region)
	i.Log = m.Log
	m.info[k] = i
	return i
}

// Goods returns the goods with demand or supply in region and period, in
// alphabetical order.
func (m *Marketplace) Goods(region string, period int) []string {
	seen := make(map[string]bool)
	for k := range m.demand {
		if k.region == region && k.period == period {
			seen[k.good] = true
		}
	}
	for k := range m.supply {
		if k.region == region && k.period == period {
			seen[k.good] = true
		}
	}
	goods := make([]string, 0, len(seen))
	for g := range seen {
		goods = append(goods, g)
	}
	sort.Strings(goods)
	return goods
}

// Info is a set of named values.
type Info struct {
	name   string
	values map[string]float64

	// Log receives a warning when a required value is missing.
	Log logrus.FieldLogger
}

// NewInfo returns an empty information set. name identifies it in log
// messages.
func NewInfo(name string) *Info {
	return &Info{
		name:   name,
		values: make(map[string]float64),
		Log:    logrus.StandardLogger(),
	}
}

// Double implements enertech.Info.
func (i *Info) Double(key string, required bool) float64 {
	v, ok := i.values[key]
	if !ok && required {
		i.Log.WithFields(logrus.Fields{
			"info": i.name,
			"key":  key,
		}).Warn("market: required value is missing")
	}
	return v
}

// SetDouble implements enertech.Info.
func (i *Info) SetDouble(key string, value float64) { i.values[key] = value }

// Has returns whether a value is stored under key.
func (i *Info) Has(key string) bool {
	_, ok := i.values[key]
	return ok
}
