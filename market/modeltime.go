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

package market

import (
	"fmt"
	"sort"

	"github.com/spatialmodel/enertech"
)

// Modeltime maps periods to calendar years with a constant time step.
type Modeltime struct {
	StartYear int `toml:"start_year" validate:"gt=0"`
	TimeStep  int `toml:"time_step" validate:"gt=0"`
	Periods   int `toml:"periods" validate:"gt=0"`
}

// PeriodToYear implements enertech.Modeltime.
func (m Modeltime) PeriodToYear(period int) int { return m.StartYear + period*m.TimeStep }

// YearToPeriod implements enertech.Modeltime. Years between periods map to
// the preceding period.
func (m Modeltime) YearToPeriod(year int) int {
	enertech.Require(m.TimeStep > 0, "market.Modeltime.YearToPeriod", "time step %d must be positive", m.TimeStep)
	return (year - m.StartYear) / m.TimeStep
}

// NumPeriods implements enertech.Modeltime.
func (m Modeltime) NumPeriods() int { return m.Periods }

// Years returns the calendar year of every period.
func (m Modeltime) Years() []int {
	y := make([]int, m.Periods)
	for p := range y {
		y[p] = m.PeriodToYear(p)
	}
	return y
}

// Dependencies records which goods depend on which.
type Dependencies struct {
	edges map[string]map[string]bool
}

// NewDependencies returns an empty dependency record.
func NewDependencies() *Dependencies {
	return &Dependencies{edges: make(map[string]map[string]bool)}
}

// AddDependency implements enertech.DependencyFinder.
func (d *Dependencies) AddDependency(dependent, dependency string) {
	if d.edges[dependent] == nil {
		d.edges[dependent] = make(map[string]bool)
	}
	d.edges[dependent][dependency] = true
}

// DependenciesOf returns the goods dependent depends on, in alphabetical
// order.
func (d *Dependencies) DependenciesOf(dependent string) []string {
	var o []string
	for g := range d.edges[dependent] {
		o = append(o, g)
	}
	sort.Strings(o)
	return o
}

// SolutionOrder returns all goods ordered so that every good comes after
// the goods it depends on. It returns an error if the dependencies contain
// a cycle.
func (d *Dependencies) SolutionOrder() ([]string, error) {
	goods := make(map[string]bool)
	for g, deps := range d.edges {
		goods[g] = true
		for dep := range deps {
			goods[dep] = true
		}
	}
	names := make([]string, 0, len(goods))
	for g := range goods {
		names = append(names, g)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	var visit func(g string) error
	visit = func(g string) error {
		switch state[g] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("market: dependency cycle through %s", g)
		}
		state[g] = visiting
		for _, dep := range d.DependenciesOf(g) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[g] = done
		order = append(order, g)
		return nil
	}
	for _, g := range names {
		if err := visit(g); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// GDP is a table of GDP per capita by period.
type GDP []float64

// BestScaledGDPPerCapita implements enertech.GDP. The value is relative
// to the first period.
func (g GDP) BestScaledGDPPerCapita(period int) float64 {
	enertech.Require(period >= 0 && period < len(g), "market.GDP.BestScaledGDPPerCapita", "period %d out of range [0, %d)", period, len(g))
	enertech.Require(g[0] > 0, "market.GDP.BestScaledGDPPerCapita", "base GDP per capita %g must be positive", g[0])
	return g[period] / g[0]
}

// Population is a table of total population by period.
type Population []float64

// Total implements enertech.Demographics.
func (p Population) Total(period int) float64 {
	enertech.Require(period >= 0 && period < len(p), "market.Population.Total", "period %d out of range [0, %d)", period, len(p))
	return p[period]
}
