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

// Package report writes the state of visited technologies to an Excel
// workbook.
package report

import (
	"fmt"

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/enertech"
	"github.com/tealeg/xlsx"
)

// Sheet names.
const (
	TechnologySheet = "Technologies"
	OutputSheet     = "Outputs"
	EmissionSheet   = "Emissions"
)

var headers = map[string][]string{
	TechnologySheet: {"technology", "year", "period", "fuel", "share", "share weight", "cost", "fuel cost", "input"},
	OutputSheet:     {"technology", "year", "period", "output", "physical output"},
	EmissionSheet:   {"technology", "year", "period", "gas", "emission", "unit", "mass (kg)"},
}

// massive is implemented by gases whose emissions can be expressed as a
// mass.
type massive interface {
	Mass(period int) (*unit.Unit, error)
	Unit() string
}

// Workbook is an enertech.Visitor that adds a row to the workbook for
// every technology, output and gas it visits.
type Workbook struct {
	file   *xlsx.File
	sheets map[string]*xlsx.Sheet

	current enertech.TechnologyView

	// Log receives a warning for emissions that cannot be converted to
	// a mass.
	Log logrus.FieldLogger
}

// New returns a workbook with a header row in each sheet.
func New() (*Workbook, error) {
	w := &Workbook{
		file:   xlsx.NewFile(),
		sheets: make(map[string]*xlsx.Sheet),
		Log:    logrus.StandardLogger(),
	}
	for _, name := range []string{TechnologySheet, OutputSheet, EmissionSheet} {
		sheet, err := w.file.AddSheet(name)
		if err != nil {
			return nil, fmt.Errorf("report: adding sheet %s: %v", name, err)
		}
		row := sheet.AddRow()
		for _, h := range headers[name] {
			row.AddCell().SetString(h)
		}
		w.sheets[name] = sheet
	}
	return w, nil
}

// techRow starts a row in sheet with the current technology and period.
func (w *Workbook) techRow(sheet string, period int) *xlsx.Row {
	row := w.sheets[sheet].AddRow()
	row.AddCell().SetString(w.current.Name())
	row.AddCell().SetInt(w.current.Year())
	row.AddCell().SetInt(period)
	return row
}

// StartVisitTechnology implements enertech.Visitor.
func (w *Workbook) StartVisitTechnology(t enertech.TechnologyView, period int) {
	w.current = t
	row := w.techRow(TechnologySheet, period)
	row.AddCell().SetString(t.FuelName())
	for _, v := range []float64{t.Share(), t.ShareWeight(), t.Cost(), t.FuelCost(), t.Input()} {
		row.AddCell().SetFloat(v)
	}
}

// VisitOutput implements enertech.Visitor.
func (w *Workbook) VisitOutput(o enertech.OutputView, period int) {
	if w.current == nil {
		return
	}
	row := w.techRow(OutputSheet, period)
	row.AddCell().SetString(o.Name())
	row.AddCell().SetFloat(o.PhysicalOutput(period))
}

// VisitGHG implements enertech.Visitor.
func (w *Workbook) VisitGHG(g enertech.GHGView, period int) {
	if w.current == nil {
		return
	}
	row := w.techRow(EmissionSheet, period)
	row.AddCell().SetString(g.Name())
	row.AddCell().SetFloat(g.Emission(period))
	m, ok := g.(massive)
	if !ok {
		return
	}
	row.AddCell().SetString(m.Unit())
	mass, err := m.Mass(period)
	if err == nil {
		err = mass.Check(unit.Kilogram)
	}
	if err != nil {
		w.Log.WithFields(logrus.Fields{
			"technology": w.current.Name(),
			"gas":        g.Name(),
		}).Warnf("report: %v", err)
		return
	}
	row.AddCell().SetFloat(mass.Value())
}

// EndVisitTechnology implements enertech.Visitor.
func (w *Workbook) EndVisitTechnology(t enertech.TechnologyView, period int) {
	w.current = nil
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	if err := w.file.Save(path); err != nil {
		return fmt.Errorf("report: saving %s: %v", path, err)
	}
	return nil
}
