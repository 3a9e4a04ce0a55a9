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

package report

import (
	"encoding/xml"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/ghg"
	"github.com/spatialmodel/enertech/market"
	"github.com/spatialmodel/enertech/technology"
	"github.com/tealeg/xlsx"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func parseGas(t *testing.T, doc string) ghg.GHG {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(doc))
	tok, err := d.Token()
	if err != nil {
		t.Fatal(err)
	}
	g, err := ghg.Parse(d, tok.(xml.StartElement), logrus.StandardLogger())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// producedTechnology returns a coal technology that has produced 10 units
// in period 0, emitting 40 MTC of CO2 and 0.1 of a gas with an unknown
// unit.
func producedTechnology(t *testing.T) *technology.Technology {
	t.Helper()
	m := market.NewMarketplace()
	m.SetPrice("coal", "USA", 0, 1)
	m.MarketInfo("coal", "USA", 0, true).SetDouble(ghg.CoefficientKey, 2)
	s := &enertech.Scenario{
		Market:    m,
		Modeltime: market.Modeltime{StartYear: 2005, TimeStep: 5, Periods: 2},
	}
	tech := technology.New("coal", 2005)
	tech.SetFuelName("coal")
	tech.SetEfficiency(0.5)
	tech.AddGHG(parseGas(t, `<GHG name="tracer"><unit>widgets</unit><emisscoef>0.005</emisscoef></GHG>`))
	tech.CompleteInit(s, "electricity", nil, nil)
	tech.InitCalc("USA", "electricity", market.NewInfo("subsector"), nil, 0)
	tech.CalcCost("USA", "electricity", 0)
	tech.SetTechShare(1)
	tech.Production("USA", "electricity", 10, nil, 0)
	return tech
}

func TestWorkbook(t *testing.T) {
	tech := producedTechnology(t)
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()
	w.Log = log
	tech.Accept(w, 0)

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := w.Save(path); err != nil {
		t.Fatal(err)
	}
	f, err := xlsx.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}

	techs := f.Sheet[TechnologySheet]
	if techs == nil || len(techs.Rows) != 2 {
		t.Fatalf("technology sheet = %v", techs)
	}
	row := techs.Rows[1]
	if row.Cells[0].Value != "coal" || row.Cells[3].Value != "coal" {
		t.Errorf("technology row starts %q ... %q", row.Cells[0].Value, row.Cells[3].Value)
	}
	if input := cellFloat(t, row.Cells[8]); different(input, 20, 1e-10) {
		t.Errorf("input = %g, want 20", input)
	}

	outputs := f.Sheet[OutputSheet]
	if len(outputs.Rows) != 2 {
		t.Fatalf("output rows = %d, want 2", len(outputs.Rows))
	}
	if out := cellFloat(t, outputs.Rows[1].Cells[4]); different(out, 10, 1e-10) {
		t.Errorf("output = %g, want 10", out)
	}

	emis := f.Sheet[EmissionSheet]
	if len(emis.Rows) != 3 {
		t.Fatalf("emission rows = %d, want 3", len(emis.Rows))
	}
	var co2, tracer *xlsx.Row
	for _, r := range emis.Rows[1:] {
		switch r.Cells[3].Value {
		case "CO2":
			co2 = r
		case "tracer":
			tracer = r
		}
	}
	if co2 == nil || tracer == nil {
		t.Fatal("missing emission rows")
	}
	if kg := cellFloat(t, co2.Cells[6]); different(kg, 40e9, 1e-10) {
		t.Errorf("CO2 mass = %g kg, want 4e10", kg)
	}
	if e := cellFloat(t, tracer.Cells[4]); different(e, 0.1, 1e-10) {
		t.Errorf("tracer emission = %g, want 0.1", e)
	}
	if len(tracer.Cells) > 6 && tracer.Cells[6].Value != "" {
		t.Errorf("tracer mass = %q, want none", tracer.Cells[6].Value)
	}
	found := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["gas"] == "tracer" {
			found = true
		}
	}
	if !found {
		t.Error("unconvertible unit was not reported")
	}
}

func cellFloat(t *testing.T, c *xlsx.Cell) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		t.Fatalf("cell %q: %v", c.Value, err)
	}
	return v
}
