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

package enertechutil

import (
	"bytes"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/enertech"
	"github.com/spatialmodel/enertech/internal/hash"
	"github.com/spatialmodel/enertech/report"
	"github.com/spatialmodel/enertech/store"
	"github.com/tealeg/xlsx"
)

const testConfig = "testdata/base.toml"

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestLoadConfigFile(t *testing.T) {
	c, err := LoadConfigFile(testConfig)
	if err != nil {
		t.Fatal(err)
	}
	if c.Region != "USA" || c.Modeltime.Periods != 3 || c.Modeltime.StartYear != 2005 {
		t.Errorf("config = %+v", c)
	}
	if want := filepath.Join("testdata", "fossil.xml"); c.TechnologyFile != want {
		t.Errorf("technology file = %q, want %q", c.TechnologyFile, want)
	}
	if fuels := c.Fuels(); len(fuels) != 2 || fuels[0] != "coal" || fuels[1] != "gas" {
		t.Errorf("fuels = %v", fuels)
	}
}

func TestConfigValidate(t *testing.T) {
	const base = `
technology_file = "fossil.xml"
[modeltime]
start_year = 2005
time_step = 5
periods = 2
`
	for _, tc := range []struct {
		name, doc string
		ok        bool
	}{
		{
			name: "valid",
			doc:  `region = "USA"` + "\ndemand = [1.0, 2.0]\n" + `prices = {coal = [1.0, 1.0]}` + base,
			ok:   true,
		},
		{
			name: "no region",
			doc:  "demand = [1.0, 2.0]\n" + `prices = {coal = [1.0, 1.0]}` + base,
		},
		{
			name: "demand length",
			doc:  `region = "USA"` + "\ndemand = [1.0]\n" + `prices = {coal = [1.0, 1.0]}` + base,
		},
		{
			name: "negative demand",
			doc:  `region = "USA"` + "\ndemand = [1.0, -2.0]\n" + `prices = {coal = [1.0, 1.0]}` + base,
		},
		{
			name: "negative price",
			doc:  `region = "USA"` + "\ndemand = [1.0, 2.0]\n" + `prices = {coal = [1.0, -1.0]}` + base,
		},
		{
			name: "price length",
			doc:  `region = "USA"` + "\ndemand = [1.0, 2.0]\n" + `prices = {coal = [1.0]}` + base,
		},
		{
			name: "no prices",
			doc:  `region = "USA"` + "\ndemand = [1.0, 2.0]\n" + base,
		},
		{
			name: "invalid time step",
			doc: `region = "USA"` + "\ndemand = [1.0, 2.0]\n" + `prices = {coal = [1.0, 1.0]}` +
				strings.Replace(base, "time_step = 5", "time_step = 0", 1),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tc.doc))
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	c, err := LoadConfigFile(testConfig)
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel
	dir := t.TempDir()
	o := RunOptions{
		Iterations:   3,
		Calibrate:    true,
		ResultsDB:    filepath.Join(dir, "results.db"),
		Workbook:     filepath.Join(dir, "results.xlsx"),
		DebugXML:     filepath.Join(dir, "debug.xml"),
		DebugPeriods: []int{0, 2},
	}
	r, err := Run(c, o, log)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Technologies) != 6 {
		t.Fatalf("technology results = %d, want 6", len(r.Technologies))
	}
	totals := make(map[int]float64)
	for _, tr := range r.Technologies {
		totals[tr.Period] += tr.Output
		if tr.Period == 0 {
			want := map[string]float64{"coal": 60, "gas": 40}[tr.Technology]
			if different(tr.Output, want, 1e-6) {
				t.Errorf("calibrated %s output = %g, want %g", tr.Technology, tr.Output, want)
			}
		}
	}
	for p, d := range c.Demand {
		if different(totals[p], d, 1e-10) {
			t.Errorf("period %d: output %g, demand %g", p, totals[p], d)
		}
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.ErrorLevel {
			t.Errorf("unexpected error log: %s", e.Message)
		}
	}

	if r.RunID == "" {
		t.Fatal("run was not saved")
	}
	db, err := store.Open(o.ResultsDB)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	saved, err := db.TechnologyResults(r.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 6 {
		t.Errorf("saved technology results = %d, want 6", len(saved))
	}
	runs, err := db.RunsWithConfig(hash.Key(c))
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != r.RunID {
		t.Errorf("runs with the same configuration = %+v", runs)
	}
	co2, err := db.TotalEmissions(r.RunID, "CO2", 0)
	if err != nil {
		t.Fatal(err)
	}
	var wantCO2 float64
	for _, tr := range r.Technologies {
		if tr.Period == 0 {
			wantCO2 += tr.Input * c.CarbonContent[tr.Fuel]
		}
	}
	if different(co2, wantCO2, 1e-10) {
		t.Errorf("CO2 = %g, want %g", co2, wantCO2)
	}

	f, err := xlsx.OpenFile(o.Workbook)
	if err != nil {
		t.Fatal(err)
	}
	if rows := len(f.Sheet[report.TechnologySheet].Rows); rows != 7 {
		t.Errorf("workbook technology rows = %d, want 7", rows)
	}

	b, err := ioutil.ReadFile(o.DebugXML)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), "<technology "); n != 4 {
		t.Errorf("debug technologies = %d, want 4", n)
	}
}

func TestRunInvalidIterations(t *testing.T) {
	c, err := LoadConfigFile(testConfig)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(c, RunOptions{}, logrus.StandardLogger()); err == nil {
		t.Error("expected an error for zero iterations")
	}
}

func TestRunCommand(t *testing.T) {
	Cfg.Set("scenario", testConfig)
	Cfg.Set("iterations", 2)
	Cfg.Set("dump", true)
	defer Cfg.Set("dump", false)
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	defer Root.SetOutput(nil)
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Technology:") {
		t.Errorf("dump output missing technology results: %s", buf.String())
	}
}

func TestVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	defer Root.SetOutput(nil)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "enertech v" + enertech.Version; !strings.Contains(buf.String(), want) {
		t.Errorf("version output %q does not contain %q", buf.String(), want)
	}
}

func TestRoundtrip(t *testing.T) {
	for _, tc := range []struct {
		file   string
		global bool
	}{
		{file: "testdata/fossil.xml"},
		{file: "testdata/globals.xml", global: true},
	} {
		t.Run(tc.file, func(t *testing.T) {
			f, err := os.Open(tc.file)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			first := new(bytes.Buffer)
			if err := Roundtrip(f, first, tc.global, logrus.StandardLogger()); err != nil {
				t.Fatal(err)
			}
			second := new(bytes.Buffer)
			if err := Roundtrip(bytes.NewReader(first.Bytes()), second, tc.global, logrus.StandardLogger()); err != nil {
				t.Fatal(err)
			}
			if first.String() != second.String() {
				t.Errorf("roundtrip is not stable:\n%s\n!=\n%s", first, second)
			}
		})
	}
}
