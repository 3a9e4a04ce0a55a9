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

// Package store saves the results of model runs in a SQLite database.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // database driver
)

// Run describes one model run.
type Run struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Region    string `db:"region"`
	Sector    string `db:"sector"`
	Subsector string `db:"subsector"`
	// ConfigKey identifies the inputs of the run. Runs with equal keys
	// had equal inputs.
	ConfigKey string `db:"config_key"`
	Created   int64  `db:"created"`
}

// TechnologyResult holds the state of one technology vintage at the end
// of a period.
type TechnologyResult struct {
	RunID       string  `db:"run_id"`
	Technology  string  `db:"technology"`
	Year        int     `db:"year"`
	Period      int     `db:"period"`
	Fuel        string  `db:"fuel"`
	Share       float64 `db:"share"`
	ShareWeight float64 `db:"share_weight"`
	Cost        float64 `db:"cost"`
	FuelCost    float64 `db:"fuel_cost"`
	Input       float64 `db:"input"`
	Output      float64 `db:"output"`
}

// EmissionResult holds the emissions of one gas from one technology
// vintage in a period.
type EmissionResult struct {
	RunID      string  `db:"run_id"`
	Technology string  `db:"technology"`
	Year       int     `db:"year"`
	Period     int     `db:"period"`
	Gas        string  `db:"gas"`
	Emission   float64 `db:"emission"`
}

// DB wraps a SQLite connection holding run results.
type DB struct {
	conn *sqlx.DB

	// Log receives progress messages.
	Log logrus.FieldLogger
}

// Open opens or creates a SQLite database at path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %v", path, err)
	}
	db := &DB{conn: conn, Log: logrus.StandardLogger()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: migrate: %v", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region TEXT NOT NULL,
		sector TEXT NOT NULL,
		subsector TEXT NOT NULL,
		config_key TEXT NOT NULL,
		created INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS technology_results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		technology TEXT NOT NULL,
		year INTEGER NOT NULL,
		period INTEGER NOT NULL,
		fuel TEXT NOT NULL,
		share REAL NOT NULL,
		share_weight REAL NOT NULL,
		cost REAL NOT NULL,
		fuel_cost REAL NOT NULL,
		input REAL NOT NULL,
		output REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS emissions (
		run_id TEXT NOT NULL REFERENCES runs(id),
		technology TEXT NOT NULL,
		year INTEGER NOT NULL,
		period INTEGER NOT NULL,
		gas TEXT NOT NULL,
		emission REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_config ON runs(config_key);
	CREATE INDEX IF NOT EXISTS idx_technology_results_run ON technology_results(run_id, period);
	CREATE INDEX IF NOT EXISTS idx_emissions_run ON emissions(run_id, period);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun records the start of a run and returns it with a new identifier.
func (db *DB) NewRun(name, region, sector, subsector, configKey string) (*Run, error) {
	r := &Run{
		ID:        uuid.New().String(),
		Name:      name,
		Region:    region,
		Sector:    sector,
		Subsector: subsector,
		ConfigKey: configKey,
		Created:   time.Now().Unix(),
	}
	_, err := db.conn.NamedExec(`INSERT INTO runs (id, name, region, sector, subsector, config_key, created)
		VALUES (:id, :name, :region, :sector, :subsector, :config_key, :created)`, r)
	if err != nil {
		return nil, fmt.Errorf("store: saving run: %v", err)
	}
	db.Log.WithFields(logrus.Fields{"run": r.ID, "name": name}).Info("store: started run")
	return r, nil
}

// Save writes the technology and emission results of a run in a single
// transaction. The RunID of every result is set to runID.
func (db *DB) Save(runID string, techs []TechnologyResult, emis []EmissionResult) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range techs {
		techs[i].RunID = runID
		_, err := tx.NamedExec(`INSERT INTO technology_results
			(run_id, technology, year, period, fuel, share, share_weight, cost, fuel_cost, input, output)
			VALUES (:run_id, :technology, :year, :period, :fuel, :share, :share_weight, :cost, :fuel_cost, :input, :output)`,
			&techs[i])
		if err != nil {
			return fmt.Errorf("store: saving technology result: %v", err)
		}
	}
	for i := range emis {
		emis[i].RunID = runID
		_, err := tx.NamedExec(`INSERT INTO emissions (run_id, technology, year, period, gas, emission)
			VALUES (:run_id, :technology, :year, :period, :gas, :emission)`, &emis[i])
		if err != nil {
			return fmt.Errorf("store: saving emissions: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	db.Log.WithFields(logrus.Fields{
		"run":          runID,
		"technologies": len(techs),
		"emissions":    len(emis),
	}).Info("store: saved results")
	return nil
}

// Runs returns all runs, oldest first.
func (db *DB) Runs() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `SELECT id, name, region, sector, subsector, config_key, created
		FROM runs ORDER BY created, rowid`)
	return runs, err
}

// RunsWithConfig returns the runs whose inputs have key configKey, oldest
// first.
func (db *DB) RunsWithConfig(configKey string) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `SELECT id, name, region, sector, subsector, config_key, created
		FROM runs WHERE config_key = ? ORDER BY created, rowid`, configKey)
	return runs, err
}

// TechnologyResults returns the technology results of runID ordered by
// period and technology.
func (db *DB) TechnologyResults(runID string) ([]TechnologyResult, error) {
	var r []TechnologyResult
	err := db.conn.Select(&r, `SELECT run_id, technology, year, period, fuel, share, share_weight,
		cost, fuel_cost, input, output
		FROM technology_results WHERE run_id = ? ORDER BY period, technology`, runID)
	return r, err
}

// Emissions returns the emission results of runID ordered by period,
// technology and gas.
func (db *DB) Emissions(runID string) ([]EmissionResult, error) {
	var r []EmissionResult
	err := db.conn.Select(&r, `SELECT run_id, technology, year, period, gas, emission
		FROM emissions WHERE run_id = ? ORDER BY period, technology, gas`, runID)
	return r, err
}

// TotalEmissions returns the emissions of gas summed over the technologies
// of runID in period.
func (db *DB) TotalEmissions(runID, gas string, period int) (float64, error) {
	var total float64
	err := db.conn.Get(&total, `SELECT COALESCE(SUM(emission), 0) FROM emissions
		WHERE run_id = ? AND gas = ? AND period = ?`, runID, gas, period)
	return total, err
}
