package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/calib"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/forecast"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/gr4j"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
	"github.com/PaulPoum/onacc-climate-risk-monitoring/threshold"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode so the dashboard can read while the daemon writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS calibrations (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			basin     TEXT NOT NULL,
			x1        REAL, x2 REAL, x3 REAL, x4 REAL,
			nse       REAL, kge REAL, rmse REAL, bias REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calib_basin ON calibrations(basin, timestamp)`,

		`CREATE TABLE IF NOT EXISTS flood_thresholds (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			basin       TEXT NOT NULL,
			station     TEXT NOT NULL,
			computed_at INTEGER NOT NULL,
			valid_until INTEGER NOT NULL,
			wet_moderate REAL, wet_high REAL, wet_critical REAL,
			dry_moderate REAL, dry_high REAL, dry_critical REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flood_basin ON flood_thresholds(basin, computed_at)`,

		`CREATE TABLE IF NOT EXISTS drought_thresholds (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			basin       TEXT NOT NULL,
			region      TEXT NOT NULL,
			computed_at INTEGER NOT NULL,
			valid_until INTEGER NOT NULL,
			moderate    INTEGER, high INTEGER, critical INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			basin      TEXT NOT NULL,
			level      TEXT NOT NULL,
			peak       REAL,
			peak_day   INTEGER,
			confidence REAL,
			adaptive   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assess_basin ON assessments(basin, timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCalibration(basin string, res calib.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.Exec(
		`INSERT INTO calibrations (timestamp, basin, x1, x2, x3, x4, nse, kge, rmse, bias)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), basin,
		res.Params.X1, res.Params.X2, res.Params.X3, res.Params.X4,
		res.NSE, res.KGE, res.RMSE, res.Bias)
	if err != nil {
		return fmt.Errorf("record calibration: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordFloodThresholds(basin string, fs threshold.FloodSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.Exec(
		`INSERT INTO flood_thresholds (basin, station, computed_at, valid_until,
			wet_moderate, wet_high, wet_critical, dry_moderate, dry_high, dry_critical)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		basin, string(fs.Station), fs.ComputedAt.Unix(), fs.ValidUntil.Unix(),
		fs.Wet.Moderate, fs.Wet.High, fs.Wet.Critical,
		fs.Dry.Moderate, fs.Dry.High, fs.Dry.Critical)
	if err != nil {
		return fmt.Errorf("record flood thresholds: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordDroughtThresholds(basin string, ds threshold.DroughtSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.db.Exec(
		`INSERT INTO drought_thresholds (basin, region, computed_at, valid_until, moderate, high, critical)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		basin, string(ds.Region), ds.ComputedAt.Unix(), ds.ValidUntil.Unix(),
		ds.Moderate, ds.High, ds.Critical)
	if err != nil {
		return fmt.Errorf("record drought thresholds: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordAssessment(at time.Time, a forecast.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	adaptive := 0
	if a.Adaptive {
		adaptive = 1
	}
	_, err := r.db.Exec(
		`INSERT INTO assessments (timestamp, basin, level, peak, peak_day, confidence, adaptive)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		at.Unix(), a.Basin, a.Level.String(), a.Peak, a.PeakDay, a.Confidence, adaptive)
	if err != nil {
		return fmt.Errorf("record assessment: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) LatestCalibration(basin string) (gr4j.Parameters, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var p gr4j.Parameters
	err := r.db.QueryRow(
		`SELECT x1, x2, x3, x4 FROM calibrations WHERE basin = ? ORDER BY timestamp DESC LIMIT 1`,
		basin).Scan(&p.X1, &p.X2, &p.X3, &p.X4)
	if err == sql.ErrNoRows {
		return gr4j.Parameters{}, false, nil
	}
	if err != nil {
		return gr4j.Parameters{}, false, fmt.Errorf("latest calibration: %w", err)
	}
	return p, true, nil
}

func (r *SQLiteRecorder) LatestFloodThresholds(basin string) (threshold.FloodSet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var fs threshold.FloodSet
	var st string
	var computed, until int64
	err := r.db.QueryRow(
		`SELECT station, computed_at, valid_until,
			wet_moderate, wet_high, wet_critical, dry_moderate, dry_high, dry_critical
		 FROM flood_thresholds WHERE basin = ? ORDER BY computed_at DESC LIMIT 1`,
		basin).Scan(&st, &computed, &until,
		&fs.Wet.Moderate, &fs.Wet.High, &fs.Wet.Critical,
		&fs.Dry.Moderate, &fs.Dry.High, &fs.Dry.Critical)
	if err == sql.ErrNoRows {
		return threshold.FloodSet{}, false, nil
	}
	if err != nil {
		return threshold.FloodSet{}, false, fmt.Errorf("latest flood thresholds: %w", err)
	}
	fs.Station = station.Type(st)
	fs.ComputedAt = time.Unix(computed, 0).UTC()
	fs.ValidUntil = time.Unix(until, 0).UTC()
	return fs, true, nil
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }
