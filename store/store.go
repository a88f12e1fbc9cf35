// Package store persists fetched yield curve observations in SQLite, keyed
// by observation date. Fitted model parameters are deliberately not stored.
package store

import (
	"database/sql"
	"fmt"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/utils"
)

// DB is the minimal database surface the store needs.
type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Store reads and writes curve snapshots.
type Store struct{ db DB }

// OpenSQLite opens (or creates) the history database at dsn.
func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

// InitSchema creates the curves table if missing.
func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS curves(
		date TEXT NOT NULL, tag TEXT NOT NULL, yield REAL NOT NULL,
		PRIMARY KEY(date, tag)
	)`)
	return err
}

// NewStore wraps an opened database.
func NewStore(db DB) *Store { return &Store{db: db} }

// SaveCurve upserts every entry of c under the given observation date
// (YYYY-MM-DD).
func (s *Store) SaveCurve(date string, c curve.Curve) error {
	if _, err := utils.ParseDate(date); err != nil {
		return fmt.Errorf("SaveCurve: %w", err)
	}
	if len(c) == 0 {
		return fmt.Errorf("SaveCurve: empty curve for %s", date)
	}
	for tag, y := range c {
		if _, err := curve.MaturityToYears(tag); err != nil {
			return fmt.Errorf("SaveCurve: %w", err)
		}
		_, err := s.db.Exec(`INSERT INTO curves(date,tag,yield) VALUES(?,?,?)
			ON CONFLICT(date,tag) DO UPDATE SET yield=excluded.yield`,
			date, tag, y)
		if err != nil {
			return fmt.Errorf("SaveCurve: %w", err)
		}
	}
	return nil
}

// LoadCurve returns the snapshot stored under date, or an error if none
// exists.
func (s *Store) LoadCurve(date string) (curve.Curve, error) {
	rows, err := s.db.Query(`SELECT tag, yield FROM curves WHERE date=?`, date)
	if err != nil {
		return nil, fmt.Errorf("LoadCurve: %w", err)
	}
	defer rows.Close()

	c := curve.Curve{}
	for rows.Next() {
		var tag string
		var y float64
		if err := rows.Scan(&tag, &y); err != nil {
			return nil, fmt.Errorf("LoadCurve: %w", err)
		}
		c[tag] = y
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadCurve: %w", err)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("LoadCurve: no curve stored for %s", date)
	}
	return c, nil
}

// Dates lists stored observation dates, ascending.
func (s *Store) Dates() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT date FROM curves ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("Dates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("Dates: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LatestDate returns the most recent stored observation date.
func (s *Store) LatestDate() (string, error) {
	dates, err := s.Dates()
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", fmt.Errorf("LatestDate: store is empty")
	}
	return dates[len(dates)-1], nil
}
