// Package sqlite stores precomputed almanac days in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/storage"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	_ "modernc.org/sqlite"
)

// Storage holds the connection for a SQLite storage backend
type Storage struct {
	db   *sql.DB
	path string
}

// columns in table order, after observer and date
var columns = func() []string {
	var t suncalc.SunTimes
	var cols []string
	for _, e := range storage.SunEvents(&t) {
		cols = append(cols, e.Column)
	}
	return append(cols,
		"day_length",
		"moon_fraction", "moon_phase", "moon_angle", "moon_phase_name",
		"moon_rise", "moon_set", "moon_always_up", "moon_always_down",
	)
}()

func createTableSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS almanac_days (\n\tobserver TEXT NOT NULL,\n\tdate TEXT NOT NULL,\n")
	for _, c := range columns {
		typ := "INTEGER"
		switch c {
		case "day_length", "moon_fraction", "moon_phase", "moon_angle":
			typ = "REAL"
		case "moon_phase_name":
			typ = "TEXT"
		case "moon_always_up", "moon_always_down":
			typ = "BOOLEAN NOT NULL DEFAULT 0"
		}
		fmt.Fprintf(&b, "\t%s %s,\n", c, typ)
	}
	b.WriteString("\tPRIMARY KEY (observer, date)\n)")
	return b.String()
}

func upsertSQL() string {
	all := append([]string{"observer", "date"}, columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")

	updates := make([]string, len(columns))
	for i, c := range columns {
		updates[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}

	return fmt.Sprintf("INSERT INTO almanac_days (%s) VALUES (%s) ON CONFLICT (observer, date) DO UPDATE SET %s",
		strings.Join(all, ", "), placeholders, strings.Join(updates, ", "))
}

var (
	upsertDaySQL = upsertSQL()
	selectDaySQL = fmt.Sprintf("SELECT observer, date, %s FROM almanac_days WHERE observer = ? AND date >= ? AND date <= ? ORDER BY date",
		strings.Join(columns, ", "))
)

// New opens (creating if needed) the SQLite database at path
func New(ctx context.Context, path string) (*Storage, error) {
	log.Infof("opening SQLite almanac store at %s...", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create almanac_days table: %w", err)
	}

	return &Storage{db: db, path: path}, nil
}

// StartStorageEngine creates a goroutine loop to receive days and write them
// to the database
func (s *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- almanac.Day {
	log.Info("starting SQLite storage engine...")
	dayChan := make(chan almanac.Day, 10)
	wg.Add(1)
	go storage.ProcessDays(ctx, wg, dayChan, s.StoreDay, "SQLite")
	return dayChan
}

// StoreDay inserts or replaces the row for d's observer and date
func (s *Storage) StoreDay(ctx context.Context, d almanac.Day) error {
	args := []any{d.Observer, d.Date}
	for _, e := range storage.SunEvents(&d.Times) {
		args = append(args, storage.NullTimestamp(*e.Value))
	}
	args = append(args,
		storage.NullFloat(d.DayLength),
		d.Moon.Fraction, d.Moon.Phase, d.Moon.Angle, d.MoonPhase,
		storage.NullTimestamp(d.MoonTimes.Rise), storage.NullTimestamp(d.MoonTimes.Set),
		d.MoonTimes.AlwaysUp, d.MoonTimes.AlwaysDown,
	)

	if _, err := s.db.ExecContext(ctx, upsertDaySQL, args...); err != nil {
		return fmt.Errorf("could not store day %s/%s: %w", d.Observer, d.Date, err)
	}
	return nil
}

// LoadDays returns the stored days for observer between from and to inclusive
func (s *Storage) LoadDays(ctx context.Context, observer, from, to string) ([]almanac.Day, error) {
	rows, err := s.db.QueryContext(ctx, selectDaySQL, observer, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query almanac days: %w", err)
	}
	defer rows.Close()

	var days []almanac.Day
	for rows.Next() {
		var d almanac.Day
		events := storage.SunEvents(&d.Times)
		nulls := make([]sql.NullInt64, len(events))

		var dayLength sql.NullFloat64
		var rise, set sql.NullInt64

		dest := []any{&d.Observer, &d.Date}
		for i := range nulls {
			dest = append(dest, &nulls[i])
		}
		dest = append(dest,
			&dayLength,
			&d.Moon.Fraction, &d.Moon.Phase, &d.Moon.Angle, &d.MoonPhase,
			&rise, &set, &d.MoonTimes.AlwaysUp, &d.MoonTimes.AlwaysDown,
		)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan almanac day: %w", err)
		}

		for i, e := range events {
			*e.Value = storage.TimestampFromNull(nulls[i])
		}
		d.DayLength = storage.FloatFromNull(dayLength)
		d.MoonTimes.Rise = storage.TimestampFromNull(rise)
		d.MoonTimes.Set = storage.TimestampFromNull(set)

		days = append(days, d)
	}

	return days, rows.Err()
}

// CheckHealth pings the database
func (s *Storage) CheckHealth(ctx context.Context) *storage.HealthData {
	if err := s.db.PingContext(ctx); err != nil {
		return storage.CreateHealthData(storage.StatusUnhealthy, "Database ping failed", err)
	}
	return storage.CreateHealthData(storage.StatusHealthy, "SQLite operational", nil)
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}
