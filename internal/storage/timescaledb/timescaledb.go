// Package timescaledb stores precomputed almanac days in TimescaleDB/PostgreSQL.
package timescaledb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage holds the configuration for a TimescaleDB storage backend
type Storage struct {
	TimescaleDBConn *gorm.DB
}

// CreateConnection opens a gorm connection with gorm's logging routed through zap
func CreateConnection(connectionString string) (*gorm.DB, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	log.Info("connecting to TimescaleDB...")
	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		log.Warn("warning: unable to create a TimescaleDB connection:", err)
		return nil, err
	}

	return db, nil
}

// New sets up a new TimescaleDB storage backend
func New(ctx context.Context, connectionString string) (*Storage, error) {
	db, err := CreateConnection(connectionString)
	if err != nil {
		return nil, err
	}

	t := &Storage{TimescaleDBConn: db}

	log.Info("migrating almanac_days table...")
	if err := t.TimescaleDBConn.WithContext(ctx).AutoMigrate(&DayRecord{}); err != nil {
		return nil, fmt.Errorf("could not migrate almanac_days: %w", err)
	}

	return t, nil
}

// StartStorageEngine creates a goroutine loop to receive days and send
// them off to TimescaleDB
func (t *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- almanac.Day {
	log.Info("starting TimescaleDB storage engine...")
	dayChan := make(chan almanac.Day, 10)
	wg.Add(1)
	go storage.ProcessDays(ctx, wg, dayChan, t.StoreDay, "TimescaleDB")
	return dayChan
}

// StoreDay upserts a day keyed by observer and date
func (t *Storage) StoreDay(ctx context.Context, d almanac.Day) error {
	r, err := toRecord(d)
	if err != nil {
		return err
	}

	err = t.TimescaleDBConn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "observer"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"updated_at", "sun_times", "day_length", "moon_fraction",
			"moon_phase", "moon_angle", "phase_name", "moon_times",
		}),
	}).Create(&r).Error
	if err != nil {
		return fmt.Errorf("could not store day %s/%s: %w", d.Observer, d.Date, err)
	}
	return nil
}

// LoadDays returns the stored days for observer between from and to inclusive
func (t *Storage) LoadDays(ctx context.Context, observer, from, to string) ([]almanac.Day, error) {
	var records []DayRecord
	err := t.TimescaleDBConn.WithContext(ctx).
		Where("observer = ? AND date BETWEEN ? AND ?", observer, from, to).
		Order("date").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("error querying almanac days: %w", err)
	}

	days := make([]almanac.Day, 0, len(records))
	for _, r := range records {
		d, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// CheckHealth pings the database and runs a trivial query
func (t *Storage) CheckHealth(ctx context.Context) *storage.HealthData {
	if t.TimescaleDBConn == nil {
		return storage.CreateHealthData(storage.StatusUnhealthy, "No database connection", fmt.Errorf("TimescaleDB connection is nil"))
	}

	sqlDB, err := t.TimescaleDBConn.DB()
	if err != nil {
		return storage.CreateHealthData(storage.StatusUnhealthy, "Failed to get underlying database connection", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storage.CreateHealthData(storage.StatusUnhealthy, "Database ping failed", err)
	}

	var result int
	if err := t.TimescaleDBConn.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return storage.CreateHealthData(storage.StatusUnhealthy, "Database query test failed", err)
	}
	return storage.CreateHealthData(storage.StatusHealthy, "TimescaleDB operational", nil)
}

// Close closes the underlying connection pool
func (t *Storage) Close() error {
	sqlDB, err := t.TimescaleDBConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
