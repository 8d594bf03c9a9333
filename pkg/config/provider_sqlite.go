package config

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Schema creates the tables read by SQLiteProvider
const Schema = `
CREATE TABLE IF NOT EXISTS observers (
	name      TEXT PRIMARY KEY,
	latitude  REAL NOT NULL,
	longitude REAL NOT NULL,
	height    REAL NOT NULL DEFAULT 0,
	timezone  TEXT
);

CREATE TABLE IF NOT EXISTS storage_configs (
	backend_type                TEXT PRIMARY KEY,
	enabled                     BOOLEAN NOT NULL DEFAULT 1,
	sqlite_path                 TEXT,
	timescale_connection_string TEXT
);

CREATE TABLE IF NOT EXISTS controller_configs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	controller_type TEXT NOT NULL,
	enabled         BOOLEAN NOT NULL DEFAULT 1,
	tls_cert        TEXT,
	tls_key         TEXT,
	port            INTEGER,
	listen_addr     TEXT,
	enable_cors     BOOLEAN NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS almanac_settings (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	days_ahead       INTEGER,
	cache_size       INTEGER,
	workers          INTEGER,
	refresh_interval TEXT
);
`

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider, creating
// the schema if it does not already exist
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create config schema: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	observers, err := s.GetObservers()
	if err != nil {
		return nil, fmt.Errorf("failed to load observers: %w", err)
	}
	config.Observers = observers

	storage, err := s.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	controllers, err := s.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("failed to load controllers: %w", err)
	}
	config.Controllers = controllers

	almanac, err := s.loadAlmanac()
	if err != nil {
		return nil, fmt.Errorf("failed to load almanac settings: %w", err)
	}
	config.Almanac = almanac

	return config, nil
}

// GetObservers returns observer configurations from the database
func (s *SQLiteProvider) GetObservers() ([]ObserverData, error) {
	rows, err := s.db.Query(`SELECT name, latitude, longitude, height, timezone FROM observers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observers: %w", err)
	}
	defer rows.Close()

	var observers []ObserverData
	for rows.Next() {
		var o ObserverData
		var tz sql.NullString
		if err := rows.Scan(&o.Name, &o.Latitude, &o.Longitude, &o.Height, &tz); err != nil {
			return nil, fmt.Errorf("failed to scan observer row: %w", err)
		}
		o.Timezone = tz.String
		observers = append(observers, o)
	}

	return observers, rows.Err()
}

// GetStorageConfig returns storage configuration from the database
func (s *SQLiteProvider) GetStorageConfig() (*StorageData, error) {
	rows, err := s.db.Query(`
		SELECT backend_type, sqlite_path, timescale_connection_string
		FROM storage_configs
		WHERE enabled = 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query storage configs: %w", err)
	}
	defer rows.Close()

	storage := &StorageData{}
	for rows.Next() {
		var backendType string
		var sqlitePath, connString sql.NullString
		if err := rows.Scan(&backendType, &sqlitePath, &connString); err != nil {
			return nil, fmt.Errorf("failed to scan storage config row: %w", err)
		}

		switch backendType {
		case "sqlite":
			if sqlitePath.Valid {
				storage.SQLite = &SQLiteData{Path: sqlitePath.String}
			}
		case "timescaledb":
			if connString.Valid {
				storage.TimescaleDB = &TimescaleDBData{ConnectionString: connString.String}
			}
		}
	}

	return storage, rows.Err()
}

// GetControllers returns controller configurations from the database
func (s *SQLiteProvider) GetControllers() ([]ControllerData, error) {
	rows, err := s.db.Query(`
		SELECT controller_type, tls_cert, tls_key, port, listen_addr, enable_cors
		FROM controller_configs
		WHERE enabled = 1
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query controller configs: %w", err)
	}
	defer rows.Close()

	var controllers []ControllerData
	for rows.Next() {
		var controllerType string
		var cert, key, listenAddr sql.NullString
		var port sql.NullInt64
		var enableCORS bool

		if err := rows.Scan(&controllerType, &cert, &key, &port, &listenAddr, &enableCORS); err != nil {
			return nil, fmt.Errorf("failed to scan controller config row: %w", err)
		}

		controller := ControllerData{Type: controllerType}
		switch controllerType {
		case ControllerREST:
			controller.RESTServer = &RESTServerData{
				Cert:       cert.String,
				Key:        key.String,
				Port:       int(port.Int64),
				ListenAddr: listenAddr.String,
				EnableCORS: enableCORS,
			}
		case ControllerGRPC:
			controller.GRPC = &GRPCData{
				Cert:       cert.String,
				Key:        key.String,
				Port:       int(port.Int64),
				ListenAddr: listenAddr.String,
			}
		case ControllerGateway:
			controller.Gateway = &GatewayData{
				Port:       int(port.Int64),
				ListenAddr: listenAddr.String,
				EnableCORS: enableCORS,
			}
		}

		controllers = append(controllers, controller)
	}

	return controllers, rows.Err()
}

// GetAlmanacConfig returns almanac settings with defaults applied
func (s *SQLiteProvider) GetAlmanacConfig() (*AlmanacData, error) {
	a, err := s.loadAlmanac()
	if err != nil {
		return nil, err
	}
	a = a.Defaults()
	return &a, nil
}

func (s *SQLiteProvider) loadAlmanac() (AlmanacData, error) {
	var days, cache, workers sql.NullInt64
	var interval sql.NullString

	err := s.db.QueryRow(`
		SELECT days_ahead, cache_size, workers, refresh_interval
		FROM almanac_settings WHERE id = 1
	`).Scan(&days, &cache, &workers, &interval)
	if errors.Is(err, sql.ErrNoRows) {
		return AlmanacData{}, nil
	}
	if err != nil {
		return AlmanacData{}, fmt.Errorf("failed to query almanac settings: %w", err)
	}

	return AlmanacData{
		DaysAhead:       int(days.Int64),
		CacheSize:       int(cache.Int64),
		Workers:         int(workers.Int64),
		RefreshInterval: interval.String,
	}, nil
}

// IsReadOnly returns false since SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Write methods for configuration management

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM observers",
		"DELETE FROM storage_configs",
		"DELETE FROM controller_configs",
		"DELETE FROM almanac_settings",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("failed to clear existing config: %w", err)
		}
	}

	for _, o := range configData.Observers {
		if err := insertObserver(tx, &o); err != nil {
			return fmt.Errorf("failed to insert observer %s: %w", o.Name, err)
		}
	}

	if err := insertStorageConfigs(tx, &configData.Storage); err != nil {
		return fmt.Errorf("failed to insert storage configs: %w", err)
	}

	for _, c := range configData.Controllers {
		if err := insertController(tx, &c); err != nil {
			return fmt.Errorf("failed to insert controller %s: %w", c.Type, err)
		}
	}

	a := configData.Almanac
	_, err = tx.Exec(`
		INSERT INTO almanac_settings (id, days_ahead, cache_size, workers, refresh_interval)
		VALUES (1, ?, ?, ?, ?)
	`, a.DaysAhead, a.CacheSize, a.Workers, nullString(a.RefreshInterval))
	if err != nil {
		return fmt.Errorf("failed to insert almanac settings: %w", err)
	}

	return tx.Commit()
}

// AddObserver inserts a new observer
func (s *SQLiteProvider) AddObserver(o *ObserverData) error {
	if o.Name == "" {
		return errors.New("observer name is required")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertObserver(tx, o); err != nil {
		return fmt.Errorf("failed to insert observer %s: %w", o.Name, err)
	}
	return tx.Commit()
}

// DeleteObserver removes the named observer
func (s *SQLiteProvider) DeleteObserver(name string) error {
	result, err := s.db.Exec(`DELETE FROM observers WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete observer: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("observer not found: %s", name)
	}
	return nil
}

func insertObserver(tx *sql.Tx, o *ObserverData) error {
	_, err := tx.Exec(`
		INSERT INTO observers (name, latitude, longitude, height, timezone)
		VALUES (?, ?, ?, ?, ?)
	`, o.Name, o.Latitude, o.Longitude, o.Height, nullString(o.Timezone))
	return err
}

func insertStorageConfigs(tx *sql.Tx, storage *StorageData) error {
	if storage.SQLite != nil {
		if _, err := tx.Exec(`
			INSERT INTO storage_configs (backend_type, sqlite_path) VALUES ('sqlite', ?)
		`, storage.SQLite.Path); err != nil {
			return err
		}
	}
	if storage.TimescaleDB != nil {
		if _, err := tx.Exec(`
			INSERT INTO storage_configs (backend_type, timescale_connection_string) VALUES ('timescaledb', ?)
		`, storage.TimescaleDB.ConnectionString); err != nil {
			return err
		}
	}
	return nil
}

func insertController(tx *sql.Tx, c *ControllerData) error {
	var cert, key, listenAddr string
	var port int
	var enableCORS bool

	switch {
	case c.RESTServer != nil:
		cert, key, port, listenAddr, enableCORS = c.RESTServer.Cert, c.RESTServer.Key, c.RESTServer.Port, c.RESTServer.ListenAddr, c.RESTServer.EnableCORS
	case c.GRPC != nil:
		cert, key, port, listenAddr = c.GRPC.Cert, c.GRPC.Key, c.GRPC.Port, c.GRPC.ListenAddr
	case c.Gateway != nil:
		port, listenAddr, enableCORS = c.Gateway.Port, c.Gateway.ListenAddr, c.Gateway.EnableCORS
	}

	_, err := tx.Exec(`
		INSERT INTO controller_configs (controller_type, tls_cert, tls_key, port, listen_addr, enable_cors)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.Type, nullString(cert), nullString(key), port, nullString(listenAddr), enableCORS)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
