package config

import (
	"fmt"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetObservers() ([]ObserverData, error)
	GetStorageConfig() (*StorageData, error)
	GetControllers() ([]ControllerData, error)
	GetAlmanacConfig() (*AlmanacData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Observers   []ObserverData   `json:"observers"`
	Storage     StorageData      `json:"storage,omitempty"`
	Controllers []ControllerData `json:"controllers,omitempty"`
	Almanac     AlmanacData      `json:"almanac,omitempty"`
}

// ObserverData is a named location for which sky data is served and
// precomputed. Coordinates are degrees and are not range checked.
type ObserverData struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Observer resolves the observer's timezone and returns it in the form used
// by the almanac
func (o ObserverData) Observer() (almanac.Observer, error) {
	loc := time.UTC
	if o.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(o.Timezone)
		if err != nil {
			return almanac.Observer{}, fmt.Errorf("observer %s: unknown timezone %q: %w", o.Name, o.Timezone, err)
		}
	}

	return almanac.Observer{
		Name:      o.Name,
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		Height:    o.Height,
		Location:  loc,
	}, nil
}

// StorageData holds the configuration for the almanac storage backends
type StorageData struct {
	SQLite      *SQLiteData      `json:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

type SQLiteData struct {
	Path string `json:"path"`
}

type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// ControllerData holds the configuration for the transport controllers
type ControllerData struct {
	Type       string          `json:"type,omitempty"`
	RESTServer *RESTServerData `json:"rest,omitempty"`
	GRPC       *GRPCData       `json:"grpc,omitempty"`
	Gateway    *GatewayData    `json:"gateway,omitempty"`
}

type RESTServerData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	EnableCORS bool   `json:"enable_cors,omitempty"`
}

type GRPCData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
}

// GatewayData configures a single listener serving both REST and gRPC
type GatewayData struct {
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	EnableCORS bool   `json:"enable_cors,omitempty"`
}

// AlmanacData controls almanac caching and precomputation
type AlmanacData struct {
	DaysAhead       int    `json:"days_ahead,omitempty"`
	CacheSize       int    `json:"cache_size,omitempty"`
	Workers         int    `json:"workers,omitempty"`
	RefreshInterval string `json:"refresh_interval,omitempty"`
}

// Defaults fills unset almanac settings
func (a AlmanacData) Defaults() AlmanacData {
	if a.DaysAhead <= 0 {
		a.DaysAhead = 30
	}
	if a.CacheSize <= 0 {
		a.CacheSize = 1024
	}
	if a.Workers <= 0 {
		a.Workers = 4
	}
	if a.RefreshInterval == "" {
		a.RefreshInterval = "24h"
	}
	return a
}

// Interval parses RefreshInterval
func (a AlmanacData) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(a.Defaults().RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid almanac refresh_interval %q: %w", a.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("almanac refresh_interval must be positive, got %s", d)
	}
	return d, nil
}
