package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

type observerYAML struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Height    float64 `yaml:"height,omitempty"`
	Timezone  string  `yaml:"timezone,omitempty"`
}

type storageYAML struct {
	SQLite *struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite,omitempty"`
	TimescaleDB *struct {
		ConnectionString string `yaml:"connection_string"`
	} `yaml:"timescaledb,omitempty"`
}

type listenerYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen_addr,omitempty"`
	EnableCORS bool   `yaml:"enable_cors,omitempty"`
}

type controllerYAML struct {
	Type       string        `yaml:"type"`
	RESTServer *listenerYAML `yaml:"rest,omitempty"`
	GRPC       *listenerYAML `yaml:"grpc,omitempty"`
	Gateway    *listenerYAML `yaml:"gateway,omitempty"`
}

type almanacYAML struct {
	DaysAhead       int    `yaml:"days_ahead,omitempty"`
	CacheSize       int    `yaml:"cache_size,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	if y.config != nil {
		return y.config, nil
	}

	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Observers   []observerYAML   `yaml:"observers"`
		Storage     storageYAML      `yaml:"storage,omitempty"`
		Controllers []controllerYAML `yaml:"controllers,omitempty"`
		Almanac     almanacYAML      `yaml:"almanac,omitempty"`
	}

	err = yaml.UnmarshalStrict(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Observers:   make([]ObserverData, len(yamlConfig.Observers)),
		Controllers: make([]ControllerData, len(yamlConfig.Controllers)),
		Almanac: AlmanacData{
			DaysAhead:       yamlConfig.Almanac.DaysAhead,
			CacheSize:       yamlConfig.Almanac.CacheSize,
			Workers:         yamlConfig.Almanac.Workers,
			RefreshInterval: yamlConfig.Almanac.RefreshInterval,
		},
	}

	for i, o := range yamlConfig.Observers {
		config.Observers[i] = ObserverData(o)
	}

	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{Path: yamlConfig.Storage.SQLite.Path}
	}
	if yamlConfig.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: yamlConfig.Storage.TimescaleDB.ConnectionString,
		}
	}

	for i, controller := range yamlConfig.Controllers {
		config.Controllers[i] = ControllerData{
			Type: controller.Type,
		}

		if c := controller.RESTServer; c != nil {
			config.Controllers[i].RESTServer = &RESTServerData{
				Cert:       c.Cert,
				Key:        c.Key,
				Port:       c.Port,
				ListenAddr: c.ListenAddr,
				EnableCORS: c.EnableCORS,
			}
		}
		if c := controller.GRPC; c != nil {
			config.Controllers[i].GRPC = &GRPCData{
				Cert:       c.Cert,
				Key:        c.Key,
				Port:       c.Port,
				ListenAddr: c.ListenAddr,
			}
		}
		if c := controller.Gateway; c != nil {
			config.Controllers[i].Gateway = &GatewayData{
				Port:       c.Port,
				ListenAddr: c.ListenAddr,
				EnableCORS: c.EnableCORS,
			}
		}
	}

	y.config = config
	return config, nil
}

// GetObservers returns observer configurations
func (y *YAMLProvider) GetObservers() ([]ObserverData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return config.Observers, nil
}

// GetStorageConfig returns storage configuration
func (y *YAMLProvider) GetStorageConfig() (*StorageData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &config.Storage, nil
}

// GetControllers returns controller configurations
func (y *YAMLProvider) GetControllers() ([]ControllerData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return config.Controllers, nil
}

// GetAlmanacConfig returns almanac settings with defaults applied
func (y *YAMLProvider) GetAlmanacConfig() (*AlmanacData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	a := config.Almanac.Defaults()
	return &a, nil
}

// IsReadOnly returns true since YAML files are read-only in this implementation
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
