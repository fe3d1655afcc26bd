package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultSNMPPort       = 161
	defaultSNMPVersion    = "2c"
	defaultSNMPTimeout    = 10 * time.Second
	defaultLogLevel       = "warn"
	defaultColdWarning    = 9
	defaultColdCritical   = 5
	defaultForwardTimeout = 2 * time.Second
	defaultInfluxTimeout  = 5 * time.Second
)

type Config struct {
	SNMP        SNMP        `yaml:"snmp"`
	Slots       SlotMapping `yaml:"slots"`
	Temperature Temperature `yaml:"temperature"`
	Log         Log         `yaml:"log"`
	Forward     Forward     `yaml:"forward"`
	Textfile    Textfile    `yaml:"textfile"`
	Influx      Influx      `yaml:"influx"`
}

// SNMP holds the connection parameters shared by every check. Retries stay at
// zero so a lost datagram surfaces as a failed check instead of a slow one.
type SNMP struct {
	Port    uint16        `yaml:"port"`
	Version string        `yaml:"version"`
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

// Temperature holds the fixed low-temperature floors in °C.
type Temperature struct {
	ColdWarning  int `yaml:"cold_warning"`
	ColdCritical int `yaml:"cold_critical"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Forward configures passive result forwarding over ZeroMQ. An empty endpoint
// disables it.
type Forward struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Textfile configures the Prometheus textfile export. An empty path disables it.
type Textfile struct {
	Path string `yaml:"path"`
}

// Influx configures writing results to an InfluxDB 1.x database. An empty URL
// disables it.
type Influx struct {
	URL             string        `yaml:"url"`
	Database        string        `yaml:"database"`
	RetentionPolicy string        `yaml:"retention_policy"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Timeout         time.Duration `yaml:"timeout"`
}

// LoadConfig initializes and returns a Config object with default values for the application settings.
func LoadConfig() *Config {

	return &Config{
		SNMP: SNMP{
			Port:    defaultSNMPPort,
			Version: defaultSNMPVersion,
			Timeout: defaultSNMPTimeout,
			Retries: 0,
		},
		Slots: DefaultSlotMapping(),
		Temperature: Temperature{
			ColdWarning:  defaultColdWarning,
			ColdCritical: defaultColdCritical,
		},
		Log: Log{
			Level:      defaultLogLevel,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     7,
			Compress:   true,
		},
		Forward: Forward{
			Timeout: defaultForwardTimeout,
		},
		Influx: Influx{
			Database: "nagios",
			Timeout:  defaultInfluxTimeout,
		},
	}
}

// LoadFile reads a YAML configuration file on top of the defaults returned by LoadConfig.
// Unknown keys are rejected. A slots section replaces the default slot mapping entirely.
func LoadFile(path string) (*Config, error) {

	cfg := LoadConfig()

	reader, err := os.Open(path)

	if err != nil {

		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defer reader.Close()

	decoder := yaml.NewDecoder(reader)

	decoder.KnownFields(true)

	cfg.Slots = nil

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {

		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if len(cfg.Slots) == 0 {

		cfg.Slots = DefaultSlotMapping()
	}

	if err := cfg.Validate(); err != nil {

		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise only fail once the device is contacted.
func (c *Config) Validate() error {

	switch c.SNMP.Version {
	case "1", "2", "2c":
	default:
		return fmt.Errorf("unsupported SNMP version: %s", c.SNMP.Version)
	}

	if c.SNMP.Timeout <= 0 {

		return fmt.Errorf("snmp timeout must be positive, got %s", c.SNMP.Timeout)
	}

	if c.SNMP.Retries < 0 {

		return fmt.Errorf("snmp retries must not be negative, got %d", c.SNMP.Retries)
	}

	if c.Influx.URL != "" && c.Influx.Database == "" {

		return errors.New("influx database is required when influx url is set")
	}

	if c.Temperature.ColdCritical > c.Temperature.ColdWarning {

		return fmt.Errorf("cold critical floor %d is above cold warning floor %d", c.Temperature.ColdCritical, c.Temperature.ColdWarning)
	}

	return nil
}
