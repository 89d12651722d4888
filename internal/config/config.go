// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	DeviceName string          `yaml:"device_name"`
	TickMs     int             `yaml:"tick_ms"`
	Intervals  IntervalsConfig `yaml:"intervals"`
	Sensor     SensorConfig    `yaml:"sensor"`
	Network    NetworkConfig   `yaml:"network"`
	Server     ServerConfig    `yaml:"server"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
}

// ---- CADENCES ----

type IntervalsConfig struct {
	SampleMs     int `yaml:"sample_ms"`
	LinkCheckMs  int `yaml:"link_check_ms"`
	LinkReportMs int `yaml:"link_report_ms"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Driver        string       `yaml:"driver"` // "sim" | "modbus"
	Gain          int          `yaml:"gain"`
	IntegrationMs int          `yaml:"integration_ms"`
	Modbus        ModbusConfig `yaml:"modbus"`
	Sim           SimConfig    `yaml:"sim"`
}

type ModbusConfig struct {
	Endpoint       string `yaml:"endpoint"`
	UnitID         uint8  `yaml:"unit_id"`
	TimeoutMs      int    `yaml:"timeout_ms"`
	ChannelAddress uint16 `yaml:"channel_address"`
}

type SimConfig struct {
	Baseline uint16 `yaml:"baseline"`
	Seed     int64  `yaml:"seed"`
}

// ---- NETWORK ----

type NetworkConfig struct {
	Driver          string `yaml:"driver"` // "host" | "sim"
	Identity        string `yaml:"identity"`
	Credentials     string `yaml:"credentials"`
	ConnectAttempts int    `yaml:"connect_attempts"`
	AttemptDelayMs  int    `yaml:"attempt_delay_ms"`
	ProbeURL        string `yaml:"probe_url"`
}

// ---- SERVER ----

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	AccessLog bool   `yaml:"access_log"`
}

// ---- TELEMETRY (OPTIONAL, OPT-IN) ----

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

// Load reads and unmarshals a config file.
// No validation and no defaults here: callers run Validate, then Normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}

	return &cfg, nil
}
