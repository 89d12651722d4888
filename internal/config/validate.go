// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	b := &cfg.Bridge

	// ------------------------------------------------------------
	// CADENCES
	// ------------------------------------------------------------

	if b.TickMs < 0 {
		return fmt.Errorf("tick_ms must not be negative")
	}
	if b.Intervals.SampleMs < 0 || b.Intervals.LinkCheckMs < 0 || b.Intervals.LinkReportMs < 0 {
		return fmt.Errorf("intervals must not be negative")
	}

	// ------------------------------------------------------------
	// SENSOR
	// ------------------------------------------------------------

	switch b.Sensor.Driver {
	case "", "sim":
		// sim needs nothing
	case "modbus":
		if b.Sensor.Modbus.Endpoint == "" {
			return fmt.Errorf("sensor driver %q requires modbus.endpoint", b.Sensor.Driver)
		}
		if b.Sensor.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("sensor modbus.timeout_ms must not be negative")
		}
	default:
		return fmt.Errorf("unknown sensor driver %q", b.Sensor.Driver)
	}

	if b.Sensor.Gain < 0 {
		return fmt.Errorf("sensor gain must not be negative")
	}
	if b.Sensor.IntegrationMs < 0 {
		return fmt.Errorf("sensor integration_ms must not be negative")
	}

	// ------------------------------------------------------------
	// NETWORK
	// ------------------------------------------------------------

	switch b.Network.Driver {
	case "", "host", "sim":
	default:
		return fmt.Errorf("unknown network driver %q", b.Network.Driver)
	}

	if b.Network.ConnectAttempts < 0 {
		return fmt.Errorf("network connect_attempts must not be negative")
	}
	if b.Network.AttemptDelayMs < 0 {
		return fmt.Errorf("network attempt_delay_ms must not be negative")
	}

	// ------------------------------------------------------------
	// TELEMETRY (OPT-IN)
	// ------------------------------------------------------------

	if b.Telemetry.Enabled {
		if b.Telemetry.Broker == "" {
			return fmt.Errorf("telemetry enabled but broker is empty")
		}
		if b.Telemetry.Topic == "" {
			return fmt.Errorf("telemetry enabled but topic is empty")
		}
	}

	return nil
}
