// internal/config/normalize.go
package config

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	b := &cfg.Bridge

	if b.DeviceName == "" {
		b.DeviceName = "lux-bridge"
	}
	if b.TickMs == 0 {
		b.TickMs = 50
	}

	// Cadences: sample fast, check the link rarely, report rarer still.
	if b.Intervals.SampleMs == 0 {
		b.Intervals.SampleMs = 500
	}
	if b.Intervals.LinkCheckMs == 0 {
		b.Intervals.LinkCheckMs = 10_000
	}
	if b.Intervals.LinkReportMs == 0 {
		b.Intervals.LinkReportMs = 30_000
	}

	if b.Sensor.Driver == "" {
		b.Sensor.Driver = "sim"
	}
	if b.Sensor.Gain == 0 {
		b.Sensor.Gain = 1
	}
	if b.Sensor.IntegrationMs == 0 {
		b.Sensor.IntegrationMs = 402
	}
	if b.Sensor.Modbus.TimeoutMs == 0 {
		b.Sensor.Modbus.TimeoutMs = 2_000
	}

	if b.Network.Driver == "" {
		b.Network.Driver = "host"
	}
	if b.Network.ConnectAttempts == 0 {
		b.Network.ConnectAttempts = 10
	}
	if b.Network.AttemptDelayMs == 0 {
		b.Network.AttemptDelayMs = 500
	}

	if b.Server.Addr == "" {
		b.Server.Addr = ":8080"
	}

	if b.Telemetry.Enabled && b.Telemetry.ClientID == "" {
		b.Telemetry.ClientID = b.DeviceName
	}
}
