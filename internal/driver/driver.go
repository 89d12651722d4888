// internal/driver/driver.go
package driver

// Sensor abstracts the light-sensor head.
// The core depends on channels and calibration only.
type Sensor interface {
	// Init prepares the hardware. Failure is the one fatal boot condition.
	Init() error
	// Configure applies gain and integration time. Values are
	// driver-defined; the core passes them through from config.
	Configure(gain int, integrationMs int) error
	// ReadRaw returns one reading: the infrared-only count and the
	// broadband (visible + infrared) count. On most heads these are the
	// high and low halves of one 32-bit composite register pair.
	ReadRaw() (ir uint16, broadband uint16, err error)
	// Illuminance converts a channel pair to lux. Calibration math is
	// the driver's own; the core treats it as opaque and correct.
	Illuminance(broadband, ir uint16) float64
}

// Network abstracts the wireless link.
type Network interface {
	// Connect performs one bounded join attempt with the given identity
	// and credentials. It may block for the attempt's full duration.
	Connect(identity, credentials string) error
	// Connected reports the link status as the radio sees it right now.
	Connected() bool
	// LocalAddr returns the current interface address, or "" when down.
	LocalAddr() string
	// SignalStrengthDbm returns the received signal strength.
	// 0 means unavailable.
	SignalStrengthDbm() int
}
