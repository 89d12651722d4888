// internal/driver/sim/sensor.go
package sim

import (
	"math/rand"

	"github.com/tamzrod/lux-bridge/internal/driver"
)

// Sensor is a simulated light-sensor head for host runs and tests.
// Channel counts wander around a configurable baseline.
type Sensor struct {
	// Baseline broadband count; infrared tracks at roughly 1/8 of it.
	Baseline uint16
	// FailInit makes Init fail, for exercising the fatal boot path.
	FailInit bool

	rng *rand.Rand

	initialized   bool
	gain          int
	integrationMs int
}

func NewSensor(baseline uint16, seed int64) *Sensor {
	if baseline == 0 {
		baseline = 800
	}
	return &Sensor{
		Baseline: baseline,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *Sensor) Init() error {
	if s.FailInit {
		return errNoSensor
	}
	s.initialized = true
	return nil
}

func (s *Sensor) Configure(gain int, integrationMs int) error {
	s.gain = gain
	s.integrationMs = integrationMs
	return nil
}

func (s *Sensor) ReadRaw() (uint16, uint16, error) {
	if !s.initialized {
		return 0, 0, errNoSensor
	}
	// Broadband wanders +/- 12.5% around the baseline.
	span := int(s.Baseline) / 4
	broadband := int(s.Baseline) - span/2 + s.rng.Intn(span+1)
	if broadband < 0 {
		broadband = 0
	}
	ir := broadband / 8
	return uint16(ir), uint16(broadband), nil
}

func (s *Sensor) Illuminance(broadband, ir uint16) float64 {
	return driver.ApproxLux(broadband, ir)
}

var _ driver.Sensor = (*Sensor)(nil)
