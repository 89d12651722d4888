// internal/driver/modbusx/sensor.go
package modbusx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/lux-bridge/internal/driver"
)

// Sensor reads an industrial light-sensor head over Modbus TCP.
// The head exposes the photodiode pair as two consecutive input
// registers: infrared at ChannelAddress, broadband at ChannelAddress+1.
// This adapter is geometry-only: lux derivation is the shared
// two-channel approximation.
type Sensor struct {
	cfg     Config
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint       string
	UnitID         uint8
	Timeout        time.Duration
	ChannelAddress uint16
}

func New(cfg Config) (*Sensor, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus sensor: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Sensor{cfg: cfg}, nil
}

// Init opens the TCP connection. Fail fast: a head that cannot be
// reached at boot is treated as absent.
func (s *Sensor) Init() error {
	h := modbus.NewTCPClientHandler(s.cfg.Endpoint)
	h.Timeout = s.cfg.Timeout
	h.SlaveId = byte(s.cfg.UnitID)

	if err := h.Connect(); err != nil {
		return fmt.Errorf("modbus sensor: connect %s: %w", s.cfg.Endpoint, err)
	}

	s.handler = h
	s.client = modbus.NewClient(h)
	return nil
}

// Configure is accepted but not forwarded: gain and integration time
// are fixed by the head's own firmware on Modbus models.
func (s *Sensor) Configure(gain int, integrationMs int) error {
	return nil
}

func (s *Sensor) ReadRaw() (uint16, uint16, error) {
	if s.client == nil {
		return 0, 0, errors.New("modbus sensor: not initialized")
	}

	raw, err := s.client.ReadInputRegisters(s.cfg.ChannelAddress, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("modbus sensor: read channels: %w", err)
	}
	if len(raw) < 4 {
		return 0, 0, fmt.Errorf("modbus sensor: short channel payload: %d bytes", len(raw))
	}

	ir := binary.BigEndian.Uint16(raw[0:2])
	broadband := binary.BigEndian.Uint16(raw[2:4])
	return ir, broadband, nil
}

func (s *Sensor) Illuminance(broadband, ir uint16) float64 {
	return driver.ApproxLux(broadband, ir)
}

// Close closes the TCP connection.
func (s *Sensor) Close() error {
	if s.handler == nil {
		return nil
	}
	return s.handler.Close()
}

var _ driver.Sensor = (*Sensor)(nil)
