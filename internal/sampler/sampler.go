// internal/sampler/sampler.go
package sampler

import (
	"errors"
	"fmt"
	"log"

	"github.com/tamzrod/lux-bridge/internal/driver"
	"github.com/tamzrod/lux-bridge/internal/link"
	"github.com/tamzrod/lux-bridge/internal/snapshot"
	"github.com/tamzrod/lux-bridge/internal/telemetry"
)

// LinkInfo is the slice of link state the sampler needs.
// Diagnostics only: it never influences the reading itself.
type LinkInfo interface {
	State() link.State
	SignalStrengthDbm() int
}

// Sampler acquires one reading per due tick and commits it to the
// shared store. All-or-nothing: a failed read leaves the previous
// snapshot in place.
type Sampler struct {
	sensor  driver.Sensor
	store   *snapshot.Store
	link    LinkInfo
	metrics *telemetry.Metrics

	// publish pushes a committed snapshot to the telemetry broker.
	// Optional; called only while the link is up.
	publish func(snapshot.Snapshot)
}

func New(sensor driver.Sensor, store *snapshot.Store, li LinkInfo, m *telemetry.Metrics, publish func(snapshot.Snapshot)) (*Sampler, error) {
	if sensor == nil {
		return nil, errors.New("sampler: sensor driver required")
	}
	if store == nil {
		return nil, errors.New("sampler: store required")
	}
	if m == nil {
		return nil, errors.New("sampler: metrics required")
	}
	return &Sampler{
		sensor:  sensor,
		store:   store,
		link:    li,
		metrics: m,
		publish: publish,
	}, nil
}

// Sample is the periodic acquisition duty. nowMs is the scheduler's
// monotonic time and becomes the snapshot's timestamp, so successive
// commits carry non-decreasing capture times.
func (s *Sampler) Sample(nowMs uint64) error {
	ir, broadband, err := s.sensor.ReadRaw()
	if err != nil {
		s.metrics.ReadFailuresTotal.Inc()
		return fmt.Errorf("sampler: read: %w", err)
	}

	lux := s.sensor.Illuminance(broadband, ir)

	snap := snapshot.Snapshot{
		VisibleIR:    broadband,
		IR:           ir,
		Lux:          lux,
		CapturedAtMs: nowMs,
	}
	s.store.Put(snap)

	s.metrics.SamplesTotal.Inc()
	s.metrics.Lux.Set(lux)

	if s.link != nil && s.link.State() == link.Connected {
		rssi := s.link.SignalStrengthDbm()
		s.metrics.SignalDbm.Set(float64(rssi))
		log.Printf("sample: broadband=%d ir=%d lux=%.2f rssi=%ddBm",
			broadband, ir, lux, rssi)
		if s.publish != nil {
			s.publish(snap)
		}
	} else {
		log.Printf("sample: broadband=%d ir=%d lux=%.2f", broadband, ir, lux)
	}

	return nil
}
