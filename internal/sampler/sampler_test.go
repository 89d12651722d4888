// internal/sampler/sampler_test.go
package sampler

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tamzrod/lux-bridge/internal/link"
	"github.com/tamzrod/lux-bridge/internal/snapshot"
	"github.com/tamzrod/lux-bridge/internal/telemetry"
)

type reading struct {
	ir        uint16
	broadband uint16
	err       error
}

type fakeSensor struct {
	readings []reading
	idx      int
}

func (f *fakeSensor) Init() error                  { return nil }
func (f *fakeSensor) Configure(gain, ms int) error { return nil }

func (f *fakeSensor) Illuminance(bb, ir uint16) float64 {
	return float64(bb) / 100
}

func (f *fakeSensor) ReadRaw() (uint16, uint16, error) {
	r := f.readings[f.idx]
	if f.idx < len(f.readings)-1 {
		f.idx++
	}
	return r.ir, r.broadband, r.err
}

type fakeLink struct {
	state link.State
	rssi  int
}

func (f *fakeLink) State() link.State      { return f.state }
func (f *fakeLink) SignalStrengthDbm() int { return f.rssi }

func newMetrics() *telemetry.Metrics {
	return telemetry.NewMetrics(prometheus.NewRegistry())
}

func TestSample_CommitsLatestReadingOnly(t *testing.T) {
	sensor := &fakeSensor{readings: []reading{
		{ir: 10, broadband: 100},
		{ir: 5, broadband: 50},
	}}
	store := snapshot.NewStore()

	s, err := New(sensor, store, &fakeLink{}, newMetrics(), nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if err := s.Sample(500); err != nil {
		t.Fatalf("first Sample err=%v", err)
	}
	if err := s.Sample(1000); err != nil {
		t.Fatalf("second Sample err=%v", err)
	}

	got := store.Latest()
	if got.VisibleIR != 50 || got.IR != 5 {
		t.Fatalf("expected second reading only, got %+v", got)
	}
	if got.CapturedAtMs != 1000 {
		t.Fatalf("expected capture time 1000, got %d", got.CapturedAtMs)
	}
}

func TestSample_CaptureTimesNonDecreasing(t *testing.T) {
	sensor := &fakeSensor{readings: []reading{{ir: 1, broadband: 10}}}
	store := snapshot.NewStore()

	s, err := New(sensor, store, nil, newMetrics(), nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	var prev uint64
	for _, now := range []uint64{500, 1000, 1000, 1500} {
		if err := s.Sample(now); err != nil {
			t.Fatalf("Sample(%d) err=%v", now, err)
		}
		got := store.Latest().CapturedAtMs
		if got < prev {
			t.Fatalf("capture time went backwards: %d after %d", got, prev)
		}
		prev = got
	}
}

func TestSample_ReadFailureKeepsPreviousSnapshot(t *testing.T) {
	sensor := &fakeSensor{readings: []reading{
		{ir: 10, broadband: 100},
		{err: errors.New("bus stuck")},
	}}
	store := snapshot.NewStore()
	m := newMetrics()

	s, err := New(sensor, store, nil, m, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if err := s.Sample(500); err != nil {
		t.Fatalf("first Sample err=%v", err)
	}
	if err := s.Sample(1000); err == nil {
		t.Fatalf("expected error from failed read")
	}

	got := store.Latest()
	if got.VisibleIR != 100 || got.CapturedAtMs != 500 {
		t.Fatalf("expected previous snapshot retained, got %+v", got)
	}
	if v := testutil.ToFloat64(m.ReadFailuresTotal); v != 1 {
		t.Fatalf("expected 1 read failure, got %v", v)
	}
}

func TestSample_PublishGatedOnLinkUp(t *testing.T) {
	sensor := &fakeSensor{readings: []reading{{ir: 10, broadband: 100}}}
	store := snapshot.NewStore()
	li := &fakeLink{state: link.Disconnected, rssi: -60}

	var published []snapshot.Snapshot
	s, err := New(sensor, store, li, newMetrics(), func(sn snapshot.Snapshot) {
		published = append(published, sn)
	})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if err := s.Sample(500); err != nil {
		t.Fatalf("Sample err=%v", err)
	}
	if len(published) != 0 {
		t.Fatalf("expected no publish while down, got %d", len(published))
	}

	li.state = link.Connected
	if err := s.Sample(1000); err != nil {
		t.Fatalf("Sample err=%v", err)
	}
	if len(published) != 1 {
		t.Fatalf("expected 1 publish while up, got %d", len(published))
	}
	if published[0].CapturedAtMs != 1000 {
		t.Fatalf("expected the committed snapshot, got %+v", published[0])
	}
}
