// internal/link/supervisor.go
package link

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/tamzrod/lux-bridge/internal/driver"
	"github.com/tamzrod/lux-bridge/internal/telemetry"
)

// State is the connection lifecycle state. There is no side flag
// beside it: every edge is derived from State against the radio's
// current status.
type State uint8

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Config is the supervisor's immutable runtime config.
type Config struct {
	Identity     string
	Credentials  string
	MaxAttempts  int
	AttemptDelay time.Duration
	ProbeURL     string
}

// Supervisor owns the wireless link lifecycle: it probes status on a
// fixed cadence, runs the bounded reconnect sequence, and signals
// dependents when the transport must rebind.
//
// Check runs on the scheduler goroutine only. The read-side accessors
// are also called from transport goroutines, so the mutable state sits
// behind a mutex.
//
// The connect sequence blocks its caller for up to
// MaxAttempts x AttemptDelay. That stalls the other periodic duties
// for its duration; it is an accepted latency spike, traded for a
// reconnect that either finishes or exhausts before anything else runs.
type Supervisor struct {
	cfg     Config
	net     driver.Network
	metrics *telemetry.Metrics

	mu       sync.Mutex
	state    State
	attempts uint64

	// onConnected is fired on every entry into Connected so the
	// transport can rebind its listener.
	onConnected func()

	// sleep and probe are seams for tests.
	sleep func(time.Duration)
	probe func(url string) error
}

func New(cfg Config, net driver.Network, m *telemetry.Metrics, onConnected func()) (*Supervisor, error) {
	if net == nil {
		return nil, errors.New("link: network driver required")
	}
	if m == nil {
		return nil, errors.New("link: metrics required")
	}
	if cfg.MaxAttempts <= 0 {
		return nil, errors.New("link: max attempts must be > 0")
	}
	return &Supervisor{
		cfg:         cfg,
		net:         net,
		metrics:     m,
		state:       Disconnected,
		onConnected: onConnected,
		sleep:       time.Sleep,
		probe:       httpProbe,
	}, nil
}

// Check is the periodic link duty. It compares the radio's view with
// the state machine, detects drops, and drives the reconnect sequence.
func (s *Supervisor) Check(nowMs uint64) error {
	if s.net.Connected() {
		if s.State() != Connected {
			// The link came up underneath us (first boot join done by
			// the OS, or a radio that re-associated on its own).
			s.enterConnected()
		}
		return nil
	}

	if s.State() == Connected {
		// Drop detected. The counter moves exactly here, once per
		// edge, never per join attempt.
		drops := s.recordDrop()
		s.metrics.ReconnectsTotal.Inc()
		s.metrics.LinkUp.Set(0)
		log.Printf("link: connection lost (drops=%d)", drops)
	}

	s.setState(Connecting)
	return s.connectSequence()
}

// Report is the slow-cadence diagnostic duty.
func (s *Supervisor) Report(nowMs uint64) error {
	log.Printf("link: state=%s addr=%s rssi=%ddBm drops=%d",
		s.State(), s.net.LocalAddr(), s.net.SignalStrengthDbm(), s.ReconnectAttempts())
	return nil
}

// connectSequence runs bounded join attempts with a fixed per-attempt
// delay. On exhaustion it returns to Disconnected and leaves the retry
// to the next scheduled check.
func (s *Supervisor) connectSequence() error {
	var lastErr error

	for i := 0; i < s.cfg.MaxAttempts; i++ {
		if i > 0 {
			s.sleep(s.cfg.AttemptDelay)
		}
		if err := s.net.Connect(s.cfg.Identity, s.cfg.Credentials); err != nil {
			lastErr = err
			continue
		}
		s.enterConnected()
		return nil
	}

	s.setState(Disconnected)
	return fmt.Errorf("link: %d join attempts failed: %w", s.cfg.MaxAttempts, lastErr)
}

func (s *Supervisor) enterConnected() {
	s.setState(Connected)
	s.metrics.LinkUp.Set(1)
	log.Printf("link: connected addr=%s rssi=%ddBm",
		s.net.LocalAddr(), s.net.SignalStrengthDbm())

	// Rebind first: the transport handle may be stale after a link
	// change, and serving must be back before anything else.
	if s.onConnected != nil {
		s.onConnected()
	}

	s.probeReachability()
}

// probeReachability fires one outbound probe after (re)connecting.
// Diagnostic only: failure is logged and never escalated.
func (s *Supervisor) probeReachability() {
	if s.cfg.ProbeURL == "" {
		return
	}
	if err := s.probe(s.cfg.ProbeURL); err != nil {
		s.metrics.ProbeFailuresTotal.Inc()
		log.Printf("link: reachability probe failed: %v", err)
		return
	}
	log.Printf("link: reachability probe ok url=%s", s.cfg.ProbeURL)
}

func httpProbe(url string) error {
	cli := &http.Client{Timeout: 3 * time.Second}
	resp, err := cli.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("probe status %d", resp.StatusCode)
	}
	return nil
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Supervisor) recordDrop() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return s.attempts
}

// ---- read-side accessors (server, sampler) ----

func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ReconnectAttempts reports detected Connected-to-down edges.
func (s *Supervisor) ReconnectAttempts() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Supervisor) LocalAddr() string { return s.net.LocalAddr() }

func (s *Supervisor) SignalStrengthDbm() int { return s.net.SignalStrengthDbm() }
