// internal/driver/sim/network.go
package sim

import (
	"errors"

	"github.com/tamzrod/lux-bridge/internal/driver"
)

var errNoSensor = errors.New("sim: sensor not present")

// ErrJoinFailed is returned by a scripted failing join attempt.
var ErrJoinFailed = errors.New("sim: join failed")

// Network is a scriptable link for host runs and tests.
// Tests drive it by toggling Up and by scripting join failures.
type Network struct {
	// FailJoins is the number of Connect calls that fail before one
	// succeeds. Negative means fail forever.
	FailJoins int
	// Addr is the address reported while up.
	Addr string
	// Rssi is the signal strength reported while up.
	Rssi int

	up       bool
	joins    int
	failures int
}

func NewNetwork() *Network {
	return &Network{Addr: "192.0.2.10", Rssi: -55}
}

func (n *Network) Connect(identity, credentials string) error {
	n.joins++
	if n.FailJoins < 0 {
		n.failures++
		return ErrJoinFailed
	}
	if n.FailJoins > 0 {
		n.FailJoins--
		n.failures++
		return ErrJoinFailed
	}
	n.up = true
	return nil
}

func (n *Network) Connected() bool { return n.up }

func (n *Network) LocalAddr() string {
	if !n.up {
		return ""
	}
	return n.Addr
}

func (n *Network) SignalStrengthDbm() int {
	if !n.up {
		return 0
	}
	return n.Rssi
}

// Drop simulates the radio losing the link.
func (n *Network) Drop() { n.up = false }

// Joins reports how many Connect calls were made.
func (n *Network) Joins() int { return n.joins }

var _ driver.Network = (*Network)(nil)
