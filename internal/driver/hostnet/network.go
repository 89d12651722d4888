// internal/driver/hostnet/network.go
package hostnet

import (
	"net"

	"github.com/tamzrod/lux-bridge/internal/driver"
)

// Network adapts a hosted OS network stack to the link capability.
// The OS owns association and DHCP, so a join attempt is a no-op
// success and the link reads as up once joined. Signal strength is
// not exposed by the portable stack.
type Network struct {
	joined bool
}

func New() *Network {
	return &Network{}
}

func (n *Network) Connect(identity, credentials string) error {
	n.joined = true
	return nil
}

func (n *Network) Connected() bool { return n.joined }

// LocalAddr returns the first non-loopback unicast IPv4 address.
func (n *Network) LocalAddr() string {
	if !n.joined {
		return ""
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok || ipn.IP.IsLoopback() {
			continue
		}
		if ip4 := ipn.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}

func (n *Network) SignalStrengthDbm() int { return 0 }

var _ driver.Network = (*Network)(nil)
