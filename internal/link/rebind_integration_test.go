// internal/link/rebind_integration_test.go
package link_test

import (
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/lux-bridge/internal/driver/sim"
	"github.com/tamzrod/lux-bridge/internal/link"
	"github.com/tamzrod/lux-bridge/internal/server"
	"github.com/tamzrod/lux-bridge/internal/snapshot"
	"github.com/tamzrod/lux-bridge/internal/telemetry"
)

// A link recovery must leave the server reachable before the next tick:
// the rebind happens inside the supervisor's check, synchronously.
func TestReconnectRebindsServerBeforeNextTick(t *testing.T) {
	net := sim.NewNetwork()
	store := snapshot.NewStore()
	m := telemetry.NewMetrics(prometheus.NewRegistry())

	var srv *server.Server

	sup, err := link.New(link.Config{
		Identity:     "lab",
		Credentials:  "secret",
		MaxAttempts:  2,
		AttemptDelay: time.Millisecond,
	}, net, m, func() {
		if err := srv.Rebind(); err != nil {
			log.Printf("rebind: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("link.New err=%v", err)
	}

	srv, err = server.New(server.Config{
		Addr:       "127.0.0.1:0",
		DeviceName: "lux-bridge-test",
	}, store, sup, nil)
	if err != nil {
		t.Fatalf("server.New err=%v", err)
	}
	defer srv.Stop()

	// Boot check joins and binds.
	if err := sup.Check(0); err != nil {
		t.Fatalf("boot Check err=%v", err)
	}
	if srv.BoundAddr() == "" {
		t.Fatalf("expected server bound after boot check")
	}

	// Drop, then recover on the next scheduled check.
	net.Drop()
	if err := sup.Check(10_000); err != nil {
		t.Fatalf("recovery Check err=%v", err)
	}

	cli := &http.Client{Timeout: 2 * time.Second}
	resp, err := cli.Get("http://" + srv.BoundAddr() + "/data")
	if err != nil {
		t.Fatalf("request after recovery failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after recovery, got %d", resp.StatusCode)
	}
	if sup.ReconnectAttempts() != 1 {
		t.Fatalf("expected exactly 1 recorded drop, got %d", sup.ReconnectAttempts())
	}
}
