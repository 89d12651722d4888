// cmd/bridge/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/lux-bridge/internal/clock"
	"github.com/tamzrod/lux-bridge/internal/config"
	"github.com/tamzrod/lux-bridge/internal/driver"
	"github.com/tamzrod/lux-bridge/internal/driver/hostnet"
	"github.com/tamzrod/lux-bridge/internal/driver/modbusx"
	"github.com/tamzrod/lux-bridge/internal/driver/sim"
	"github.com/tamzrod/lux-bridge/internal/link"
	"github.com/tamzrod/lux-bridge/internal/sampler"
	"github.com/tamzrod/lux-bridge/internal/sched"
	"github.com/tamzrod/lux-bridge/internal/server"
	"github.com/tamzrod/lux-bridge/internal/snapshot"
	"github.com/tamzrod/lux-bridge/internal/telemetry"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: bridge <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)
	b := cfg.Bridge

	// --------------------
	// Drivers
	// --------------------

	sensor, err := buildSensor(b.Sensor)
	if err != nil {
		log.Fatalf("sensor build failed: %v", err)
	}

	// The one fatal runtime condition: a sensor that cannot be brought
	// up at boot. Everything else is contained and retried.
	if err := sensor.Init(); err != nil {
		log.Fatalf("sensor init failed: %v", err)
	}
	if err := sensor.Configure(b.Sensor.Gain, b.Sensor.IntegrationMs); err != nil {
		log.Fatalf("sensor configure failed: %v", err)
	}

	network := buildNetwork(b.Network)

	// --------------------
	// Shared state + diagnostics
	// --------------------

	store := snapshot.NewStore()
	metrics := telemetry.NewMetrics(nil)

	var publish func(snapshot.Snapshot)
	if b.Telemetry.Enabled {
		pub := telemetry.NewPublisher(telemetry.PublisherConfig{
			Broker:   b.Telemetry.Broker,
			Topic:    b.Telemetry.Topic,
			ClientID: b.Telemetry.ClientID,
			Device:   b.DeviceName,
		})
		defer pub.Close()
		publish = pub.Publish
	}

	// --------------------
	// Link supervisor + request server
	// --------------------

	// The supervisor signals the server to rebind on every entry into
	// Connected; the server reads link state for its status page.
	var srv *server.Server

	sup, err := link.New(link.Config{
		Identity:     b.Network.Identity,
		Credentials:  b.Network.Credentials,
		MaxAttempts:  b.Network.ConnectAttempts,
		AttemptDelay: time.Duration(b.Network.AttemptDelayMs) * time.Millisecond,
		ProbeURL:     b.Network.ProbeURL,
	}, network, metrics, func() {
		if err := srv.Rebind(); err != nil {
			log.Printf("server rebind failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("link supervisor build failed: %v", err)
	}

	srv, err = server.New(server.Config{
		Addr:       b.Server.Addr,
		DeviceName: b.DeviceName,
		AccessLog:  b.Server.AccessLog,
	}, store, sup, promhttp.Handler())
	if err != nil {
		log.Fatalf("server build failed: %v", err)
	}
	defer srv.Stop()

	// --------------------
	// Cooperative scheduler
	// --------------------

	samp, err := sampler.New(sensor, store, sup, metrics, publish)
	if err != nil {
		log.Fatalf("sampler build failed: %v", err)
	}

	loop, err := sched.New(clock.NewBoot(),
		time.Duration(b.TickMs)*time.Millisecond,
		sched.Task{
			Name:     "sample",
			Interval: time.Duration(b.Intervals.SampleMs) * time.Millisecond,
			Run:      samp.Sample,
		},
		sched.Task{
			Name:     "link-check",
			Interval: time.Duration(b.Intervals.LinkCheckMs) * time.Millisecond,
			Run:      sup.Check,
		},
		sched.Task{
			Name:     "link-report",
			Interval: time.Duration(b.Intervals.LinkReportMs) * time.Millisecond,
			Run:      sup.Report,
		},
	)
	if err != nil {
		log.Fatalf("scheduler build failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("bridge %s starting (sensor=%s network=%s)",
		b.DeviceName, b.Sensor.Driver, b.Network.Driver)
	loop.Run(ctx)
}

func buildSensor(sc config.SensorConfig) (driver.Sensor, error) {
	switch sc.Driver {
	case "modbus":
		return modbusx.New(modbusx.Config{
			Endpoint:       sc.Modbus.Endpoint,
			UnitID:         sc.Modbus.UnitID,
			Timeout:        time.Duration(sc.Modbus.TimeoutMs) * time.Millisecond,
			ChannelAddress: sc.Modbus.ChannelAddress,
		})
	default:
		seed := sc.Sim.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return sim.NewSensor(sc.Sim.Baseline, seed), nil
	}
}

func buildNetwork(nc config.NetworkConfig) driver.Network {
	if nc.Driver == "sim" {
		return sim.NewNetwork()
	}
	return hostnet.New()
}
