// internal/telemetry/publisher.go
package telemetry

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/tamzrod/lux-bridge/internal/snapshot"
)

// Publisher pushes captured snapshots to an MQTT broker.
// Delivery-only, best-effort: a failed publish is logged, never escalated.
type Publisher struct {
	cli     mqtt.Client
	topic   string
	device  string
	timeout time.Duration
}

// PublisherConfig is minimal broker config.
type PublisherConfig struct {
	Broker   string
	Topic    string
	ClientID string
	Device   string
}

func NewPublisher(cfg PublisherConfig) *Publisher {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(3 * time.Second)

	return &Publisher{
		cli:     mqtt.NewClient(opts),
		topic:   cfg.Topic,
		device:  cfg.Device,
		timeout: 3 * time.Second,
	}
}

// Publish delivers one snapshot. Connection is lazy and reused.
func (p *Publisher) Publish(snap snapshot.Snapshot) {
	payload, err := EncodeReading(p.device, snap)
	if err != nil {
		log.Printf("telemetry: marshal failed: %v", err)
		return
	}

	if !p.ensureConnected() {
		log.Printf("telemetry: broker unreachable, dropping reading")
		return
	}

	token := p.cli.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(p.timeout) {
		log.Printf("telemetry: publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("telemetry: publish failed: %v", err)
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}

func (p *Publisher) ensureConnected() bool {
	if p.cli.IsConnectionOpen() {
		return true
	}
	token := p.cli.Connect()
	if !token.WaitTimeout(p.timeout) {
		return false
	}
	return token.Error() == nil
}

// reading is the wire form of one published snapshot.
type reading struct {
	Device    string  `json:"device"`
	VisibleIR uint16  `json:"visible_ir"`
	IR        uint16  `json:"ir"`
	Lux       float64 `json:"lux"`
	Timestamp uint64  `json:"timestamp"`
}

// EncodeReading packs a snapshot into the published JSON form.
// No IO. No side effects.
func EncodeReading(device string, snap snapshot.Snapshot) ([]byte, error) {
	return json.Marshal(reading{
		Device:    device,
		VisibleIR: snap.VisibleIR,
		IR:        snap.IR,
		Lux:       snap.Lux,
		Timestamp: snap.CapturedAtMs,
	})
}
