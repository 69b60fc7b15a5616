package messaging

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

// NatsPublisher announces payment lifecycle events to interested
// services. Publishing is fire-and-forget.
type NatsPublisher struct {
	nc *nats.Conn
}

// ConnectNats establishes the NATS connection.
func ConnectNats(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Connected to NATS.")
	return &NatsPublisher{nc: nc}, nil
}

func (p *NatsPublisher) Publish(subject string, payload interface{}) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}

// Close closes the NATS connection gracefully.
func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}
