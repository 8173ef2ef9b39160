// Package mqtt publishes plant snapshots to an MQTT broker whenever a
// caller invokes Publisher.Publish — an optional sink that the coordinator
// does not call itself, never a dependency of the core client.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
	"github.com/Moonlight-Companies/givenergy-modbus/plant"
)

// Publisher holds a connected MQTT client and the topic prefix its
// snapshots are published under.
type Publisher struct {
	client       paho.Client
	topicPrefix  string
	logger       common.LoggerInterface
	publishDelay time.Duration
}

// Option configures a Publisher at construction time.
type Option func(*Publisher)

func WithLogger(l common.LoggerInterface) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithPublishTimeout bounds how long Publish waits for the broker to
// acknowledge each message before giving up.
func WithPublishTimeout(d time.Duration) Option {
	return func(p *Publisher) { p.publishDelay = d }
}

// Connect dials brokerURL (e.g. "tcp://localhost:1883") and returns a
// Publisher that publishes under topicPrefix (e.g. "givenergy/plant").
func Connect(brokerURL, clientID, topicPrefix string, opts ...Option) (*Publisher, error) {
	opt := paho.NewClientOptions().AddBroker(brokerURL).SetClientID(clientID).SetAutoReconnect(true)
	client := paho.NewClient(opt)
	if tok := client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt: connect: %w", tok.Error())
	}

	p := &Publisher{client: client, topicPrefix: topicPrefix, publishDelay: 5 * time.Second}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Close disconnects from the broker, waiting up to 250ms to drain.
func (p *Publisher) Close() { p.client.Disconnect(250) }

// Publish marshals p's current inverter and battery views to JSON and
// publishes each to its own topic, at QoS 1, retained — a subscriber
// connecting later still sees the latest reading.
func (pub *Publisher) Publish(ctx context.Context, p *plant.Plant) error {
	inv, err := p.Inverter()
	if err != nil {
		return fmt.Errorf("mqtt: project inverter: %w", err)
	}
	if err := pub.publishJSON(ctx, pub.topicPrefix+"/inverter", inv); err != nil {
		return err
	}

	for i, b := range p.Batteries() {
		topic := fmt.Sprintf("%s/battery/%d", pub.topicPrefix, i)
		if err := pub.publishJSON(ctx, topic, b); err != nil {
			return err
		}
	}
	return nil
}

func (pub *Publisher) publishJSON(ctx context.Context, topic string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("mqtt: encode %s: %w", topic, err)
	}

	tok := pub.client.Publish(topic, 1, true, data)
	done := make(chan struct{})
	go func() { tok.Wait(); close(done) }()

	select {
	case <-done:
		if tok.Error() != nil {
			return fmt.Errorf("mqtt: publish %s: %w", topic, tok.Error())
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pub.publishDelay):
		return fmt.Errorf("mqtt: publish %s: timed out waiting for broker ack", topic)
	}
}
