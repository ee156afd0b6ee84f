package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"station/internal/core/ports"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ErrPublishTimeout is returned when the broker does not acknowledge a publish in time.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

const defaultPublishTimeout = 2 * time.Second

// mqttClient is the subset of mqtt.Client used for publishing.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher publishes each sample with QoS 0 to station/orders/<id>/location for
// external trackers.
type MQTTPublisher struct {
	client  mqttClient
	timeout time.Duration
}

// NewMQTTClient connects to brokerURL and waits for the connection to be established.
func NewMQTTClient(brokerURL, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: timeout", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: %w", brokerURL, err)
	}
	return client, nil
}

func NewMQTTPublisher(client mqttClient) *MQTTPublisher {
	return &MQTTPublisher{client: client, timeout: defaultPublishTimeout}
}

// LocationTopic returns the topic samples of orderID are published to.
func LocationTopic(orderID string) string {
	return "station/orders/" + orderID + "/location"
}

func (p *MQTTPublisher) PublishLocation(ctx context.Context, sample ports.LocationSample) error {
	msg := NewLocationMessage(sample)
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	token := p.client.Publish(LocationTopic(msg.OrderID), 0, false, data)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
