package notify

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes resolution events as JSON at QoS 1.
type MQTT struct {
	client mqttPublisher
	topic  string
}

// DialMQTT connects to broker and returns the notifier plus a close func.
func DialMQTT(broker, topic string) (*MQTT, func(), error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("industrial-dashboard").
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Info().Str("broker", broker).Str("topic", topic).Msg("mqtt notifier connected")
	return NewMQTT(client, topic), func() { client.Disconnect(250) }, nil
}

func NewMQTT(client mqttPublisher, topic string) *MQTT {
	return &MQTT{client: client, topic: topic}
}

func (m *MQTT) AlertResolved(ctx context.Context, ev AlertResolvedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	token := m.client.Publish(m.topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt publish %s: %w", m.topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish %s: %w", m.topic, err)
	}
	return nil
}
