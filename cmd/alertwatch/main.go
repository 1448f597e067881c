package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/notify"
)

// alertwatch tails the resolve notifications the dashboard publishes.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging()

	broker := config.MQTTBroker()
	if broker == "" {
		log.Fatal().Msg("MQTT_BROKER is not set")
	}
	topic := config.MQTTTopic()

	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID("industrial-dashboard-alertwatch")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var ev notify.AlertResolvedEvent
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic()).Msg("bad resolve event")
			return
		}
		log.Info().
			Str("alert_id", ev.AlertID).
			Str("equipment_id", ev.EquipmentID).
			Time("resolved_at", ev.ResolvedAt).
			Msg(ev.Message)
	}

	if token := client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("topic", topic).Msg("alertwatch running; Ctrl+C to stop")
	<-ctx.Done()
}
