package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/wamphlett/softbox-controller/config"
	"github.com/wamphlett/softbox-controller/pkg/controller"
)

// connectTimeout bounds the initial broker connection
const connectTimeout = 10 * time.Second

// payload represents the JSON payload which is published
type payload struct {
	Event   string
	Effect  string
	Colour  string
	Current string
	Speed   int
	Running bool
}

// client is the part of the paho client the publisher uses
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Publisher defines the publisher methods
type Publisher struct {
	client      client
	topicPrefix string
	logger      *log.Logger
}

// New connects to the configured MQTT broker
func New(cfg *config.MQTTPublisher, logger *log.Logger) (*Publisher, error) {
	options := mqtt.NewClientOptions()
	options.Servers = []*url.URL{
		{
			Scheme: cfg.Scheme,
			Host:   cfg.Host,
		},
	}
	options.SetClientID(cfg.ClientID)
	options.SetAutoReconnect(true)

	c := mqtt.NewClient(options)
	t := c.Connect()
	if !t.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", cfg.Host)
	}
	if t.Error() != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Host, t.Error())
	}

	return newPublisher(c, cfg.TopicPrefix, logger), nil
}

func newPublisher(c client, topicPrefix string, logger *log.Logger) *Publisher {
	return &Publisher{
		client:      c,
		topicPrefix: topicPrefix,
		logger:      logger,
	}
}

// Topic returns the topic an event is published to
func (p *Publisher) Topic(event controller.Event) string {
	return fmt.Sprintf("%s/%s", p.topicPrefix, event)
}

// Publish publishes a JSON payload to the configured MQTT broker
func (p *Publisher) Publish(event controller.Event, state controller.State) {
	marshaledPayload, err := json.Marshal(payload{
		Event:   string(event),
		Effect:  state.Effect.String(),
		Colour:  state.Base.Hex(),
		Current: state.Current.Hex(),
		Speed:   state.Speed,
		Running: state.Running,
	})
	if err != nil {
		p.logger.Println("mqtt: marshal:", err)
		return
	}

	t := p.client.Publish(p.Topic(event), 1, true, marshaledPayload)

	// Check for errors asynchronously
	go func() {
		_ = t.Wait()
		if t.Error() != nil {
			p.logger.Println("mqtt: publish:", t.Error())
		}
	}()
}

// Close disconnects from the broker, allowing in-flight messages a moment to send
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
