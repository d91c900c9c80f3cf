package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/i474232898/airport-weather/internal/config"
	"github.com/i474232898/airport-weather/internal/weather"
)

// Message is one reading update published on the ingestion topic.
type Message struct {
	IATA          string   `json:"iata"`
	CloudCover    *float64 `json:"cloudCover,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
	Wind          *float64 `json:"wind,omitempty"`
}

// Reading converts the message body to a partial reading.
func (m Message) Reading() weather.Reading {
	return weather.Reading{
		CloudCover:    m.CloudCover,
		Humidity:      m.Humidity,
		Pressure:      m.Pressure,
		Precipitation: m.Precipitation,
		Temperature:   m.Temperature,
		Wind:          m.Wind,
	}
}

// Updater applies a partial reading to an airport.
type Updater interface {
	Update(iata string, partial weather.Reading) error
}

type Subscriber struct {
	client    mqtt.Client
	cfg       *config.AppConfig
	logger    *slog.Logger
	updater   Updater
	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewSubscriber(cfg *config.AppConfig, updater Updater, logger *slog.Logger) *Subscriber {
	s := &Subscriber{
		cfg:     cfg,
		logger:  logger,
		updater: updater,
		stopCh:  make(chan struct{}),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(cfg.MQTTClientID)
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(c mqtt.Client) {
		s.setConnected(true)
		logger.Info("mqtt connected", "broker", cfg.MQTTBroker, "port", cfg.MQTTPort)
		// resubscribe after automatic reconnects
		if err := s.subscribe(c); err != nil {
			logger.Error("mqtt subscribe failed", "topic", cfg.MQTTTopic, "error", err)
		}
	})

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.setConnected(false)
		logger.Warn("mqtt connection lost", "error", err)
	})

	s.client = mqtt.NewClient(opts)
	return s
}

// Connect establishes connection to the MQTT broker. Subscription happens in
// the connect handler so it survives reconnects.
func (s *Subscriber) Connect(ctx context.Context) error {
	select {
	case <-s.stopCh:
		return fmt.Errorf("subscriber stopped")
	default:
	}

	if s.IsConnected() {
		return nil
	}

	token := s.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			s.client.Disconnect(0)
			return ctx.Err()
		case <-s.stopCh:
			s.client.Disconnect(0)
			return fmt.Errorf("subscriber stopped")
		default:
		}
	}
}

func (s *Subscriber) subscribe(c mqtt.Client) error {
	topic := s.cfg.MQTTTopic
	qos := byte(1)

	token := c.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		s.handleMessage(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("subscribe timeout for topic %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, token.Error())
	}

	s.logger.Info("subscribed to mqtt topic", "topic", topic, "qos", qos)
	return nil
}

// handleMessage decodes one payload and applies it. Bad payloads are dropped.
func (s *Subscriber) handleMessage(topic string, payload []byte) {
	s.logger.Debug("received mqtt message", "topic", topic, "size", len(payload))

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.logger.Warn("failed to parse reading message",
			"topic", topic,
			"error", err,
		)
		return
	}

	iata := strings.ToUpper(strings.TrimSpace(msg.IATA))
	if iata == "" {
		s.logger.Warn("reading message without iata", "topic", topic)
		return
	}

	if err := s.updater.Update(iata, msg.Reading()); err != nil {
		s.logger.Warn("reading update rejected",
			"topic", topic,
			"iata", iata,
			"error", err,
		)
		return
	}

	s.logger.Debug("applied reading", "iata", iata)
}

// IsConnected returns whether the client is connected.
func (s *Subscriber) IsConnected() bool {
	s.mu.RLock()
	connected := s.connected
	s.mu.RUnlock()
	return connected && s.client.IsConnected()
}

// Disconnect stops the subscriber and closes the MQTT connection.
// Idempotent and safe to call multiple times.
func (s *Subscriber) Disconnect() {
	s.stopOnce.Do(func() { close(s.stopCh) })

	if s.client != nil && s.IsConnected() {
		token := s.client.Unsubscribe(s.cfg.MQTTTopic)
		token.WaitTimeout(2 * time.Second)
	}

	if s.client != nil {
		s.client.Disconnect(250)
	}

	s.setConnected(false)
	s.logger.Info("mqtt subscriber disconnected")
}

func (s *Subscriber) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}
