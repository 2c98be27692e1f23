package mqtt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elthiero/greenhouse-monitoring/models"
	"github.com/Elthiero/greenhouse-monitoring/services"
)

// Subscriber bridges sensor publishes on greenhouse/<zoneID>/readings into
// the same ingestion pipeline the HTTP boundary uses. Malformed payloads
// and unknown zones are logged and dropped.
type Subscriber struct {
	client mqtt.Client
	db     *gorm.DB
	logger *zap.Logger
	topic  string
}

func NewSubscriber(broker, clientID, topic string, db *gorm.DB, logger *zap.Logger) *Subscriber {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logger.Info("reconnecting to mqtt broker")
	})
	return &Subscriber{
		client: mqtt.NewClient(opts),
		db:     db,
		logger: logger,
		topic:  topic,
	}
}

// Start connects to the broker and subscribes to the readings topic.
func (s *Subscriber) Start() error {
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect mqtt broker: %w", token.Error())
	}
	if token := s.client.Subscribe(s.topic, 0, s.handleMessage); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe to %s: %w", s.topic, token.Error())
	}
	s.logger.Info("mqtt bridge subscribed", zap.String("topic", s.topic))
	return nil
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	s.client.Disconnect(250)
}

func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	zoneID, err := zoneIDFromTopic(msg.Topic())
	if err != nil {
		s.logger.Warn("mqtt message dropped", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}
	var input models.ReadingInput
	if err := json.Unmarshal(msg.Payload(), &input); err != nil {
		s.logger.Warn("mqtt payload dropped",
			zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}
	if _, err := services.IngestOne(s.db, zoneID, input); err != nil {
		s.logger.Warn("mqtt reading rejected",
			zap.Uint("zone_id", zoneID), zap.Error(err))
	}
}

// zoneIDFromTopic parses greenhouse/<zoneID>/readings.
func zoneIDFromTopic(topic string) (uint, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("unexpected topic shape %q", topic)
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("zone id in topic %q: %w", topic, err)
	}
	return uint(id), nil
}
