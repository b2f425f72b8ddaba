package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"weather-cache/internal/models"
)

type EventType string

const (
	EventGenerated   EventType = "generated"
	EventInvalidated EventType = "invalidated"
)

// ForecastEvent is published whenever a forecast is generated or invalidated.
type ForecastEvent struct {
	Type     EventType        `json:"type"`
	City     string           `json:"city"`
	Key      string           `json:"key"`
	Forecast *models.Forecast `json:"forecast,omitempty"`
	At       time.Time        `json:"at"`
}

const publishTimeout = 10 * time.Second

// Producer publishes forecast events to a single topic. A nil *Producer is a no-op.
type Producer struct {
	topic  string
	client *kgo.Client
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}

	log.Info("kafka producer initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Producer{
		topic:  topic,
		client: client,
		log:    log.With(zap.String("module", "kafka.producer")),
	}, nil
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	p.client.Close()
	return nil
}

// Publish writes one record and waits for the broker acknowledgement.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	results := p.client.ProduceSync(ctx, &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	})
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("kafka: publish to %s: %w", p.topic, r.Err)
		}
	}

	p.log.Debug("published", zap.String("topic", p.topic), zap.ByteString("key", key))
	return nil
}

// PublishEvent encodes event and publishes it in the background. Failures are only logged.
func (p *Producer) PublishEvent(event ForecastEvent) {
	if p == nil {
		return
	}

	key, value, err := encodeEvent(event)
	if err != nil {
		p.log.Error("failed to encode forecast event", zap.Error(err))
		return
	}

	go func() {
		if err := p.Publish(context.Background(), key, value); err != nil {
			p.log.Warn("forecast event publish failed",
				zap.String("type", string(event.Type)),
				zap.String("key", event.Key),
				zap.Error(err))
		}
	}()
}

// encodeEvent keys records by cache key so events for one city stay ordered within a partition.
func encodeEvent(event ForecastEvent) ([]byte, []byte, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	return []byte(event.Key), value, nil
}
