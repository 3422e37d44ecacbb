package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/encoding/avro"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// OrderProducer publishes OrderPlaced events, Avro-encoded, keyed by
// order id so replays of the same order land in the same partition.
type OrderProducer struct {
	client  *kgo.Client
	encoder *avro.Encoder
	topic   string
	log     logger.Logger
}

func NewOrderProducer(cfg config.KafkaConfig, log logger.Logger) (*OrderProducer, error) {
	encoder, err := avro.NewEncoder(avro.OrderPlacedSchema)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.OrderTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.Info("kafka producer ready",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.OrderTopic),
	)

	return &OrderProducer{
		client:  client,
		encoder: encoder,
		topic:   cfg.OrderTopic,
		log:     log,
	}, nil
}

func (p *OrderProducer) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	payload, err := p.encoder.EncodeNative(avro.OrderPlacedNative(o))
	if err != nil {
		return err
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(o.ID),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	// ProduceSync returns one result per record; we send exactly one.
	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *OrderProducer) Close() {
	p.log.Info("closing kafka producer", logger.String("topic", p.topic))
	p.client.Close()
}
