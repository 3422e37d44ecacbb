package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/mohammedyahyaa/ECommerceTask/internal/application/audit"
	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/encoding/avro"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// OrderAuditConsumer reads OrderPlaced events and hands each one to the
// audit service. Malformed events are logged and skipped; the stream
// must not wedge on one bad message.
type OrderAuditConsumer struct {
	reader  *kafkago.Reader
	encoder *avro.Encoder
	handler *audit.Service
	log     logger.Logger
}

func NewOrderAuditConsumer(cfg config.KafkaConfig, handler *audit.Service, log logger.Logger) (*OrderAuditConsumer, error) {
	encoder, err := avro.NewEncoder(avro.OrderPlacedSchema)
	if err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &OrderAuditConsumer{
		reader:  reader,
		encoder: encoder,
		handler: handler,
		log:     log,
	}, nil
}

func (c *OrderAuditConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		native, err := c.encoder.DecodeBinary(msg.Value)
		if err != nil {
			c.log.Warn("skipping undecodable order event", logger.Error(err))
			continue
		}

		rec, err := avro.AuditRecordFromNative(native)
		if err != nil {
			c.log.Warn("skipping malformed order event", logger.Error(err))
			continue
		}

		if err := c.handler.HandleOrderPlaced(ctx, rec); err != nil {
			return err
		}
	}
}

func (c *OrderAuditConsumer) Close() {
	_ = c.reader.Close()
}
