package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/mohammedyahyaa/ECommerceTask/internal/application/audit"
	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	kafkainfra "github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/messaging/kafka"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/persistence/postgres"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// Consumes order-placed events and writes one audit row per order.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	auditService := audit.NewService(postgres.NewAuditRepository(pool), zlog)

	consumer, err := kafkainfra.NewOrderAuditConsumer(cfg.Kafka, auditService, zlog)
	if err != nil {
		zlog.Fatal("kafka consumer init failed", logger.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Info("order audit consumer starting",
		logger.String("topic", cfg.Kafka.OrderTopic),
		logger.String("group", cfg.Kafka.ConsumerGroup),
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("consumer stopped", logger.Error(err))
	}
	zlog.Info("order audit consumer stopped")
}
