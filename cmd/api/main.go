package main

import (
	"log"

	appauth "github.com/mohammedyahyaa/ECommerceTask/internal/application/auth"
	"github.com/mohammedyahyaa/ECommerceTask/internal/application/catalog"
	apporder "github.com/mohammedyahyaa/ECommerceTask/internal/application/order"
	appuser "github.com/mohammedyahyaa/ECommerceTask/internal/application/user"
	"github.com/mohammedyahyaa/ECommerceTask/internal/config"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/pricing"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/auth"
	ginserver "github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/http/gin"
	kafkainfra "github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/messaging/kafka"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/persistence/postgres"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/handler"
	"github.com/mohammedyahyaa/ECommerceTask/internal/interfaces/http/router"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	ledger := postgres.NewLedger(pool)

	producer, err := kafkainfra.NewOrderProducer(cfg.Kafka, zlog)
	if err != nil {
		zlog.Fatal("kafka producer init failed", logger.Error(err))
	}
	defer producer.Close()

	tokens := auth.NewTokenService(cfg.Auth)

	userService := appuser.NewService(userRepo, zlog)
	authService := appauth.NewService(userRepo, tokens, zlog)
	catalogService := catalog.NewService(productRepo, ledger, zlog)
	orderService := apporder.NewService(userRepo, productRepo, orderRepo, ledger, pricing.NewCalculator(), producer, zlog)

	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, tokens, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService),
		User:    handler.NewUserHandler(userService),
		Product: handler.NewProductHandler(catalogService),
		Order:   handler.NewOrderHandler(orderService),
	})

	server := ginserver.NewServer(cfg.Server, engine)
	zlog.Info("http server starting", logger.String("addr", cfg.Server.Address()))
	if err := server.Run(); err != nil {
		zlog.Fatal("server run failed", logger.Error(err))
	}
}
