package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fathima-sithara/social-service/internal/api"
	"github.com/fathima-sithara/social-service/internal/config"
	"github.com/fathima-sithara/social-service/internal/kafka"
	"github.com/fathima-sithara/social-service/internal/logger"
	"github.com/fathima-sithara/social-service/internal/metrics"
	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/repository"
	"github.com/fathima-sithara/social-service/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// store
	var (
		stores *repository.Stores
		mc     *mongo.Client
	)
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		stores = repository.NewMemoryStores()
	default:
		mc, err = repository.Connect(rootCtx, cfg.Mongo.URI, cfg.ConnectTimeout, log)
		if err != nil {
			log.Fatal("mongo connect", zap.Error(err))
		}
		db := mc.Database(cfg.Mongo.Database)
		stores = repository.NewMongoStores(mc, db,
			cfg.Mongo.UsersCollection, cfg.Mongo.PostsCollection, cfg.Mongo.MessagesCollection,
			cfg.OpTimeout)
		if err := repository.EnsureIndexes(rootCtx, stores); err != nil {
			// an existing duplicate email blocks the unique index; serve anyway
			log.Warn("ensure indexes", zap.Error(err))
		}
	}

	// events
	var (
		events   service.EventPublisher
		producer *kafka.Producer
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		events = producer
		log.Info("kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	m := metrics.New()

	// rate limiting
	var (
		limit fiber.Handler
		rdb   *redis.Client
	)
	if cfg.App.RateLimitPerMin > 0 {
		if cfg.Redis.Addr != "" {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			pingCtx, cancel := context.WithTimeout(rootCtx, 3*time.Second)
			err := rdb.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				log.Fatal("redis ping", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			}
			limit = middleware.NewRedisRateLimiter(rdb, cfg.Redis.Prefix, cfg.App.RateLimitPerMin, time.Minute, log).Handler()
		} else {
			limit = middleware.NewIPRateLimiter(rootCtx, cfg.App.RateLimitPerMin, log).Handler()
		}
	}

	app := api.NewApp(api.Deps{
		Messages:    service.NewMessagingService(stores.Messages, events, m, log),
		Users:       service.NewUserService(stores.Users, log),
		Posts:       service.NewPostService(stores.Posts, log),
		Health:      stores.Health,
		Metrics:     m,
		Log:         log,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:   limit,
	})

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Info("starting social service", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := app.Listen(addr); err != nil {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")
	stop()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(timeoutCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Warn("kafka close", zap.Error(err))
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := repository.Disconnect(timeoutCtx, mc); err != nil {
		log.Warn("mongo disconnect", zap.Error(err))
	}
	log.Info("shutdown completed")
}
