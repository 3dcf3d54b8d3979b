package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // load .env into the environment if present
	"github.com/rs/zerolog"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/logging"
	"productapi/internal/metrics"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/internal/validation"
	"productapi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to build logger")
	}

	// --- Storage ---
	// The service is useless without its store, so a failed connection is fatal.
	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("db is disconnected")
	}
	log.Info().Str("driver", cfg.StorageDriver).Msg("db is connected")

	// --- Services ---
	m := metrics.New()
	opts := []services.Option{services.WithMetrics(m), services.WithLogger(log)}

	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue, Logger: log})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		opts = append(opts, services.WithPublisher(mqClient))

		if err := mqClient.ConsumeProductEvents(rabbitmq.AuditHandler(log)); err != nil {
			log.Error().Err(err).Msg("failed to start product event consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set, product events are disabled")
	}

	productService := services.NewProductService(st.repo, validation.New(), opts...)
	productHandler := handlers.NewProductHandler(productService, log)

	// --- HTTP ---
	app := server.NewApp(productHandler, log)
	admin := server.NewAdminApp(st.pinger, cfg.StorageDriver, m)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()
	go func() {
		log.Info().Str("addr", cfg.AdminPort).Msg("starting admin server")
		if err := admin.Listen(cfg.AdminPort); err != nil {
			log.Fatal().Err(err).Msg("admin server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	if err := admin.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during admin server shutdown")
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Error().Err(err).Msg("error closing RabbitMQ client")
		}
	}
	if err := st.close(ctx); err != nil {
		log.Error().Err(err).Msg("error closing storage")
	}

	log.Info().Msg("server gracefully stopped")
}

// store is the product repository selected by configuration, with the hooks
// main needs around it.
type store struct {
	repo   repositories.ProductRepository
	pinger database.Pinger
	close  func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		collection := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		return &store{
			repo:   repositories.NewMongoProductRepository(collection),
			pinger: database.MongoPinger(client),
			close:  client.Disconnect,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenGORM(cfg.StorageDriver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return &store{
			repo:   repositories.NewGORMProductRepository(db),
			pinger: database.GORMPinger(db),
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case config.DriverMemory:
		return &store{
			repo:   repositories.NewMemoryProductRepository(),
			pinger: database.PingFunc(func(context.Context) error { return nil }),
			close:  func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
