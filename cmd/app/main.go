package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/quillpad/internal/blogservice"
	"github.com/sushihentaime/quillpad/internal/commentservice"
	"github.com/sushihentaime/quillpad/internal/common"
	"github.com/sushihentaime/quillpad/internal/mailservice"
	"github.com/sushihentaime/quillpad/internal/metrics"
	"github.com/sushihentaime/quillpad/internal/storage"
	"github.com/sushihentaime/quillpad/internal/storage/firestore"
	"github.com/sushihentaime/quillpad/internal/storage/memory"
	"github.com/sushihentaime/quillpad/internal/storage/postgres"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	blogService    *blogservice.BlogService
	commentService *commentservice.CommentService
	mailService    *mailservice.MailService
}

func main() {
	configPath := flag.String("config", ".env", "path to the dotenv configuration file")
	flag.Parse()

	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger = newLogger(cfg.Environment)

	// Open the document store
	store, closeStore, err := openStorage(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to open the store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// Connect to the message broker when one is configured
	var producer common.MessageProducer = common.NoopProducer{}
	var broker *common.MessageBroker
	if cfg.MQHost != "" {
		broker, err = common.NewMessageBroker(common.AMQPURI(cfg.MQHost, cfg.MQPort, cfg.MQUser, cfg.MQPassword))
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupBlogExchange(broker)
		if err != nil {
			logger.Error("failed to setup the blog exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}
		producer = broker
	} else {
		logger.Info("RABBITMQ_HOST not set, domain events are disabled")
	}

	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)

	app := &application{
		config:         cfg,
		logger:         logger,
		blogService:    blogservice.NewBlogService(store, store, cache, producer, logger, cfg.BlogAuthor),
		commentService: commentservice.NewCommentService(store, store, producer, logger),
	}

	// Initialize the consumer
	if broker != nil && cfg.NotifyRecipient != "" {
		app.mailService = mailservice.NewMailService(broker, mailservice.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUser,
			Password: cfg.MailPassword,
			Sender:   cfg.MailSender,
			Timeout:  cfg.MailTimeout,
		}, cfg.NotifyRecipient, logger)
		app.mailService.NotifyNewComments()
		defer app.mailService.Close()
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// openStorage builds the backend named by STORE_DRIVER. The returned func releases it.
func openStorage(ctx context.Context, cfg *Config) (storage.Storage, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		s := memory.New()
		return s, func() { s.Close() }, nil

	case "postgres":
		db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
		if err != nil {
			return nil, nil, err
		}

		_, err = common.MigrateDB(common.PostgresURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName))
		if err != nil {
			common.CloseDB(db)
			return nil, nil, fmt.Errorf("could not migrate database: %w", err)
		}

		collector := metrics.NewPoolStatsCollector(db)
		collector.Start(15 * time.Second)

		s := postgres.New(db)
		return s, func() {
			collector.Stop()
			s.Close()
		}, nil

	case "firestore":
		s, err := firestore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
