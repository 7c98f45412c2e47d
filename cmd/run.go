package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ssorr707/discord-system-bot2/bot"
	"github.com/ssorr707/discord-system-bot2/config"
	"github.com/ssorr707/discord-system-bot2/database"
	"github.com/ssorr707/discord-system-bot2/domain/interfaces"
	"github.com/ssorr707/discord-system-bot2/domain/services"
	"github.com/ssorr707/discord-system-bot2/infrastructure"
	"github.com/ssorr707/discord-system-bot2/infrastructure/observability"
	"github.com/ssorr707/discord-system-bot2/repository"
	"github.com/ssorr707/discord-system-bot2/repository/badgerstore"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting guild settings bot...")

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics, continuing without them")
	}

	// Open the settings store
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize event publishing
	eventPublisher, natsClient, err := newEventPublisher(ctx, cfg, metrics)
	if err != nil {
		store.Close()
		return err
	}

	// Initialize services
	verificationService := services.NewVerificationSettingsService(store.VerificationSettings(), eventPublisher)
	welcomeService := services.NewWelcomeSettingsService(store.WelcomeSettings(), eventPublisher)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, verificationService, welcomeService, metrics)
	if err != nil {
		closeEventPublisher(natsClient)
		store.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Info("Bot is running")
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	// Close Discord bot connection first so no command is mid-write when the store closes
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	closeEventPublisher(natsClient)

	log.Info("Closing settings store...")
	if err := store.Close(); err != nil {
		log.WithError(err).Error("Error closing settings store")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

// configureLogging applies the configured level and picks JSON output in production
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("log_level", cfg.LogLevel).Warn("Invalid LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// openStore opens the settings store selected by STORAGE_DRIVER
func openStore(ctx context.Context, cfg *config.Config) (interfaces.SettingsStore, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverBadger:
		log.WithField("path", cfg.BadgerPath).Info("Opening Badger settings store...")
		store, err := badgerstore.Open(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established successfully")
		return repository.NewStore(db), nil
	}
}

// newEventPublisher connects to NATS when configured; otherwise events are dropped
func newEventPublisher(ctx context.Context, cfg *config.Config, metrics *observability.MetricsProvider) (interfaces.EventPublisher, *infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, settings events will not be published")
		return infrastructure.NewNoopEventPublisher(), nil, nil
	}

	log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
	client := infrastructure.NewNATSClient(cfg.NATSServers)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.SettingsEventStream, mapper.GetAllSubjects()); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ensure NATS stream: %w", err)
	}

	return infrastructure.NewNATSEventPublisher(client, mapper, metrics.RecordNATSMessagePublished), client, nil
}

func closeEventPublisher(client *infrastructure.NATSClient) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.WithError(err).Error("Error closing NATS connection")
	}
}
