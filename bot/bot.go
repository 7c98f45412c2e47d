package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/ssorr707/discord-system-bot2/application"
	"github.com/ssorr707/discord-system-bot2/bot/common"
	"github.com/ssorr707/discord-system-bot2/bot/features/verification"
	"github.com/ssorr707/discord-system-bot2/bot/features/welcome"
	"github.com/ssorr707/discord-system-bot2/domain/interfaces"
	"github.com/ssorr707/discord-system-bot2/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// commandTimeout bounds the work done for a single interaction
const commandTimeout = 30 * time.Second

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Registers commands to one guild when set, globally otherwise
}

// Bot manages the Discord session and the feature modules
type Bot struct {
	// Core components
	config  Config
	session *discordgo.Session
	metrics *observability.MetricsProvider

	// Services, used directly when the bot joins a guild
	verificationService interfaces.VerificationSettingsService
	welcomeService      interfaces.WelcomeSettingsService

	// Feature modules
	verification *verification.Feature
	welcome      *welcome.Feature
}

// New creates a new bot instance with all features and opens the gateway connection
func New(config Config, verificationService interfaces.VerificationSettingsService, welcomeService interfaces.WelcomeSettingsService, metrics *observability.MetricsProvider) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	platform := NewPlatform(dg)

	bot := &Bot{
		config:              config,
		session:             dg,
		metrics:             metrics,
		verificationService: verificationService,
		welcomeService:      welcomeService,
		verification:        verification.NewFeature(application.NewVerificationHandler(verificationService, platform)),
		welcome:             welcome.NewFeature(application.NewWelcomeHandler(welcomeService, platform)),
	}

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleGuildCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to the feature that owns them and records the outcome
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	done := b.metrics.MeasureCommand(name)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch name {
	case verification.CommandSetup, verification.CommandToggle, verification.CommandStatus:
		done(string(b.verification.HandleCommand(ctx, s, i)))
	case welcome.CommandSetup, welcome.CommandToggle, welcome.CommandStatus,
		welcome.CommandMessage, welcome.CommandRoles, welcome.CommandTest:
		done(string(b.welcome.HandleCommand(ctx, s, i)))
	default:
		log.WithField("command", name).Warn("Received unknown command")
	}
}

// handleGuildCreate makes sure a joined guild has its settings records
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx := context.Background()

	guildID, err := common.ParseID(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	fields := log.Fields{"guild_id": guildID, "guild_name": g.Name}

	verificationSettings, err := b.verificationService.GetSettings(ctx, guildID)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Failed to load verification settings")
		return
	}
	welcomeSettings, err := b.welcomeService.GetSettings(ctx, guildID)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("Failed to load welcome settings")
		return
	}

	log.WithFields(fields).WithFields(log.Fields{
		"verification_enabled": verificationSettings.Enabled,
		"welcome_enabled":      welcomeSettings.Enabled,
	}).Info("Guild available")
}
