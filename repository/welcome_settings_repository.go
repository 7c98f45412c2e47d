package repository

import (
	"context"
	"fmt"

	"github.com/ssorr707/discord-system-bot2/database"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/jackc/pgx/v5"
)

const welcomeSettingsColumns = `
	guild_id, enabled, channel_id, message, use_image, color,
	dm_enabled, dm_message, role_ids`

// WelcomeSettingsRepository implements the WelcomeSettingsRepository interface on PostgreSQL
type WelcomeSettingsRepository struct {
	db *database.DB
}

// NewWelcomeSettingsRepository creates a new welcome settings repository
func NewWelcomeSettingsRepository(db *database.DB) *WelcomeSettingsRepository {
	return &WelcomeSettingsRepository{db: db}
}

// GetOrCreate retrieves the guild's welcome settings, inserting the defaults if none exist
func (r *WelcomeSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	if err := insertDefaultWelcomeSettings(ctx, r.db.Pool, guildID); err != nil {
		return nil, err
	}

	query := `SELECT ` + welcomeSettingsColumns + ` FROM welcome_settings WHERE guild_id = $1`
	settings, err := scanWelcomeSettings(r.db.QueryRow(ctx, query, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get welcome settings for guild %d: %w", guildID, err)
	}
	return settings, nil
}

// Update locks the guild's row, applies mutate and writes the result in one transaction.
// Nothing is written if mutate returns an error.
func (r *WelcomeSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.WelcomeSettings) error) (*entities.WelcomeSettings, error) {
	var updated *entities.WelcomeSettings

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := insertDefaultWelcomeSettings(ctx, tx, guildID); err != nil {
			return err
		}

		query := `SELECT ` + welcomeSettingsColumns + ` FROM welcome_settings WHERE guild_id = $1 FOR UPDATE`
		settings, err := scanWelcomeSettings(tx.QueryRow(ctx, query, guildID))
		if err != nil {
			return fmt.Errorf("failed to lock welcome settings for guild %d: %w", guildID, err)
		}

		if err := mutate(settings); err != nil {
			return err
		}
		settings.GuildID = guildID
		if settings.RoleIDs == nil {
			settings.RoleIDs = []int64{}
		}

		updateQuery := `
			UPDATE welcome_settings
			SET enabled = $2,
			    channel_id = $3,
			    message = $4,
			    use_image = $5,
			    color = $6,
			    dm_enabled = $7,
			    dm_message = $8,
			    role_ids = $9,
			    updated_at = NOW()
			WHERE guild_id = $1
		`
		_, err = tx.Exec(ctx, updateQuery,
			settings.GuildID,
			settings.Enabled,
			settings.ChannelID,
			settings.Message,
			settings.UseImage,
			settings.Color,
			settings.DMEnabled,
			settings.DMMessage,
			settings.RoleIDs,
		)
		if err != nil {
			return fmt.Errorf("failed to update welcome settings for guild %d: %w", guildID, err)
		}

		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func insertDefaultWelcomeSettings(ctx context.Context, q Queryable, guildID int64) error {
	defaults := entities.DefaultWelcomeSettings(guildID)
	query := `
		INSERT INTO welcome_settings (guild_id, enabled, message, use_image, color, dm_enabled, dm_message, role_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (guild_id) DO NOTHING
	`
	_, err := q.Exec(ctx, query,
		defaults.GuildID,
		defaults.Enabled,
		defaults.Message,
		defaults.UseImage,
		defaults.Color,
		defaults.DMEnabled,
		defaults.DMMessage,
		defaults.RoleIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to create welcome settings for guild %d: %w", guildID, err)
	}
	return nil
}

func scanWelcomeSettings(row pgx.Row) (*entities.WelcomeSettings, error) {
	var settings entities.WelcomeSettings
	err := row.Scan(
		&settings.GuildID,
		&settings.Enabled,
		&settings.ChannelID,
		&settings.Message,
		&settings.UseImage,
		&settings.Color,
		&settings.DMEnabled,
		&settings.DMMessage,
		&settings.RoleIDs,
	)
	if err != nil {
		return nil, err
	}
	if settings.RoleIDs == nil {
		settings.RoleIDs = []int64{}
	}
	return &settings, nil
}
