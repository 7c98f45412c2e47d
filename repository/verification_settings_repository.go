package repository

import (
	"context"
	"fmt"

	"github.com/ssorr707/discord-system-bot2/database"
	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/jackc/pgx/v5"
)

const verificationSettingsColumns = `
	guild_id, enabled, verification_channel_id, log_channel_id,
	verified_role_id, unverified_role_id, welcome_message, verification_method,
	auto_kick, auto_kick_timeout_ms, verification_message_id`

// VerificationSettingsRepository implements the VerificationSettingsRepository interface on PostgreSQL
type VerificationSettingsRepository struct {
	db *database.DB
}

// NewVerificationSettingsRepository creates a new verification settings repository
func NewVerificationSettingsRepository(db *database.DB) *VerificationSettingsRepository {
	return &VerificationSettingsRepository{db: db}
}

// GetOrCreate retrieves the guild's verification settings, inserting the defaults if none exist
func (r *VerificationSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.VerificationSettings, error) {
	if err := insertDefaultVerificationSettings(ctx, r.db.Pool, guildID); err != nil {
		return nil, err
	}

	query := `SELECT ` + verificationSettingsColumns + ` FROM verification_settings WHERE guild_id = $1`
	settings, err := scanVerificationSettings(r.db.QueryRow(ctx, query, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get verification settings for guild %d: %w", guildID, err)
	}
	return settings, nil
}

// Update locks the guild's row, applies mutate and writes the result in one transaction.
// Nothing is written if mutate returns an error.
func (r *VerificationSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.VerificationSettings) error) (*entities.VerificationSettings, error) {
	var updated *entities.VerificationSettings

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := insertDefaultVerificationSettings(ctx, tx, guildID); err != nil {
			return err
		}

		query := `SELECT ` + verificationSettingsColumns + ` FROM verification_settings WHERE guild_id = $1 FOR UPDATE`
		settings, err := scanVerificationSettings(tx.QueryRow(ctx, query, guildID))
		if err != nil {
			return fmt.Errorf("failed to lock verification settings for guild %d: %w", guildID, err)
		}

		if err := mutate(settings); err != nil {
			return err
		}
		settings.GuildID = guildID

		updateQuery := `
			UPDATE verification_settings
			SET enabled = $2,
			    verification_channel_id = $3,
			    log_channel_id = $4,
			    verified_role_id = $5,
			    unverified_role_id = $6,
			    welcome_message = $7,
			    verification_method = $8,
			    auto_kick = $9,
			    auto_kick_timeout_ms = $10,
			    verification_message_id = $11,
			    updated_at = NOW()
			WHERE guild_id = $1
		`
		_, err = tx.Exec(ctx, updateQuery,
			settings.GuildID,
			settings.Enabled,
			settings.VerificationChannelID,
			settings.LogChannelID,
			settings.VerifiedRoleID,
			settings.UnverifiedRoleID,
			settings.WelcomeMessage,
			string(settings.Method),
			settings.AutoKick,
			settings.AutoKickTimeoutMs,
			settings.VerificationMessageID,
		)
		if err != nil {
			return fmt.Errorf("failed to update verification settings for guild %d: %w", guildID, err)
		}

		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func insertDefaultVerificationSettings(ctx context.Context, q Queryable, guildID int64) error {
	defaults := entities.DefaultVerificationSettings(guildID)
	query := `
		INSERT INTO verification_settings (guild_id, enabled, welcome_message, verification_method, auto_kick, auto_kick_timeout_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (guild_id) DO NOTHING
	`
	_, err := q.Exec(ctx, query,
		defaults.GuildID,
		defaults.Enabled,
		defaults.WelcomeMessage,
		string(defaults.Method),
		defaults.AutoKick,
		defaults.AutoKickTimeoutMs,
	)
	if err != nil {
		return fmt.Errorf("failed to create verification settings for guild %d: %w", guildID, err)
	}
	return nil
}

func scanVerificationSettings(row pgx.Row) (*entities.VerificationSettings, error) {
	var settings entities.VerificationSettings
	var method string
	err := row.Scan(
		&settings.GuildID,
		&settings.Enabled,
		&settings.VerificationChannelID,
		&settings.LogChannelID,
		&settings.VerifiedRoleID,
		&settings.UnverifiedRoleID,
		&settings.WelcomeMessage,
		&method,
		&settings.AutoKick,
		&settings.AutoKickTimeoutMs,
		&settings.VerificationMessageID,
	)
	if err != nil {
		return nil, err
	}
	settings.Method = entities.VerificationMethod(method)
	return &settings, nil
}
