package badgerstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/dgraph-io/badger"
)

// VerificationSettingsRepository stores verification settings under verification:<guild>
type VerificationSettingsRepository struct {
	db    *badger.DB
	locks *keyLocks
}

func verificationKey(guildID int64) []byte {
	return []byte("verification:" + strconv.FormatInt(guildID, 10))
}

// GetOrCreate returns the guild's settings, persisting the defaults on first access
func (r *VerificationSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.VerificationSettings, error) {
	defaults := func() *entities.VerificationSettings { return entities.DefaultVerificationSettings(guildID) }

	settings, found, err := get(r.db, verificationKey(guildID), defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification settings for guild %d: %w", guildID, err)
	}
	if found {
		settings.GuildID = guildID
		return settings, nil
	}

	settings, err = update(ctx, r.db, r.locks, verificationKey(guildID), defaults, func(*entities.VerificationSettings) error { return nil })
	if err != nil {
		return nil, fmt.Errorf("failed to create verification settings for guild %d: %w", guildID, err)
	}
	return settings, nil
}

// Update applies mutate to the guild's settings atomically
func (r *VerificationSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.VerificationSettings) error) (*entities.VerificationSettings, error) {
	defaults := func() *entities.VerificationSettings { return entities.DefaultVerificationSettings(guildID) }

	return update(ctx, r.db, r.locks, verificationKey(guildID), defaults, func(s *entities.VerificationSettings) error {
		if err := mutate(s); err != nil {
			return err
		}
		s.GuildID = guildID
		return nil
	})
}
