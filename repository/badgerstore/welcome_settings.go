package badgerstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ssorr707/discord-system-bot2/domain/entities"

	"github.com/dgraph-io/badger"
)

// WelcomeSettingsRepository stores welcome settings under welcome:<guild>
type WelcomeSettingsRepository struct {
	db    *badger.DB
	locks *keyLocks
}

func welcomeKey(guildID int64) []byte {
	return []byte("welcome:" + strconv.FormatInt(guildID, 10))
}

// GetOrCreate returns the guild's settings, persisting the defaults on first access
func (r *WelcomeSettingsRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.WelcomeSettings, error) {
	defaults := func() *entities.WelcomeSettings { return entities.DefaultWelcomeSettings(guildID) }

	settings, found, err := get(r.db, welcomeKey(guildID), defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to get welcome settings for guild %d: %w", guildID, err)
	}
	if found {
		normalizeWelcome(settings, guildID)
		return settings, nil
	}

	settings, err = update(ctx, r.db, r.locks, welcomeKey(guildID), defaults, func(*entities.WelcomeSettings) error { return nil })
	if err != nil {
		return nil, fmt.Errorf("failed to create welcome settings for guild %d: %w", guildID, err)
	}
	return settings, nil
}

// Update applies mutate to the guild's settings atomically
func (r *WelcomeSettingsRepository) Update(ctx context.Context, guildID int64, mutate func(*entities.WelcomeSettings) error) (*entities.WelcomeSettings, error) {
	defaults := func() *entities.WelcomeSettings { return entities.DefaultWelcomeSettings(guildID) }

	return update(ctx, r.db, r.locks, welcomeKey(guildID), defaults, func(s *entities.WelcomeSettings) error {
		if err := mutate(s); err != nil {
			return err
		}
		normalizeWelcome(s, guildID)
		return nil
	})
}

func normalizeWelcome(s *entities.WelcomeSettings, guildID int64) {
	s.GuildID = guildID
	if s.RoleIDs == nil {
		s.RoleIDs = []int64{}
	}
}
