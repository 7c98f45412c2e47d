package repository

import (
	"github.com/ssorr707/discord-system-bot2/database"
	"github.com/ssorr707/discord-system-bot2/domain/interfaces"
)

// Store exposes the PostgreSQL-backed settings repositories over one connection pool
type Store struct {
	db           *database.DB
	verification *VerificationSettingsRepository
	welcome      *WelcomeSettingsRepository
}

// NewStore creates a settings store that owns db
func NewStore(db *database.DB) *Store {
	return &Store{
		db:           db,
		verification: NewVerificationSettingsRepository(db),
		welcome:      NewWelcomeSettingsRepository(db),
	}
}

func (s *Store) VerificationSettings() interfaces.VerificationSettingsRepository {
	return s.verification
}

func (s *Store) WelcomeSettings() interfaces.WelcomeSettingsRepository {
	return s.welcome
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
