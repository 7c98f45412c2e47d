package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ssorr707/discord-system-bot2/domain/entities"
	"github.com/ssorr707/discord-system-bot2/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationSettingsRepository_GetOrCreate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVerificationSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("defaults for unknown guild", func(t *testing.T) {
		settings, err := repo.GetOrCreate(ctx, 111)
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultVerificationSettings(111), settings)
	})

	t.Run("stored values returned", func(t *testing.T) {
		want := testutil.CreateTestVerificationSettings(222)
		_, err := repo.Update(ctx, 222, testutil.Overwrite(want))
		require.NoError(t, err)

		got, err := repo.GetOrCreate(ctx, 222)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestVerificationSettingsRepository_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVerificationSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		_, err := repo.Update(ctx, 333, testutil.Overwrite(testutil.CreateTestVerificationSettings(333)))
		require.NoError(t, err)

		message := "Press the button"
		got, err := repo.Update(ctx, 333, func(s *entities.VerificationSettings) error {
			entities.VerificationSettingsUpdate{WelcomeMessage: &message}.ApplyTo(s)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, message, got.WelcomeMessage)
		assert.True(t, got.Enabled)
		assert.Equal(t, entities.VerificationMethodButton, got.Method)
		require.NotNil(t, got.VerificationChannelID)
		assert.Equal(t, int64(1001), *got.VerificationChannelID)
	})

	t.Run("clearing a nullable ID", func(t *testing.T) {
		got, err := repo.Update(ctx, 333, func(s *entities.VerificationSettings) error {
			entities.VerificationSettingsUpdate{VerifiedRoleID: entities.ClearID()}.ApplyTo(s)
			return nil
		})
		require.NoError(t, err)
		assert.Nil(t, got.VerifiedRoleID)

		stored, err := repo.GetOrCreate(ctx, 333)
		require.NoError(t, err)
		assert.Nil(t, stored.VerifiedRoleID)
	})

	t.Run("mutate error writes nothing", func(t *testing.T) {
		before, err := repo.GetOrCreate(ctx, 333)
		require.NoError(t, err)

		boom := errors.New("rejected")
		_, err = repo.Update(ctx, 333, func(s *entities.VerificationSettings) error {
			s.Enabled = false
			s.WelcomeMessage = "should not persist"
			return boom
		})
		assert.ErrorIs(t, err, boom)

		after, err := repo.GetOrCreate(ctx, 333)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("guild ID cannot be changed by mutate", func(t *testing.T) {
		got, err := repo.Update(ctx, 444, func(s *entities.VerificationSettings) error {
			s.GuildID = 999
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(444), got.GuildID)
	})
}

func TestVerificationSettingsRepository_ConcurrentUpdates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewVerificationSettingsRepository(testDB.DB)
	ctx := context.Background()
	const guildID = int64(555)

	enabled := true
	autoKick := true
	message := "Concurrent hello"
	method := entities.VerificationMethodReaction
	timeout := entities.MinutesToMillis(90)

	updates := []entities.VerificationSettingsUpdate{
		{VerificationChannelID: entities.SetID(10), Enabled: &enabled},
		{LogChannelID: entities.SetID(20)},
		{VerifiedRoleID: entities.SetID(30)},
		{UnverifiedRoleID: entities.SetID(40)},
		{WelcomeMessage: &message},
		{Method: &method},
		{AutoKick: &autoKick},
		{AutoKickTimeoutMs: &timeout},
		{VerificationMessageID: entities.SetID(50)},
	}

	var wg sync.WaitGroup
	for _, update := range updates {
		wg.Add(1)
		go func(u entities.VerificationSettingsUpdate) {
			defer wg.Done()
			_, err := repo.Update(ctx, guildID, func(s *entities.VerificationSettings) error {
				u.ApplyTo(s)
				return nil
			})
			assert.NoError(t, err)
		}(update)
	}
	wg.Wait()

	got, err := repo.GetOrCreate(ctx, guildID)
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, int64(10), *got.VerificationChannelID)
	assert.Equal(t, int64(20), *got.LogChannelID)
	assert.Equal(t, int64(30), *got.VerifiedRoleID)
	assert.Equal(t, int64(40), *got.UnverifiedRoleID)
	assert.Equal(t, message, got.WelcomeMessage)
	assert.Equal(t, method, got.Method)
	assert.True(t, got.AutoKick)
	assert.Equal(t, timeout, got.AutoKickTimeoutMs)
	assert.Equal(t, int64(50), *got.VerificationMessageID)
}
