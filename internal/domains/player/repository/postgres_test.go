package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-backend/internal/domains/player/model"
	"campaign-backend/internal/test"
)

func TestMain(m *testing.M) {
	test.Main(m)
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	pool := test.Pool(t)
	ctx := context.Background()
	repo := NewPostgresPlayerRepository(pool)

	first := &model.Player{TelegramID: 77, Bio: "first"}
	created, err := repo.GetOrCreateByTelegramID(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	second := &model.Player{TelegramID: 77, Bio: "second"}
	created, err = repo.GetOrCreateByTelegramID(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "first", second.Bio)
}

func TestGetOrCreateConcurrentSingleRow(t *testing.T) {
	pool := test.Pool(t)
	ctx := context.Background()
	repo := NewPostgresPlayerRepository(pool)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		seen    = make(map[int64]struct{})
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := &model.Player{TelegramID: 31337}
			ok, err := repo.GetOrCreateByTelegramID(ctx, p)
			assert.NoError(t, err)

			mu.Lock()
			defer mu.Unlock()
			seen[p.ID] = struct{}{}
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, seen, 1)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM players WHERE telegram_id = 31337`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetByTelegramIDPrefersLowestID(t *testing.T) {
	pool := test.Pool(t)
	ctx := context.Background()
	repo := NewPostgresPlayerRepository(pool)

	// rows written before the lock existed may share a telegram id
	older, err := test.InsertPlayer(ctx, pool, 900)
	require.NoError(t, err)
	_, err = test.InsertPlayer(ctx, pool, 900)
	require.NoError(t, err)

	p, err := repo.GetByTelegramID(ctx, 900)
	require.NoError(t, err)
	assert.Equal(t, older, p.ID)

	existing := &model.Player{TelegramID: 900}
	created, err := repo.GetOrCreateByTelegramID(ctx, existing)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, older, existing.ID)

	_, err = repo.GetByTelegramID(ctx, 901)
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
	_, err = repo.GetByID(ctx, older+100)
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}
