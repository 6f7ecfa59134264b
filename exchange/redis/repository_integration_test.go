//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookledger/hookledger/exchange"
)

/*
Integration tests with Redis + Testcontainers.

A real Redis container is created per test. The repository keeps one
hash per exchange plus a per-owner sorted set scored by creation time,
so these tests also assert that trimmed entries drop BOTH structures.

REQUIREMENTS:
- Docker running locally
- Internet access to pull redis:7-alpine (first time)
*/

func newStoredExchange(owner exchange.Owner, status int, at time.Time) exchange.Exchange {
	return exchange.Exchange{
		ID:              uuid.New(),
		Owner:           owner,
		CreatedAt:       at,
		RequestHeaders:  map[string]string{"Content-Type": "application/json", "X-Github-Event": "push"},
		RequestBody:     `{"ref":"refs/heads/main"}`,
		ResponseHeaders: map[string]string{"Content-Type": "application/json"},
		ResponseBody:    `{"detail":"ok"}`,
		StatusCode:      status,
	}
}

func TestRedisRepository_StoreAndGet_Integration(t *testing.T) {
	t.Run("store then get roundtrip", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		ex := newStoredExchange(owner, 200, time.Now().UTC())

		err := repo.Store(ctx, ex, 10)
		require.NoError(t, err)

		got, err := repo.Get(ctx, ex.ID)
		require.NoError(t, err)
		assert.Equal(t, ex.ID, got.ID)
		assert.Equal(t, ex.Owner, got.Owner)
		assert.Equal(t, ex.RequestHeaders, got.RequestHeaders)
		assert.Equal(t, ex.RequestBody, got.RequestBody)
		assert.Equal(t, ex.ResponseHeaders, got.ResponseHeaders)
		assert.Equal(t, ex.ResponseBody, got.ResponseBody)
		assert.Equal(t, ex.CreatedAt.UnixNano(), got.CreatedAt.UnixNano())
		assert.False(t, got.Failed())
	})

	t.Run("get missing exchange returns ErrNotFound", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, exchange.ErrNotFound)
	})
}

func TestRedisRepository_Retention_Integration(t *testing.T) {
	t.Run("trim converges to the keep newest records", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		base := time.Now().UTC().Add(-time.Hour)

		trimmed := make([]uuid.UUID, 0, 5)
		for i := 0; i < 15; i++ {
			ex := newStoredExchange(owner, 200, base.Add(time.Duration(i)*time.Minute))
			ex.RequestBody = fmt.Sprintf(`{"sequence":%d}`, i)
			require.NoError(t, repo.Store(ctx, ex, 10))
			if i < 5 {
				trimmed = append(trimmed, ex.ID)
			}
		}

		count, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 10, count)

		exchanges, err := repo.ListByOwner(ctx, owner, 100)
		require.NoError(t, err)
		require.Len(t, exchanges, 10)
		assert.Equal(t, `{"sequence":14}`, exchanges[0].RequestBody)
		assert.Equal(t, `{"sequence":5}`, exchanges[9].RequestBody)

		// Trimmed hashes are gone, not only their index entries.
		for _, id := range trimmed {
			assert.False(t, KeyExists(t, rc.Addr, fmt.Sprintf("exchange:%s", id)))
		}
	})

	t.Run("concurrent stores leave no orphaned hashes", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		base := time.Now().UTC().Add(-time.Hour)

		// Writers racing on the same owner: every index entry the trim
		// removes must take its hash with it.
		numWriters := 4
		storesPerWriter := 10
		done := make(chan error, numWriters)
		for w := 0; w < numWriters; w++ {
			go func(w int) {
				for i := 0; i < storesPerWriter; i++ {
					at := base.Add(time.Duration(w*storesPerWriter+i) * time.Second)
					if err := repo.Store(ctx, newStoredExchange(owner, 200, at), 10); err != nil {
						done <- err
						return
					}
				}
				done <- nil
			}(w)
		}
		for w := 0; w < numWriters; w++ {
			require.NoError(t, <-done)
		}

		count, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 10, count)

		// One hash per surviving index entry, nothing dangling.
		assert.Equal(t, 10, CountKeys(t, rc.Addr, "exchange:*"))
	})

	t.Run("retention is scoped per owner", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		first := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		second := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		base := time.Now().UTC().Add(-time.Hour)

		for i := 0; i < 12; i++ {
			require.NoError(t, repo.Store(ctx, newStoredExchange(first, 200, base.Add(time.Duration(i)*time.Minute)), 10))
		}
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Store(ctx, newStoredExchange(second, 200, base.Add(time.Duration(i)*time.Minute)), 10))
		}

		firstCount, err := repo.CountByOwner(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, 10, firstCount)

		secondCount, err := repo.CountByOwner(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, 3, secondCount)
	})
}

func TestRedisRepository_DeleteByOwner_Integration(t *testing.T) {
	t.Run("removes hashes and the owner index", func(t *testing.T) {
		ctx := context.Background()

		rc, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, rc.Addr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		now := time.Now().UTC()

		stored := make([]uuid.UUID, 0, 4)
		for i := 0; i < 4; i++ {
			ex := newStoredExchange(owner, 200, now.Add(time.Duration(i)*time.Second))
			require.NoError(t, repo.Store(ctx, ex, 10))
			stored = append(stored, ex.ID)
		}

		err := repo.DeleteByOwner(ctx, owner)
		require.NoError(t, err)

		count, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Zero(t, count)

		for _, id := range stored {
			assert.False(t, KeyExists(t, rc.Addr, fmt.Sprintf("exchange:%s", id)))
		}
		assert.False(t, KeyExists(t, rc.Addr, fmt.Sprintf("exchanges:%s:%s", owner.Kind, owner.ID)))
	})
}
