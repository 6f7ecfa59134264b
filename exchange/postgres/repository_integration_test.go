//go:build integration

package postgres

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
Integration tests with PostgreSQL + Testcontainers.

A real PostgreSQL container is created per test, all SQL runs against
a real server, and the container is destroyed afterwards.

Execute with: go test -tags=integration ./exchange/postgres/...

REQUIREMENTS:
- Docker running locally
- Internet access to pull postgres:16-alpine (first time)
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

func TestPostgresRepository_StoreAndGet_Integration(t *testing.T) {
	t.Run("store then get roundtrip", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		ex := newStoredExchange(owner, 200, time.Now().UTC().Truncate(time.Microsecond))

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
		assert.Equal(t, 200, got.StatusCode)
		assert.False(t, got.Failed())
	})

	t.Run("get missing exchange returns ErrNotFound", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, exchange.ErrNotFound)
	})
}

func TestPostgresRepository_Retention_Integration(t *testing.T) {
	t.Run("keeps only the newest per owner", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

		for i := 0; i < 15; i++ {
			ex := newStoredExchange(owner, 200, base.Add(time.Duration(i)*time.Minute))
			ex.RequestBody = fmt.Sprintf(`{"sequence":%d}`, i)
			require.NoError(t, repo.Store(ctx, ex, 10))
		}

		count, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 10, count)

		// The survivors are the 10 most recent, newest first.
		exchanges, err := repo.ListByOwner(ctx, owner, 100)
		require.NoError(t, err)
		require.Len(t, exchanges, 10)
		assert.Equal(t, `{"sequence":14}`, exchanges[0].RequestBody)
		assert.Equal(t, `{"sequence":5}`, exchanges[9].RequestBody)
	})

	t.Run("retention is scoped per owner", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
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

func TestPostgresRepository_ListByOwner_Integration(t *testing.T) {
	t.Run("newest first within limit", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		base := time.Now().UTC().Add(-time.Hour)

		for i := 0; i < 5; i++ {
			ex := newStoredExchange(owner, 200+i, base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, repo.Store(ctx, ex, 10))
		}

		exchanges, err := repo.ListByOwner(ctx, owner, 3)
		require.NoError(t, err)
		require.Len(t, exchanges, 3)
		assert.Equal(t, 204, exchanges[0].StatusCode)
		assert.Equal(t, 203, exchanges[1].StatusCode)
		assert.Equal(t, 202, exchanges[2].StatusCode)
	})

	t.Run("empty owner yields empty list", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		exchanges, err := repo.ListByOwner(ctx, exchange.Owner{Kind: "integration", ID: uuid.NewString()}, 10)
		require.NoError(t, err)
		assert.Empty(t, exchanges)
	})
}

func TestPostgresRepository_DeleteByOwner_Integration(t *testing.T) {
	t.Run("removes every exchange of the owner", func(t *testing.T) {
		ctx := context.Background()

		pgContainer, cleanup := SetupPostgresContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, ctx, pgContainer.ConnStr)
		defer repo.Close(ctx)

		owner := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		other := exchange.Owner{Kind: "integration", ID: uuid.NewString()}
		now := time.Now().UTC()

		for i := 0; i < 4; i++ {
			require.NoError(t, repo.Store(ctx, newStoredExchange(owner, 200, now), 10))
		}
		require.NoError(t, repo.Store(ctx, newStoredExchange(other, 200, now), 10))

		err := repo.DeleteByOwner(ctx, owner)
		require.NoError(t, err)

		count, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Zero(t, count)

		AssertExchangeCount(t, ctx, pgContainer.DB, 1)
	})
}
