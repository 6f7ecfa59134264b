package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hookledger/hookledger/exchange"
)

/* Redis implementation of exchange.Repository
 * Uses a Hash per exchange for the record itself and a per-owner sorted set
 * scored by creation time for ordering. The retention trim runs as a second
 * pipeline after the insert, so under concurrent writers it is best-effort:
 * the owner's history converges to the keep newest records.
 */

const (
	hashPrefix  = "exchange"  // Hash naming: exchange:{exchange_id}
	indexPrefix = "exchanges" // Sorted set naming: exchanges:{owner_kind}:{owner_id}
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		client: client,
	}, nil
}

// Store persists the exchange and trims the owner's history to keep records
func (r *Repository) Store(ctx context.Context, ex exchange.Exchange, keep int) error {
	requestHeaders, err := json.Marshal(ex.RequestHeaders)
	if err != nil {
		return fmt.Errorf("marshaling request headers: %w", err)
	}
	responseHeaders, err := json.Marshal(ex.ResponseHeaders)
	if err != nil {
		return fmt.Errorf("marshaling response headers: %w", err)
	}

	hashKey := fmt.Sprintf("%s:%s", hashPrefix, ex.ID)
	indexKey := ownerKey(ex.Owner)

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, map[string]interface{}{
			"id":               ex.ID.String(),
			"owner_kind":       ex.Owner.Kind,
			"owner_id":         ex.Owner.ID,
			"created_at":       ex.CreatedAt.UnixNano(),
			"request_headers":  string(requestHeaders),
			"request_body":     ex.RequestBody,
			"response_headers": string(responseHeaders),
			"response_body":    ex.ResponseBody,
			"status_code":      ex.StatusCode,
		})
		pipe.ZAdd(ctx, indexKey, redis.Z{
			Score:  float64(ex.CreatedAt.UnixNano()),
			Member: ex.ID.String(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing exchange: %w", err)
	}

	return r.trim(ctx, indexKey, keep)
}

/* trimScript removes every owner record beyond the keep newest ones.
 * Reading the excess ids and deleting their hashes must happen in one atomic
 * step: a concurrent Store between a separate read and delete would shift
 * ranks and drop index entries whose hashes were never deleted, leaking
 * hashes with no TTL.
 */
var trimScript = redis.NewScript(`
local excess = redis.call("ZRANGE", KEYS[1], 0, -(tonumber(ARGV[1]) + 1))
if #excess == 0 then
	return 0
end
for _, id in ipairs(excess) do
	redis.call("DEL", ARGV[2] .. ":" .. id)
end
redis.call("ZREMRANGEBYRANK", KEYS[1], 0, -(tonumber(ARGV[1]) + 1))
return #excess
`)

// trim removes every owner record beyond the keep newest ones
func (r *Repository) trim(ctx context.Context, indexKey string, keep int) error {
	if err := trimScript.Run(ctx, r.client, []string{indexKey}, keep, hashPrefix).Err(); err != nil {
		return fmt.Errorf("trimming exchanges: %w", err)
	}
	return nil
}

// Get retrieves an exchange by ID from its Redis hash
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (exchange.Exchange, error) {
	hashKey := fmt.Sprintf("%s:%s", hashPrefix, id)

	data, err := r.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return exchange.Exchange{}, fmt.Errorf("getting exchange: %w", err)
	}
	if len(data) == 0 {
		return exchange.Exchange{}, exchange.ErrNotFound
	}

	return parseExchange(data)
}

// ListByOwner returns the owner's exchanges ordered newest first
func (r *Repository) ListByOwner(ctx context.Context, owner exchange.Owner, limit int) ([]exchange.Exchange, error) {
	ids, err := r.client.ZRevRange(ctx, ownerKey(owner), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing exchange ids: %w", err)
	}

	exchanges := make([]exchange.Exchange, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ex, err := r.Get(ctx, id)
		if err != nil {
			// Hash expired between the index read and the lookup
			continue
		}
		exchanges = append(exchanges, ex)
	}

	return exchanges, nil
}

// CountByOwner returns the number of exchanges attached to the owner
func (r *Repository) CountByOwner(ctx context.Context, owner exchange.Owner) (int, error) {
	count, err := r.client.ZCard(ctx, ownerKey(owner)).Result()
	if err != nil {
		return 0, fmt.Errorf("counting exchanges: %w", err)
	}
	return int(count), nil
}

// DeleteByOwner removes every exchange attached to the owner
func (r *Repository) DeleteByOwner(ctx context.Context, owner exchange.Owner) error {
	indexKey := ownerKey(owner)

	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("listing exchange ids: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Del(ctx, fmt.Sprintf("%s:%s", hashPrefix, id))
		}
		pipe.Del(ctx, indexKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting exchanges: %w", err)
	}

	return nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// Helper functions

func ownerKey(owner exchange.Owner) string {
	return fmt.Sprintf("%s:%s:%s", indexPrefix, owner.Kind, owner.ID)
}

func parseExchange(data map[string]string) (exchange.Exchange, error) {
	id, err := uuid.Parse(data["id"])
	if err != nil {
		return exchange.Exchange{}, fmt.Errorf("parsing exchange id: %w", err)
	}

	requestHeaders := make(map[string]string)
	if raw := data["request_headers"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &requestHeaders); err != nil {
			return exchange.Exchange{}, fmt.Errorf("unmarshaling request headers: %w", err)
		}
	}
	responseHeaders := make(map[string]string)
	if raw := data["response_headers"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &responseHeaders); err != nil {
			return exchange.Exchange{}, fmt.Errorf("unmarshaling response headers: %w", err)
		}
	}

	return exchange.Exchange{
		ID: id,
		Owner: exchange.Owner{
			Kind: data["owner_kind"],
			ID:   data["owner_id"],
		},
		CreatedAt:       time.Unix(0, parseInt64(data["created_at"])),
		RequestHeaders:  requestHeaders,
		RequestBody:     data["request_body"],
		ResponseHeaders: responseHeaders,
		ResponseBody:    data["response_body"],
		StatusCode:      int(parseInt64(data["status_code"])),
	}, nil
}

func parseInt64(s string) int64 {
	result, _ := strconv.ParseInt(s, 10, 64)
	return result
}
