package cache

import (
	"context"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeatMapCache keeps the JSON seat map of a session in Redis so that the
// heavily polled seat endpoint does not hit Postgres on every request.
// A nil cache (no Redis configured or unreachable) disables caching; every
// method degrades to a no-op.
type SeatMapCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis and returns the cache, or nil when the address is
// empty or the server cannot be reached. Callers keep working without it.
func New(config utils.RedisConfig, log *zap.Logger) *SeatMapCache {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, seat map cache disabled", zap.Error(err))
		return nil
	}

	ttl := time.Duration(config.CacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	log.Info("Seat map cache enabled",
		zap.String("addr", config.Addr),
		zap.Duration("ttl", ttl))

	return &SeatMapCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "seat_map")),
	}
}

func seatMapKey(sessionID uuid.UUID) string {
	return "seatmap:" + sessionID.String()
}

// Get returns the cached seat map payload, or false on miss or any error.
func (c *SeatMapCache) Get(ctx context.Context, sessionID uuid.UUID) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, seatMapKey(sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}

	return payload, true
}

// Set stores the seat map payload for the configured TTL. Best effort.
func (c *SeatMapCache) Set(ctx context.Context, sessionID uuid.UUID, payload []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, seatMapKey(sessionID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached seat map. Called after every booking mutation
// so stale availability is never served longer than one round trip.
func (c *SeatMapCache) Invalidate(ctx context.Context, sessionID uuid.UUID) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, seatMapKey(sessionID)).Err(); err != nil {
		c.log.Warn("Cache invalidate failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *SeatMapCache) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
