// Package cache holds the Redis-backed read cache and the gateway replay
// guard. Both degrade gracefully: a dead Redis slows the system down but
// never blocks a sale.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const (
	seatKeyFormat = "seats:%d"
	seatTTL       = 30 * time.Second

	txnKeyFormat = "gateway:txn:%s"
	txnTTL       = 24 * time.Hour
)

func NewClient(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}

// SeatCache keeps per-event seat maps hot for the burst of reads around an
// on-sale. Misses and Redis errors both read as "not cached".
type SeatCache struct {
	client *redis.Client
}

func NewSeatCache(client *redis.Client) *SeatCache {
	return &SeatCache{client: client}
}

func (c *SeatCache) Get(ctx context.Context, eventID int64) ([]domain.SeatAvailability, bool) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(seatKeyFormat, eventID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("seat cache read failed for event %d: %v", eventID, err)
		}
		return nil, false
	}

	var seats []domain.SeatAvailability
	if err := json.Unmarshal([]byte(raw), &seats); err != nil {
		log.Printf("seat cache entry for event %d is corrupt, dropping: %v", eventID, err)
		return nil, false
	}

	return seats, true
}

func (c *SeatCache) Set(ctx context.Context, eventID int64, seats []domain.SeatAvailability) error {
	raw, err := json.Marshal(seats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, fmt.Sprintf(seatKeyFormat, eventID), raw, seatTTL).Err()
}

func (c *SeatCache) Invalidate(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, fmt.Sprintf(seatKeyFormat, eventID)).Err()
}

// ReplayGuard remembers gateway transaction references with SET NX. It fails
// open: if Redis is unreachable the callback proceeds, and the settlement
// transaction's own guards catch any actual double-spend.
type ReplayGuard struct {
	client *redis.Client
}

func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client}
}

func (g *ReplayGuard) FirstSeen(ctx context.Context, ref string) (bool, error) {
	first, err := g.client.SetNX(ctx, fmt.Sprintf(txnKeyFormat, ref), 1, txnTTL).Result()
	if err != nil {
		log.Printf("replay guard unavailable for ref %s, allowing callback: %v", ref, err)
		return true, nil
	}

	return first, nil
}
