package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatCache_GetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db)

	seats := []domain.SeatAvailability{{SeatID: 12, SeatCode: "A1", SeatType: "Standard", Taken: true}}
	raw, err := json.Marshal(seats)
	require.NoError(t, err)

	mock.ExpectGet("seats:5").SetVal(string(raw))

	got, ok := cache.Get(context.Background(), 5)

	assert.True(t, ok)
	assert.Equal(t, seats, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db)

	mock.ExpectGet("seats:5").RedisNil()

	_, ok := cache.Get(context.Background(), 5)

	assert.False(t, ok)
}

func TestSeatCache_GetCorruptEntry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db)

	mock.ExpectGet("seats:5").SetVal("{not json")

	_, ok := cache.Get(context.Background(), 5)

	assert.False(t, ok)
}

func TestSeatCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db)

	seats := []domain.SeatAvailability{{SeatID: 12, SeatCode: "A1"}}
	raw, err := json.Marshal(seats)
	require.NoError(t, err)

	mock.ExpectSet("seats:5", raw, 30*time.Second).SetVal("OK")

	assert.NoError(t, cache.Set(context.Background(), 5, seats))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db)

	mock.ExpectDel("seats:5").SetVal(1)

	assert.NoError(t, cache.Invalidate(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplayGuard_FirstSighting(t *testing.T) {
	db, mock := redismock.NewClientMock()
	guard := NewReplayGuard(db)

	mock.ExpectSetNX("gateway:txn:abc-123", 1, 24*time.Hour).SetVal(true)

	first, err := guard.FirstSeen(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.True(t, first)
}

func TestReplayGuard_Replay(t *testing.T) {
	db, mock := redismock.NewClientMock()
	guard := NewReplayGuard(db)

	mock.ExpectSetNX("gateway:txn:abc-123", 1, 24*time.Hour).SetVal(false)

	first, err := guard.FirstSeen(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.False(t, first)
}

func TestReplayGuard_FailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	guard := NewReplayGuard(db)

	mock.ExpectSetNX("gateway:txn:abc-123", 1, 24*time.Hour).SetErr(assert.AnError)

	first, err := guard.FirstSeen(context.Background(), "abc-123")

	require.NoError(t, err)
	assert.True(t, first)
}
