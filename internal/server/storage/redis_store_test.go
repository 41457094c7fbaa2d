package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_SaveLoadDeleteRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	roomData := &RoomData{
		Code:        "1234",
		Players:     []PlayerData{{Name: "Ann", Icon: "cat"}, {Name: "Bo"}},
		Round:       1,
		HostName:    "Ann",
		Order:       []string{"Bo", "Ann"},
		PlayerCount: 2,
		CreatedAt:   time.Now().Unix(),
	}

	require.NoError(t, store.SaveRoom(ctx, roomData.Code, roomData))
	assert.True(t, mr.Exists("room:1234"))
	assert.Equal(t, roomExpiration, mr.TTL("room:1234"))

	loaded, err := store.LoadRoom(ctx, roomData.Code)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, roomData.Code, loaded.Code)
	assert.Equal(t, roomData.Players, loaded.Players)
	assert.Equal(t, roomData.Order, loaded.Order)
	assert.Equal(t, "Ann", loaded.HostName)

	require.NoError(t, store.DeleteRoom(ctx, roomData.Code))

	loaded, err = store.LoadRoom(ctx, roomData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNilIsNoop(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	require.NoError(t, store.SaveRoom(context.Background(), "1234", nil))
	assert.False(t, mr.Exists("room:1234"))
}

func TestRedisStore_GetAllRoomCodes(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	for _, code := range []string{"1111", "2222", "3333"} {
		require.NoError(t, store.SaveRoom(ctx, code, &RoomData{Code: code}))
	}
	require.NoError(t, store.IncrCounter(ctx, CounterRoomsCreated))

	codes, err := store.GetAllRoomCodes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1111", "2222", "3333"}, codes)
}

func TestRedisStore_ClearRooms(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	for _, code := range []string{"1111", "2222"} {
		require.NoError(t, store.SaveRoom(ctx, code, &RoomData{Code: code}))
	}
	require.NoError(t, store.IncrCounter(ctx, CounterRoomsCreated))

	n, err := store.ClearRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("room:1111"))
	assert.True(t, mr.Exists("stats:"+CounterRoomsCreated))
}

func TestRedisStore_Counters(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.IncrCounter(ctx, CounterRoomsCreated))
	require.NoError(t, store.IncrCounter(ctx, CounterRoomsCreated))
	require.NoError(t, store.IncrCounter(ctx, CounterRoundsStarted))

	counters, err := store.GetCounters(ctx, CounterRoomsCreated, CounterRoundsStarted, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters[CounterRoomsCreated])
	assert.Equal(t, int64(1), counters[CounterRoundsStarted])
	assert.Equal(t, int64(0), counters["missing"])
}

func TestRedisStore_Disabled(t *testing.T) {
	t.Parallel()

	store := NewRedisStore(nil)
	ctx := context.Background()

	assert.False(t, store.Enabled())
	assert.NoError(t, store.SaveRoom(ctx, "1234", &RoomData{}))
	assert.NoError(t, store.DeleteRoom(ctx, "1234"))
	assert.NoError(t, store.IncrCounter(ctx, CounterRoomsCreated))
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())

	loaded, err := store.LoadRoom(ctx, "1234")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	counters, err := store.GetCounters(ctx, CounterRoomsCreated)
	assert.NoError(t, err)
	assert.Empty(t, counters)

	var nilStore *RedisStore
	assert.False(t, nilStore.Enabled())
}
