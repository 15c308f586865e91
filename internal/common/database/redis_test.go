package database

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClientRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectPing().SetVal("PONG")
	mock.ExpectSet("gsc:sa:site:2026-05-01:2026-08-01", "payload", time.Hour).SetVal("OK")
	mock.ExpectGet("gsc:sa:site:2026-05-01:2026-08-01").SetVal("payload")
	mock.ExpectDel("gsc:sa:site:2026-05-01:2026-08-01").SetVal(1)

	require.NoError(t, client.Ping(t.Context()))
	require.NoError(t, client.Set(t.Context(), "gsc:sa:site:2026-05-01:2026-08-01", "payload", time.Hour))

	val, err := client.Get(t.Context(), "gsc:sa:site:2026-05-01:2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, "payload", val)

	require.NoError(t, client.Del(t.Context(), "gsc:sa:site:2026-05-01:2026-08-01"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClientGetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectGet("missing").RedisNil()

	_, err := client.Get(t.Context(), "missing")
	assert.ErrorIs(t, err, redis.Nil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClientPingFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectPing().SetErr(assert.AnError)

	err := client.Ping(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}
