package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/internal/config"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/rdkit-go/pkg/errors"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient_Success(t *testing.T) {
	client, _ := newTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
	assert.NotNil(t, client.PoolStats())
}

func TestNewClient_ConnectionFailed(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewClient(config.RedisConfig{Addr: addr}, nil)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeServiceUnavailable))
}

func TestClient_Operations(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "foo", "bar", 0).Err())
	val, err := client.Get(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, "bar", val)
	assert.True(t, mr.Exists("foo"))

	n, err := client.Del(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, mr.Exists("foo"))
}

func TestClient_Close(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	assert.ErrorIs(t, client.Ping(ctx), ErrClientClosed)
	assert.ErrorIs(t, client.Get(ctx, "k").Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Set(ctx, "k", "v", 0).Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Del(ctx, "k").Err(), ErrClientClosed)
	assert.ErrorIs(t, client.Scan(ctx, 0, "*", 10).Err(), ErrClientClosed)
}

//Personal.AI order the ending
