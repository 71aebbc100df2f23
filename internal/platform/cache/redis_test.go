package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	require.True(t, mr.Exists("k"))
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), addr)
	require.Error(t, err)
}

func TestOptionsParsesURL(t *testing.T) {
	opts, err := Options("redis://:secret@cache.local:6380/2")
	require.NoError(t, err)
	require.Equal(t, "cache.local:6380", opts.Addr)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)

	opts, err = Options("127.0.0.1:6379")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6379", opts.Addr)

	_, err = Options("redis://cache.local:6379/not-a-db")
	require.Error(t, err)
}
