package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsAcceptsURL(t *testing.T) {
	opts, err := Options("redis://:pw@cache.local:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache.local:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = Options("127.0.0.1:6379")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	_, err = Options(" ")
	assert.Error(t, err)
}

func TestConnectPings(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client, err := Connect(context.Background(), addr)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = Connect(context.Background(), addr)
	assert.Error(t, err)
}
