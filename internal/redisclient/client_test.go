package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartPayloadRoundTrip(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	client, err := NewClient("localhost:6379", "", 0, time.Hour)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()

	_, ok, err := client.Load(ctx, "cart-it-1")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := `[{"product_id":1,"quantity":2}]`
	require.NoError(t, client.Save(ctx, "cart-it-1", payload))

	loaded, ok, err := client.Load(ctx, "cart-it-1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, loaded)

	require.NoError(t, client.Remove(ctx, "cart-it-1"))
	_, ok, err = client.Load(ctx, "cart-it-1")
	assert.NoError(t, err)
	assert.False(t, ok)
}
