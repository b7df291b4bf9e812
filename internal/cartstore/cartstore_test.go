package cartstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "cart-1", `[{"product_id":1,"quantity":2}]`))

	payload, ok, err := s.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"product_id":1,"quantity":2}]`, payload)

	require.NoError(t, s.Remove(ctx, "cart-1"))

	_, ok, err = s.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// removing an absent key is not an error
	assert.NoError(t, s.Remove(ctx, "cart-1"))
}
