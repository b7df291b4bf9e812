package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogOrderAndLookup(t *testing.T) {
	c := Default()

	products := c.Products()
	require.NotEmpty(t, products)

	// served in insertion order
	for i := 1; i < len(products); i++ {
		assert.Less(t, products[i-1].ID, products[i].ID)
	}

	p, err := c.Product(products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0], p)
}

func TestProductNotFound(t *testing.T) {
	c := Default()

	_, err := c.Product(99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductsReturnsCopy(t *testing.T) {
	c := Default()

	first := c.Products()
	first[0].Name = "mutated"

	again := c.Products()
	assert.NotEqual(t, "mutated", again[0].Name)
}
