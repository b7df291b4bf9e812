package catalog

import (
	"errors"

	"cart-service/internal/models"
)

// ErrProductNotFound is returned when a product ID is not in the catalog
var ErrProductNotFound = errors.New("product not found")

// Catalog is the static, read-only product list. The full list is served
// in insertion order; filtering and sorting happen on the client.
type Catalog struct {
	products []models.Product
	byID     map[int64]models.Product
}

// New creates a catalog from a fixed product list
func New(products []models.Product) *Catalog {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Default returns the catalog seeded with the festival product range
func Default() *Catalog {
	return New(defaultProducts)
}

// Products returns the full ordered product list
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a single product by ID
func (c *Catalog) Product(id int64) (models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

var defaultProducts = []models.Product{
	{
		ID:          1,
		Name:        "Diwali Diya Set",
		Price:       1299,
		Category:    "Decor",
		Rating:      4.8,
		Image:       "/images/diya-set.jpg",
		Images:      []string{"/images/diya-set.jpg", "/images/diya-set-2.jpg"},
		Tags:        []string{"diya", "handmade", "festive"},
		InStock:     true,
		Description: "Set of 12 hand-painted clay diyas with cotton wicks.",
	},
	{
		ID:          2,
		Name:        "Marigold Toran",
		Price:       499,
		Category:    "Decor",
		Rating:      4.5,
		Image:       "/images/marigold-toran.jpg",
		Tags:        []string{"toran", "doorway"},
		InStock:     true,
		Description: "Artificial marigold and mango-leaf door hanging.",
	},
	{
		ID:          3,
		Name:        "Silk Saree",
		Price:       4599,
		Category:    "Clothing",
		Rating:      4.9,
		Image:       "/images/silk-saree.jpg",
		Images:      []string{"/images/silk-saree.jpg", "/images/silk-saree-2.jpg"},
		Tags:        []string{"silk", "traditional"},
		InStock:     true,
		Description: "Banarasi silk saree with zari border.",
	},
	{
		ID:          4,
		Name:        "Rangoli Colour Kit",
		Price:       349,
		Category:    "Decor",
		Rating:      4.3,
		Image:       "/images/rangoli-kit.jpg",
		Tags:        []string{"rangoli", "colours"},
		InStock:     true,
		Description: "Ten vibrant rangoli powders with stencils.",
	},
	{
		ID:          5,
		Name:        "Pooja Thali Set",
		Price:       2499,
		Category:    "Pooja",
		Rating:      4.7,
		Image:       "/images/pooja-thali.jpg",
		Tags:        []string{"pooja", "brass"},
		InStock:     true,
		Description: "Engraved brass thali with bell, diya and incense holder.",
	},
	{
		ID:          6,
		Name:        "Dry Fruit Gift Box",
		Price:       1899,
		Category:    "Gifts",
		Rating:      4.6,
		Image:       "/images/dry-fruit-box.jpg",
		Tags:        []string{"gift", "dry-fruits"},
		InStock:     true,
		Description: "Assorted almonds, cashews and pistachios in a festive box.",
	},
	{
		ID:          7,
		Name:        "Kaju Katli Hamper",
		Price:       899,
		Category:    "Sweets",
		Rating:      4.4,
		Image:       "/images/kaju-katli.jpg",
		Tags:        []string{"sweets", "gift"},
		InStock:     true,
		Description: "Half kilogram of fresh kaju katli with silver leaf.",
	},
	{
		ID:          8,
		Name:        "Men's Festive Kurta",
		Price:       1599,
		Category:    "Clothing",
		Rating:      4.2,
		Image:       "/images/festive-kurta.jpg",
		Tags:        []string{"kurta", "cotton"},
		InStock:     true,
		Description: "Cotton-silk kurta with churidar in royal blue.",
	},
	{
		ID:          9,
		Name:        "Decorative Lantern",
		Price:       749,
		Category:    "Decor",
		Rating:      4.1,
		Image:       "/images/lantern.jpg",
		Tags:        []string{"lantern", "lights"},
		InStock:     false,
		Description: "Metal cut-work lantern for tealight candles.",
	},
	{
		ID:          10,
		Name:        "Scented Candle Trio",
		Price:       649,
		Category:    "Gifts",
		Rating:      4.0,
		Image:       "/images/candle-trio.jpg",
		Tags:        []string{"candles", "gift"},
		InStock:     true,
		Description: "Sandalwood, rose and jasmine soy candles.",
	},
}
