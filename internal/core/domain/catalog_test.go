package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFallbackProducts(t *testing.T) {
	products := DefaultFallbackProducts()

	require.Len(t, products, 8)
	assert.Equal(t, "m1", products[0].ID)
	assert.Equal(t, "Fresh Bananas (1 dozen)", products[0].Title)
	assert.Equal(t, "Sugar (1 kg)", products[7].Title)

	seen := make(map[string]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Positive(t, p.Price)
	}
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	entries := []CatalogEntry{
		{ID: "p1", Name: "Apple", Tags: []string{"fruit"}},
	}
	fallback := DefaultFallbackProducts()

	c := NewCatalog(entries, fallback)
	entries[0].Name = "Changed"
	entries[0].Tags[0] = "changed"
	fallback[0].Title = "Changed"

	assert.Equal(t, "Apple", c.Entries()[0].Name)
	assert.Equal(t, "fruit", c.Entries()[0].Tags[0])
	assert.Equal(t, "Fresh Bananas (1 dozen)", c.Fallback()[0].Title)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog

	assert.Nil(t, c.Entries())
	assert.Nil(t, c.Fallback())
	assert.Equal(t, 0, c.Len())
}

func TestProduct_CartName(t *testing.T) {
	raw := &CatalogEntry{ID: "p1", Name: "Organic Apples"}

	assert.Equal(t, "Organic Apples", Product{Title: "Apples", Raw: raw}.CartName())
	assert.Equal(t, "Sugar (1 kg)", Product{Title: "Sugar (1 kg)"}.CartName())
}
