package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct("Arabica Beans 500g", 125000)

		require.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "Arabica Beans 500g", product.Title)
		assert.Equal(t, int64(125000), product.Price)
		assert.True(t, product.Active)
		assert.NotZero(t, product.ID)
		assert.Nil(t, product.RemoteID)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		product, err := NewProduct("", 1000)

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with whitespace-only title", func(t *testing.T) {
		product, err := NewProduct("   ", 1000)

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with title over 200 characters", func(t *testing.T) {
		product, err := NewProduct(strings.Repeat("x", 201), 1000)

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		product, err := NewProduct("Discounted Item", -1)

		assert.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("allows zero price", func(t *testing.T) {
		product, err := NewProduct("Free Sample", 0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), product.Price)
	})
}

func TestProductUpdate(t *testing.T) {
	t.Run("updates attributes and bumps timestamp", func(t *testing.T) {
		product, err := NewProduct("Original", 1000)
		require.NoError(t, err)
		originalUpdatedAt := product.UpdatedAt

		err = product.Update("Renamed", 2000, 7, "restocked")
		require.NoError(t, err)

		assert.Equal(t, "Renamed", product.Title)
		assert.Equal(t, int64(2000), product.Price)
		assert.Equal(t, 7, product.Quantity)
		assert.Equal(t, "restocked", product.Description)
		assert.False(t, product.UpdatedAt.Before(originalUpdatedAt))
	})

	t.Run("rejects invalid title", func(t *testing.T) {
		product, err := NewProduct("Original", 1000)
		require.NoError(t, err)

		err = product.Update("", 2000, 1, "")
		assert.Error(t, err)
		assert.Equal(t, "Original", product.Title)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		product, err := NewProduct("Original", 1000)
		require.NoError(t, err)

		err = product.Update("Renamed", -5, 1, "")
		assert.Error(t, err)
		assert.Equal(t, int64(1000), product.Price)
	})
}

func TestProductImages(t *testing.T) {
	t.Run("round-trips image URLs as JSON", func(t *testing.T) {
		product, err := NewProduct("With Images", 1000)
		require.NoError(t, err)

		urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
		product.SetImages(urls)

		assert.Equal(t, urls, product.GetImages())
	})

	t.Run("empty list stores empty JSON array", func(t *testing.T) {
		product, err := NewProduct("No Images", 1000)
		require.NoError(t, err)

		product.SetImages(nil)

		assert.Equal(t, "[]", product.ImagesURL)
		assert.Empty(t, product.GetImages())
	})

	t.Run("malformed stored value decodes to nil", func(t *testing.T) {
		product, err := NewProduct("Broken", 1000)
		require.NoError(t, err)
		product.ImagesURL = "{not json"

		assert.Nil(t, product.GetImages())
	})
}
