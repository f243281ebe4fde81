package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webshop/backend/internal/domain/catalog"
	"github.com/webshop/backend/internal/domain/shared"
)

func TestGormCategoryRepository_Save(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	t.Run("creates a new category", func(t *testing.T) {
		category, err := catalog.NewRemoteCategory(42, "Coffee")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, category))

		found, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Coffee", found.Name)
		require.NotNil(t, found.RemoteID)
		assert.Equal(t, int64(42), *found.RemoteID)
	})

	t.Run("updates an existing category", func(t *testing.T) {
		category, err := catalog.NewCategory("Teas")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))

		require.NoError(t, category.Rename("Tea & Infusions"))
		require.NoError(t, repo.Save(ctx, category))

		found, err := repo.FindByID(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tea & Infusions", found.Name)
	})
}

func TestGormCategoryRepository_FindByRemoteID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	category, err := catalog.NewRemoteCategory(7, "Snacks")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	t.Run("finds by remote identifier", func(t *testing.T) {
		found, err := repo.FindByRemoteID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, category.ID, found.ID)
	})

	t.Run("returns ErrNotFound for unknown remote identifier", func(t *testing.T) {
		_, err := repo.FindByRemoteID(ctx, 404)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCategoryRepository_FindAll(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Snacks", "Coffee", "Merchandise"} {
		category, err := catalog.NewCategory(name)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, category))
	}

	categories, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Coffee", categories[0].Name)
	assert.Equal(t, "Merchandise", categories[1].Name)
	assert.Equal(t, "Snacks", categories[2].Name)
}

func TestGormCategoryRepository_Delete(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	category, err := catalog.NewCategory("Seasonal")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	t.Run("deletes an existing category", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, category.ID))

		_, err := repo.FindByID(ctx, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
