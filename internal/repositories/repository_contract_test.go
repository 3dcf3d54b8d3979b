package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func newProduct(title string, price, rating float64) *models.Product {
	return &models.Product{
		Title:       title,
		Price:       price,
		Rating:      rating,
		Description: "this is great phone",
		Phone:       "01-1234567890",
	}
}

// runProductRepositoryTests exercises behaviour every ProductRepository must share.
// newRepo returns an empty repository; missingID is a well-formed id that is never stored.
func runProductRepositoryTests(t *testing.T, newRepo func(t *testing.T) repositories.ProductRepository, missingID string) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndCreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		before := time.Now().Add(-time.Second)

		a := newProduct("iPhone", 300, 4.5)
		b := newProduct("Samsung", 200, 4)
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		assert.NotEmpty(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)
		assert.True(t, a.CreatedAt.After(before))

		fetched, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, fetched.ID)
		assert.Equal(t, "iPhone", fetched.Title)
		assert.Equal(t, 300.0, fetched.Price)
		assert.Equal(t, 4.5, fetched.Rating)
		assert.Equal(t, a.Description, fetched.Description)
		assert.Equal(t, a.Phone, fetched.Phone)
		assert.True(t, a.CreatedAt.Equal(fetched.CreatedAt))
	})

	t.Run("GetAllWithoutFilterReturnsEverything", func(t *testing.T) {
		repo := newRepo(t)
		for _, p := range []*models.Product{
			newProduct("iPhone", 300, 4.5),
			newProduct("Samsung", 50, 2),
			newProduct("Redmi", 150, 3),
		} {
			require.NoError(t, repo.Create(ctx, p))
		}

		products, err := repo.GetAll(ctx, models.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, []string{"iPhone", "Samsung", "Redmi"}, titles(products))

		// A single threshold does not filter.
		products, err = repo.GetAll(ctx, models.ProductFilter{MinPrice: float(100)})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("GetAllAppliesBothThresholds", func(t *testing.T) {
		repo := newRepo(t)
		for _, p := range []*models.Product{
			newProduct("iPhone", 300, 4.5),   // both
			newProduct("Samsung", 300, 3),    // price only
			newProduct("Redmi", 50, 5),       // rating only
			newProduct("iPhone", 100, 4.9),   // price not strictly greater
			newProduct("Samsung", 101, 4.01), // both
		} {
			require.NoError(t, repo.Create(ctx, p))
		}

		products, err := repo.GetAll(ctx, models.ProductFilter{MinPrice: float(100), MinRating: float(4)})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Greater(t, p.Price, 100.0)
			assert.Greater(t, p.Rating, 4.0)
		}
	})

	t.Run("GetByIDMissing", func(t *testing.T) {
		repo := newRepo(t)

		product, err := repo.GetByID(ctx, missingID)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("MalformedIDIsStorageError", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(ctx, "not-an-id")
		var storageErr *repositories.StorageError
		require.True(t, errors.As(err, &storageErr))
		assert.Contains(t, err.Error(), "not-an-id")

		err = repo.Update(ctx, &models.Product{ID: "not-an-id"})
		assert.True(t, errors.As(err, &storageErr))

		_, err = repo.Delete(ctx, "not-an-id")
		assert.True(t, errors.As(err, &storageErr))
	})

	t.Run("UpdateReplacesFieldsKeepsCreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		original := newProduct("iPhone", 300, 4.5)
		require.NoError(t, repo.Create(ctx, original))

		update := &models.Product{
			ID:          original.ID,
			Title:       "Redmi",
			Price:       450,
			Rating:      0,
			Description: "updated",
			Phone:       "99-0000000000",
			CreatedAt:   time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, repo.Update(ctx, update))

		assert.Equal(t, original.ID, update.ID)
		assert.Equal(t, "Redmi", update.Title)
		assert.Equal(t, 450.0, update.Price)
		assert.Equal(t, 0.0, update.Rating)
		assert.Equal(t, "updated", update.Description)
		assert.Equal(t, "99-0000000000", update.Phone)
		assert.True(t, original.CreatedAt.Equal(update.CreatedAt))

		fetched, err := repo.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, 450.0, fetched.Price)
		assert.True(t, original.CreatedAt.Equal(fetched.CreatedAt))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Update(ctx, &models.Product{ID: missingID, Title: "iPhone", Price: 30})
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})

	t.Run("DeleteReturnsRemovedRecord", func(t *testing.T) {
		repo := newRepo(t)
		p := newProduct("Samsung", 99, 3.5)
		require.NoError(t, repo.Create(ctx, p))

		deleted, err := repo.Delete(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, deleted.ID)
		assert.Equal(t, "Samsung", deleted.Title)

		_, err = repo.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		_, err = repo.Delete(ctx, p.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		products, err := repo.GetAll(ctx, models.ProductFilter{})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func titles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}
