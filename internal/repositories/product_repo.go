package repositories

import (
	"context"

	"productapi/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) (*models.Product, error)
}
