package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"productapi/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Listing returns products in insertion order.
type MemoryProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products matching the filter.
func (r *MemoryProductRepository) GetAll(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if filter.Active() && !(p.Price > *filter.MinPrice && p.Rating > *filter.MinRating) {
			continue
		}
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidIDError("get product", id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New().String()
	product.CreatedAt = time.Now().UTC()
	r.products[product.ID] = detached(*product)
	r.order = append(r.order, product.ID)
	return nil
}

// Update replaces the mutable fields of an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	if _, err := uuid.Parse(product.ID); err != nil {
		return invalidIDError("update product", product.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	stored := detached(*product)
	r.products[stored.ID] = stored
	return nil
}

// Delete removes a product by its ID and returns it.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidIDError("delete product", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return &product, nil
}

// detached copies the string fields so the stored product shares no memory
// with caller-owned buffers.
func detached(p models.Product) models.Product {
	p.ID = strings.Clone(p.ID)
	p.Title = strings.Clone(p.Title)
	p.Description = strings.Clone(p.Description)
	p.Phone = strings.Clone(p.Phone)
	return p
}
