package repositories

import (
	"context"
	"errors"
	"time"

	"productapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRecord is the relational row for a product.
type ProductRecord struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Price       float64   `gorm:"not null"`
	Rating      float64   `gorm:"not null"`
	Description string    `gorm:"not null"`
	Phone       string    `gorm:"type:varchar(13);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName pins the table name used by GORM.
func (ProductRecord) TableName() string {
	return "products"
}

func (r ProductRecord) toModel() models.Product {
	return models.Product{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		Rating:      r.Rating,
		Description: r.Description,
		Phone:       r.Phone,
		CreatedAt:   r.CreatedAt,
	}
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves products from the database, applying the thresholds when both are set.
func (r *GORMProductRepository) GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Order("created_at, id")
	if filter.Active() {
		query = query.Where("price > ? AND rating > ?", *filter.MinPrice, *filter.MinRating)
	}

	var records []ProductRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, storageError("get all products", err)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidIDError("get product", id)
	}

	var rec ProductRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, storageError("get product", err)
	}

	product := rec.toModel()
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	rec := ProductRecord{
		ID:          uuid.New().String(),
		Title:       product.Title,
		Price:       product.Price,
		Rating:      product.Rating,
		Description: product.Description,
		Phone:       product.Phone,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return storageError("create product", err)
	}

	*product = rec.toModel()
	return nil
}

// Update replaces the mutable fields of an existing product and reloads it.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	if _, err := uuid.Parse(product.ID); err != nil {
		return invalidIDError("update product", product.ID)
	}

	var rec ProductRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A map is used so zero values (e.g. rating 0) are written too.
		res := tx.Model(&ProductRecord{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
			"title":       product.Title,
			"price":       product.Price,
			"rating":      product.Rating,
			"description": product.Description,
			"phone":       product.Phone,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return tx.First(&rec, "id = ?", product.ID).Error
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return storageError("update product", err)
	}

	*product = rec.toModel()
	return nil
}

// Delete deletes a product by its ID from the database and returns the removed record.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalidIDError("delete product", id)
	}

	var rec ProductRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&ProductRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, storageError("delete product", err)
	}

	product := rec.toModel()
	return &product, nil
}
