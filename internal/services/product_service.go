package services

import (
	"context"
	"errors"

	"productapi/internal/metrics"
	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/validation"

	"github.com/rs/zerolog"
)

// EventPublisher sends product lifecycle events to other systems.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.Validator
	publisher EventPublisher   // optional
	metrics   *metrics.Metrics // optional
	logger    zerolog.Logger
}

// Option configures a ProductService.
type Option func(*ProductService)

// WithPublisher publishes an event after every successful write.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *ProductService) { s.publisher = publisher }
}

// WithMetrics counts every operation by outcome.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *ProductService) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *ProductService) { s.logger = logger }
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, validator *validation.Validator, opts ...Option) *ProductService {
	s := &ProductService{
		repo:      repo,
		validator: validator,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves the products matching filter.
func (s *ProductService) GetAllProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx, filter)
	s.observe("list", err)
	return products, err
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	s.observe("get", err)
	return product, err
}

// CreateProduct validates the input and stores it as a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	product, err := s.validator.Product(in)
	if err != nil {
		s.observe("create", err)
		return nil, err
	}

	err = s.repo.Create(ctx, product)
	s.observe("create", err)
	if err != nil {
		return nil, err
	}

	s.publish(models.ProductCreated, *product)
	return product, nil
}

// UpdateProduct validates the input and replaces the mutable fields of product id.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	product, err := s.validator.Product(in)
	if err != nil {
		s.observe("update", err)
		return nil, err
	}
	product.ID = id

	err = s.repo.Update(ctx, product)
	s.observe("update", err)
	if err != nil {
		return nil, err
	}

	s.publish(models.ProductUpdated, *product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the removed record.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	s.observe("delete", err)
	if err != nil {
		return nil, err
	}

	s.publish(models.ProductDeleted, *product)
	return product, nil
}

// publish never fails the caller; the write has already been committed.
func (s *ProductService) publish(eventType models.ProductEventType, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(models.NewProductEvent(eventType, product)); err != nil {
		s.logger.Warn().Err(err).Str("type", string(eventType)).Str("product_id", product.ID).
			Msg("failed to publish product event")
	}
}

func (s *ProductService) observe(operation string, err error) {
	var verrs validation.Errors
	switch {
	case err == nil:
		s.metrics.ObserveOperation(operation, metrics.OutcomeSuccess)
	case errors.Is(err, repositories.ErrProductNotFound):
		s.metrics.ObserveOperation(operation, metrics.OutcomeNotFound)
	case errors.As(err, &verrs):
		s.metrics.ObserveOperation(operation, metrics.OutcomeInvalid)
	default:
		s.metrics.ObserveOperation(operation, metrics.OutcomeError)
	}
}
