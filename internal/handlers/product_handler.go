package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)

	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleHome serves the welcome text.
func (h *ProductHandler) HandleHome(c *fiber.Ctx) error {
	return c.SendString("welcome to Homepage")
}

// HandleCreateProduct creates a product and returns the stored record as is.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		h.logger.Warn().Err(err).Msg("error parsing create product body")
		return failure(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		h.logger.Error().Err(err).Msg("error creating product")
		return failure(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleGetProducts lists products, filtered when both price and rating
// query thresholds are given.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return failure(c, err)
	}

	products, err := h.service.GetAllProducts(c.UserContext(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("error getting all products")
		return failure(c, err)
	}
	return success(c, "Return all products", products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.service.GetProductByID(c.UserContext(), productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "Products not found")
		}
		h.logger.Error().Err(err).Str("product_id", productID).Msg("error getting product")
		return failure(c, err)
	}
	return success(c, "Return single product", product)
}

// HandleUpdateProduct replaces the mutable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var in models.ProductInput
	if err := c.BodyParser(&in); err != nil {
		h.logger.Warn().Err(err).Str("product_id", productID).Msg("error parsing update product body")
		return failure(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), productID, in)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "product was not update with this id")
		}
		h.logger.Error().Err(err).Str("product_id", productID).Msg("error updating product")
		return failure(c, err)
	}
	return success(c, "updated single product", product)
}

// HandleDeleteProduct deletes a product and returns the removed record.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.service.DeleteProduct(c.UserContext(), productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return notFound(c, "product was not deleted with this id")
		}
		h.logger.Error().Err(err).Str("product_id", productID).Msg("error deleting product")
		return failure(c, err)
	}
	return success(c, "deleted single product", product)
}

func parseFilter(c *fiber.Ctx) (models.ProductFilter, error) {
	var filter models.ProductFilter

	price, rating := c.Query("price"), c.Query("rating")
	if price == "" || rating == "" {
		return filter, nil
	}

	minPrice, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return filter, fmt.Errorf("invalid price threshold %q", price)
	}
	minRating, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return filter, fmt.Errorf("invalid rating threshold %q", rating)
	}

	filter.MinPrice = &minPrice
	filter.MinRating = &minRating
	return filter, nil
}
