package models

import "time"

// Product represents a product in the store.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput holds the writable product fields as they arrive in a request body.
// Price and Rating are pointers so a missing value is not confused with zero.
type ProductInput struct {
	Title       string   `json:"title" form:"title" validate:"required,min=3,max=100,oneof=iPhone Samsung Redmi"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=25,lte=500"`
	Rating      *float64 `json:"rating" form:"rating" validate:"required"`
	Description string   `json:"description" form:"description" validate:"required"`
	Phone       string   `json:"phone" form:"phone" validate:"required,phone"`
}

// ProductFilter narrows a product listing. It only applies when both
// thresholds are set.
type ProductFilter struct {
	MinPrice  *float64
	MinRating *float64
}

// Active reports whether the filter should be applied.
func (f ProductFilter) Active() bool {
	return f.MinPrice != nil && f.MinRating != nil
}
