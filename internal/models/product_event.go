package models

import "time"

// ProductEventType names a product lifecycle change.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after every successful product write.
type ProductEvent struct {
	Type       ProductEventType `json:"type"`
	ProductID  string           `json:"productId"`
	Product    Product          `json:"product"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewProductEvent builds an event for the given product.
func NewProductEvent(eventType ProductEventType, product Product) ProductEvent {
	return ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
}
