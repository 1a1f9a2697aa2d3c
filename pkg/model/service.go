package model

import "time"

// Service is a platform-owned catalog entry. Mutation is operator territory;
// the scheduling engine only reads it.
type Service struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	BasePrice   float64   `json:"base_price" bson:"base_price" validate:"required,gt=0"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// ServiceOffering is a provider's opt-in to a catalog service, optionally
// overriding the base price. Removing it never touches existing
// appointments; their cost was stamped at booking time.
type ServiceOffering struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID  string    `json:"provider_id" bson:"provider_id" validate:"required"`
	ServiceID   string    `json:"service_id" bson:"service_id" validate:"required"`
	CustomPrice *float64  `json:"custom_price,omitempty" bson:"custom_price,omitempty" validate:"omitempty,gt=0"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Price resolves the effective price of the offering against the base price.
func (o *ServiceOffering) Price(basePrice float64) float64 {
	if o.CustomPrice != nil {
		return *o.CustomPrice
	}
	return basePrice
}
