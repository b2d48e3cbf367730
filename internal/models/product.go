package models

import "time"

// Product represents a catalog entry. The ID is assigned externally by the
// catalog owner, not generated by the store.
type Product struct {
	ID          int       `json:"id" bson:"id" validate:"required,gt=0"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	Description string    `json:"description" bson:"description" validate:"required,max=500"`
	Category    string    `json:"category" bson:"category" validate:"required"`
	Stock       int       `json:"stock" bson:"stock" validate:"gte=0"`
	IsActive    bool      `json:"is_active" bson:"isActive"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"` // URL path under /uploads
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updatedAt"`
}

// ProductUpdate carries a partial update; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Stock       *int
	IsActive    *bool
	Image       *string
}
