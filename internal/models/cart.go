package models

import "time"

// CartItem is a single product line in a cart.
type CartItem struct {
	ProductID int `json:"product_id" bson:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" bson:"quantity" validate:"required,gte=1"`
}

// Cart holds the pending items of one user. There is at most one cart per
// user; it is created lazily on the first add.
type Cart struct {
	UserID    string     `json:"user_id" bson:"userId"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updatedAt"`
}
