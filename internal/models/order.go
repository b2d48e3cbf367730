package models

import "time"

// Order statuses. Cancelled and completed are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
)

// OrderItem is an immutable line item. Price is the unit price at the time
// the order was placed, decoupled from later catalog changes.
type OrderItem struct {
	ProductID int     `json:"product_id" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order represents a placed order.
type Order struct {
	ID              string      `json:"order_id" bson:"_id,omitempty"`
	UserID          string      `json:"user_id" bson:"userId"`
	Products        []OrderItem `json:"products" bson:"products"`
	TotalAmount     float64     `json:"total_amount" bson:"totalAmount"`
	Status          string      `json:"status" bson:"status"`
	ShippingAddress string      `json:"shipping_address" bson:"shippingAddress"`
	PhoneNumber     string      `json:"phone_number,omitempty" bson:"phoneNumber,omitempty"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at" bson:"createdAt"`
	UpdatedAt       time.Time   `json:"updated_at" bson:"updatedAt"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s admits no further transitions.
func TerminalOrderStatus(s string) bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}
