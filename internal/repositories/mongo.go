package repositories

import (
	"context"
	"time"
)

// Collection names used by the Mongo repositories.
const (
	usersCollection    = "users"
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
)

const mongoOpTimeout = 5 * time.Second

// opCtx returns the per-operation context the Mongo repositories run under.
// The HTTP layer imposes no deadline of its own, so reads and writes get a
// short timeout here instead of hanging on a dead connection.
func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), mongoOpTimeout)
}
