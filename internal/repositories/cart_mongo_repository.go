package repositories

import (
	"errors"
	"fmt"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository is a MongoDB implementation of CartRepository.
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository creates a new instance of MongoCartRepository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		coll: db.Collection(cartsCollection),
	}
}

// GetByUserID retrieves the user's cart.
func (r *MongoCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Save upserts the cart keyed by its UserID.
func (r *MongoCartRepository) Save(cart *models.Cart) error {
	ctx, cancel := opCtx()
	defer cancel()

	now := time.Now()
	cart.UpdatedAt = now
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{
			"$set":         bson.M{"items": cart.Items, "updatedAt": now},
			"$setOnInsert": bson.M{"userId": cart.UserID, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart for user %s: %w", cart.UserID, err)
	}
	return nil
}
