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

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll: db.Collection(productsCollection),
	}
}

// Create inserts a new product keyed by its externally assigned numeric ID.
func (r *MongoProductRepository) Create(product *models.Product) error {
	ctx, cancel := opCtx()
	defer cancel()

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("product with ID %d already exists: %w", product.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its numeric ID.
func (r *MongoProductRepository) GetByID(id int) (*models.Product, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Update replaces the stored product document.
func (r *MongoProductRepository) Update(product *models.Product) error {
	ctx, cancel := opCtx()
	defer cancel()

	product.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete removes a product by its numeric ID.
func (r *MongoProductRepository) Delete(id int) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("product with ID %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// FindPage returns one page of products plus the total count.
func (r *MongoProductRepository) FindPage(skip, limit int) ([]models.Product, int64, error) {
	ctx, cancel := opCtx()
	defer cancel()

	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit)).SetSort(bson.M{"id": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]models.Product, 0, limit)
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

// DecrementStock subtracts qty from the product's stock only when enough
// stock remains. The guard lives in the update filter, so the check and the
// decrement are a single document operation.
func (r *MongoProductRepository) DecrementStock(id, qty int) error {
	ctx, cancel := opCtx()
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing product from insufficient stock.
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("insufficient stock for product %d: %w", id, apperrors.ErrDomain)
	}
	return nil
}
