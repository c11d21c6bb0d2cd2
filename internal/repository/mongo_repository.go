package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cartDocument holds the serialized cart exactly as the other backends do,
// so a cart can move between stores unchanged.
type cartDocument struct {
	Key       string    `bson:"_id"`
	State     string    `bson:"state"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoRepository) Load(ctx context.Context, key string) (*domain.Cart, error) {
	var doc cartDocument

	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return decodeCart([]byte(doc.State))
}

func (m *mongoRepository) Save(ctx context.Context, key string, cart *domain.Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"state":      string(data),
		"updated_at": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}
