package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the write paths rely on
// (duplicate email/username/category name surface as Mongo code 11000).
func EnsureIndexes(ctx context.Context) error {
	userIdxs := []mongo.IndexModel{
		{
			Keys:    bson.M{"email": 1},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
		{
			Keys:    bson.M{"username": 1},
			Options: options.Index().SetUnique(true).SetName("unique_username"),
		},
	}
	if _, err := UserCollection.Indexes().CreateMany(ctx, userIdxs); err != nil {
		return err
	}

	catIdx := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true).SetName("unique_name"),
	}
	if _, err := CategoryCollection.Indexes().CreateOne(ctx, catIdx); err != nil {
		return err
	}

	orderIdx := mongo.IndexModel{
		Keys:    bson.M{"userid": 1},
		Options: options.Index().SetName("orders_by_user"),
	}
	_, err := OrderCollection.Indexes().CreateOne(ctx, orderIdx)
	return err
}
