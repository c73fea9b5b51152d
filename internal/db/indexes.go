package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the application relies on. Safe
// to run on every startup.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := database.Collection("users")

	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse so users without a username don't collide.
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	for _, name := range []string{"blogs", "donations", "sellplants", "swaps"} {
		_, err := database.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return err
		}
	}

	return nil
}
