package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on. The unique
// indexes on users.email, users.chefId and favorites(userEmail, mealId) back
// the duplicate checks in the repositories.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "chefId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		},
		collectionMeals: {
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		collectionReviews: {
			{Keys: bson.D{{Key: "foodId", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "reviewerEmail", Value: 1}}},
		},
		collectionFavorites: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "mealId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "orderTime", Value: -1}}},
			{Keys: bson.D{{Key: "chefId", Value: 1}, {Key: "orderTime", Value: -1}}},
		},
		collectionRoleRequests: {
			{Keys: bson.D{{Key: "requestTime", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
