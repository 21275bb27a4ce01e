package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(collectionFavorites)}
}

type mongoFavorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"userEmail"`
	MealID    string             `bson:"mealId"`
	MealName  string             `bson:"mealName,omitempty"`
	ChefID    string             `bson:"chefId,omitempty"`
	ChefName  string             `bson:"chefName,omitempty"`
	Price     float64            `bson:"price,omitempty"`
	AddedTime time.Time          `bson:"addedTime"`
}

func (m mongoFavorite) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:        m.ID.Hex(),
		UserEmail: m.UserEmail,
		MealID:    m.MealID,
		MealName:  m.MealName,
		ChefID:    m.ChefID,
		ChefName:  m.ChefName,
		Price:     m.Price,
		AddedTime: m.AddedTime,
	}
}

// Create relies on the unique (userEmail, mealId) index to reject duplicates.
func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoFavorite{
		UserEmail: f.UserEmail,
		MealID:    f.MealID,
		MealName:  f.MealName,
		ChefID:    f.ChefID,
		ChefName:  f.ChefName,
		Price:     f.Price,
		AddedTime: f.AddedTime,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFavorite
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid.Hex()
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, email string) ([]*domain.Favorite, error) {
	docs, err := findAll[mongoFavorite](ctx, r.col, bson.M{"userEmail": email}, newestFirst("addedTime"))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	out := make([]*domain.Favorite, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrFavoriteNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return mustMatch(res.DeletedCount, domain.ErrFavoriteNotFound)
}
