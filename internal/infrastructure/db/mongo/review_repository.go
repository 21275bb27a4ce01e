package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(collectionReviews)}
}

type mongoReview struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FoodID        string             `bson:"foodId"`
	MealName      string             `bson:"mealName,omitempty"`
	ReviewerName  string             `bson:"reviewerName"`
	ReviewerEmail string             `bson:"reviewerEmail"`
	ReviewerImage string             `bson:"reviewerImage,omitempty"`
	Rating        int                `bson:"rating"`
	Comment       string             `bson:"comment"`
	Date          time.Time          `bson:"date"`
}

func (m mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:            m.ID.Hex(),
		FoodID:        m.FoodID,
		MealName:      m.MealName,
		ReviewerName:  m.ReviewerName,
		ReviewerEmail: m.ReviewerEmail,
		ReviewerImage: m.ReviewerImage,
		Rating:        m.Rating,
		Comment:       m.Comment,
		Date:          m.Date,
	}
}

func reviewsToDomain(docs []mongoReview) []*domain.Review {
	out := make([]*domain.Review, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoReview{
		FoodID:        rv.FoodID,
		MealName:      rv.MealName,
		ReviewerName:  rv.ReviewerName,
		ReviewerEmail: rv.ReviewerEmail,
		ReviewerImage: rv.ReviewerImage,
		Rating:        rv.Rating,
		Comment:       rv.Comment,
		Date:          rv.Date,
	})
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid.Hex()
	}
	return nil
}

func (r *ReviewRepository) ListByFood(ctx context.Context, foodID string) ([]*domain.Review, error) {
	docs, err := findAll[mongoReview](ctx, r.col, bson.M{"foodId": foodID}, newestFirst("date"))
	if err != nil {
		return nil, fmt.Errorf("list reviews for food: %w", err)
	}
	return reviewsToDomain(docs), nil
}

func (r *ReviewRepository) ListByReviewer(ctx context.Context, email string) ([]*domain.Review, error) {
	docs, err := findAll[mongoReview](ctx, r.col, bson.M{"reviewerEmail": email}, newestFirst("date"))
	if err != nil {
		return nil, fmt.Errorf("list reviews by reviewer: %w", err)
	}
	return reviewsToDomain(docs), nil
}

func (r *ReviewRepository) Latest(ctx context.Context, n int64) ([]*domain.Review, error) {
	docs, err := findAll[mongoReview](ctx, r.col, bson.M{}, newestFirst("date").SetLimit(n))
	if err != nil {
		return nil, fmt.Errorf("latest reviews: %w", err)
	}
	return reviewsToDomain(docs), nil
}

// Update rewrites rating and comment and returns the review as stored afterwards.
func (r *ReviewRepository) Update(ctx context.Context, id string, rating int, comment string) (*domain.Review, error) {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rating":  rating,
		"comment": comment,
		"date":    time.Now().UTC(),
	}}
	var doc mongoReview
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the review and returns what was deleted.
func (r *ReviewRepository) Delete(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoReview
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("delete review: %w", err)
	}
	return doc.toDomain(), nil
}

// AverageRating aggregates the mean rating and review count for a meal.
func (r *ReviewRepository) AverageRating(ctx context.Context, foodID string) (float64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"foodId": foodID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate rating: %w", err)
	}
	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("aggregate rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}
