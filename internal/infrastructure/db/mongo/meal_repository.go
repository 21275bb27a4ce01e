package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type MealRepository struct {
	col *mongo.Collection
}

func NewMealRepository(db *mongo.Database) *MealRepository {
	return &MealRepository{col: db.Collection(collectionMeals)}
}

type mongoMeal struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	FoodName              string             `bson:"foodName"`
	ChefName              string             `bson:"chefName"`
	ChefID                string             `bson:"chefId"`
	FoodImage             string             `bson:"foodImage,omitempty"`
	Price                 float64            `bson:"price"`
	Rating                float64            `bson:"rating"`
	Ingredients           []string           `bson:"ingredients"`
	EstimatedDeliveryTime string             `bson:"estimatedDeliveryTime,omitempty"`
	ChefExperience        string             `bson:"chefExperience,omitempty"`
	DeliveryArea          string             `bson:"deliveryArea,omitempty"`
	UserEmail             string             `bson:"userEmail"`
	CreatedAt             time.Time          `bson:"createdAt"`
}

func (m mongoMeal) toDomain() *domain.Meal {
	return &domain.Meal{
		ID:                    m.ID.Hex(),
		FoodName:              m.FoodName,
		ChefName:              m.ChefName,
		ChefID:                m.ChefID,
		FoodImage:             m.FoodImage,
		Price:                 m.Price,
		Rating:                m.Rating,
		Ingredients:           m.Ingredients,
		EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		ChefExperience:        m.ChefExperience,
		DeliveryArea:          m.DeliveryArea,
		UserEmail:             m.UserEmail,
		CreatedAt:             m.CreatedAt,
	}
}

func mealsToDomain(docs []mongoMeal) []*domain.Meal {
	out := make([]*domain.Meal, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func (r *MealRepository) Create(ctx context.Context, m *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoMeal{
		FoodName:              m.FoodName,
		ChefName:              m.ChefName,
		ChefID:                m.ChefID,
		FoodImage:             m.FoodImage,
		Price:                 m.Price,
		Rating:                m.Rating,
		Ingredients:           m.Ingredients,
		EstimatedDeliveryTime: m.EstimatedDeliveryTime,
		ChefExperience:        m.ChefExperience,
		DeliveryArea:          m.DeliveryArea,
		UserEmail:             m.UserEmail,
		CreatedAt:             m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid.Hex()
	}
	return nil
}

func (r *MealRepository) FindByID(ctx context.Context, id string) (*domain.Meal, error) {
	oid, err := objectID(id, domain.ErrMealNotFound)
	if err != nil {
		return nil, err
	}
	var doc mongoMeal
	if err := findOne(ctx, r.col, bson.M{"_id": oid}, &doc, domain.ErrMealNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// mealListFilter builds the case-insensitive substring filter. User input is
// quoted so it is matched literally.
func mealListFilter(f ports.MealFilter) bson.M {
	filter := bson.M{}
	if f.Area != "" {
		filter["deliveryArea"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Area), Options: "i"}
	}
	if f.Search != "" {
		filter["foodName"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	return filter
}

func (r *MealRepository) List(ctx context.Context, f ports.MealFilter) ([]*domain.Meal, int64, error) {
	filter := mealListFilter(f)

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	total, err := r.col.CountDocuments(countCtx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count meals: %w", err)
	}

	order := 1
	if !f.PriceAsc {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "price", Value: order}, {Key: "_id", Value: 1}}).
		SetSkip(f.Skip).
		SetLimit(f.Limit)

	docs, err := findAll[mongoMeal](ctx, r.col, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list meals: %w", err)
	}
	return mealsToDomain(docs), total, nil
}

func (r *MealRepository) ListByChefEmail(ctx context.Context, email string) ([]*domain.Meal, error) {
	docs, err := findAll[mongoMeal](ctx, r.col, bson.M{"userEmail": email}, newestFirst("createdAt"))
	if err != nil {
		return nil, fmt.Errorf("list chef meals: %w", err)
	}
	return mealsToDomain(docs), nil
}

func (r *MealRepository) Update(ctx context.Context, id string, p domain.MealPatch) error {
	oid, err := objectID(id, domain.ErrMealNotFound)
	if err != nil {
		return err
	}

	set := bson.M{}
	if p.FoodName != nil {
		set["foodName"] = *p.FoodName
	}
	if p.FoodImage != nil {
		set["foodImage"] = *p.FoodImage
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Ingredients != nil {
		set["ingredients"] = p.Ingredients
	}
	if p.EstimatedDeliveryTime != nil {
		set["estimatedDeliveryTime"] = *p.EstimatedDeliveryTime
	}
	if p.DeliveryArea != nil {
		set["deliveryArea"] = *p.DeliveryArea
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return mustMatch(res.MatchedCount, domain.ErrMealNotFound)
}

// SetRating stores the derived average rating of a meal.
func (r *MealRepository) SetRating(ctx context.Context, id string, rating float64) error {
	oid, err := objectID(id, domain.ErrMealNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"rating": rating}})
	if err != nil {
		return fmt.Errorf("set meal rating: %w", err)
	}
	return mustMatch(res.MatchedCount, domain.ErrMealNotFound)
}

func (r *MealRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrMealNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return mustMatch(res.DeletedCount, domain.ErrMealNotFound)
}

func (r *MealRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.EstimatedDocumentCount(ctx)
}
