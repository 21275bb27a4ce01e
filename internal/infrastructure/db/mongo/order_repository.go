package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FoodID        string             `bson:"foodId"`
	MealName      string             `bson:"mealName"`
	Price         float64            `bson:"price"`
	Quantity      int                `bson:"quantity"`
	ChefID        string             `bson:"chefId"`
	UserEmail     string             `bson:"userEmail"`
	UserAddress   string             `bson:"userAddress"`
	OrderStatus   string             `bson:"orderStatus"`
	PaymentStatus string             `bson:"paymentStatus"`
	PaymentInfo   bson.M             `bson:"paymentInfo,omitempty"`
	OrderTime     time.Time          `bson:"orderTime"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty"`
}

func (m mongoOrder) toDomain() *domain.Order {
	var info map[string]any
	if len(m.PaymentInfo) > 0 {
		info = map[string]any(m.PaymentInfo)
	}
	return &domain.Order{
		ID:            m.ID.Hex(),
		FoodID:        m.FoodID,
		MealName:      m.MealName,
		Price:         m.Price,
		Quantity:      m.Quantity,
		ChefID:        m.ChefID,
		UserEmail:     m.UserEmail,
		UserAddress:   m.UserAddress,
		OrderStatus:   domain.OrderStatus(m.OrderStatus),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		PaymentInfo:   info,
		OrderTime:     m.OrderTime,
	}
}

func ordersToDomain(docs []mongoOrder) []*domain.Order {
	out := make([]*domain.Order, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoOrder{
		FoodID:        o.FoodID,
		MealName:      o.MealName,
		Price:         o.Price,
		Quantity:      o.Quantity,
		ChefID:        o.ChefID,
		UserEmail:     o.UserEmail,
		UserAddress:   o.UserAddress,
		OrderStatus:   string(o.OrderStatus),
		PaymentStatus: string(o.PaymentStatus),
		OrderTime:     o.OrderTime,
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	var doc mongoOrder
	if err := findOne(ctx, r.col, bson.M{"_id": oid}, &doc, domain.ErrOrderNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, email string) ([]*domain.Order, error) {
	docs, err := findAll[mongoOrder](ctx, r.col, bson.M{"userEmail": email}, newestFirst("orderTime"))
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return ordersToDomain(docs), nil
}

func (r *OrderRepository) ListByChef(ctx context.Context, chefID string) ([]*domain.Order, error) {
	docs, err := findAll[mongoOrder](ctx, r.col, bson.M{"chefId": chefID}, newestFirst("orderTime"))
	if err != nil {
		return nil, fmt.Errorf("list chef orders: %w", err)
	}
	return ordersToDomain(docs), nil
}

// UpdateStatus applies the transition only while the stored status is still
// from, so two concurrent transitions cannot both succeed.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return err
	}

	updCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(updCtx,
		bson.M{"_id": oid, "orderStatus": string(from)},
		bson.M{"$set": bson.M{"orderStatus": string(to)}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("reload order: %w", err)
	}
	return domain.ErrInvalidTransition
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id string, info map[string]any) error {
	oid, err := objectID(id, domain.ErrOrderNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"paymentStatus": string(domain.PaymentPaid),
		"paidAt":        time.Now().UTC(),
	}
	if len(info) > 0 {
		set["paymentInfo"] = info
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	return mustMatch(res.MatchedCount, domain.ErrOrderNotFound)
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"orderStatus": string(status)})
}

func (r *OrderRepository) CountPaid(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{"paymentStatus": string(domain.PaymentPaid)})
}
