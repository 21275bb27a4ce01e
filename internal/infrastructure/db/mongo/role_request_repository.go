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

// RoleRequestRepository stores role requests and applies approvals across the
// roleRequests and users collections inside a single transaction.
type RoleRequestRepository struct {
	client   *mongo.Client
	requests *mongo.Collection
	users    *mongo.Collection
}

func NewRoleRequestRepository(db *mongo.Database) *RoleRequestRepository {
	return &RoleRequestRepository{
		client:   db.Client(),
		requests: db.Collection(collectionRoleRequests),
		users:    db.Collection(collectionUsers),
	}
}

type mongoRoleRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	UserName      string             `bson:"userName"`
	UserEmail     string             `bson:"userEmail"`
	RequestType   string             `bson:"requestType"`
	RequestStatus string             `bson:"requestStatus"`
	RequestTime   time.Time          `bson:"requestTime"`
	DecidedAt     *time.Time         `bson:"decidedAt,omitempty"`
}

func (m mongoRoleRequest) toDomain() *domain.RoleRequest {
	return &domain.RoleRequest{
		ID:            m.ID.Hex(),
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		RequestType:   domain.RequestType(m.RequestType),
		RequestStatus: domain.RequestStatus(m.RequestStatus),
		RequestTime:   m.RequestTime,
		DecidedAt:     m.DecidedAt,
	}
}

func (r *RoleRequestRepository) Create(ctx context.Context, req *domain.RoleRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.requests.InsertOne(ctx, mongoRoleRequest{
		UserID:        req.UserID,
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		RequestType:   string(req.RequestType),
		RequestStatus: string(req.RequestStatus),
		RequestTime:   req.RequestTime,
	})
	if err != nil {
		return fmt.Errorf("insert role request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid.Hex()
	}
	return nil
}

func (r *RoleRequestRepository) FindByID(ctx context.Context, id string) (*domain.RoleRequest, error) {
	oid, err := objectID(id, domain.ErrRoleRequestNotFound)
	if err != nil {
		return nil, err
	}
	var doc mongoRoleRequest
	if err := findOne(ctx, r.requests, bson.M{"_id": oid}, &doc, domain.ErrRoleRequestNotFound); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *RoleRequestRepository) ListNewestFirst(ctx context.Context) ([]*domain.RoleRequest, error) {
	docs, err := findAll[mongoRoleRequest](ctx, r.requests, bson.M{}, newestFirst("requestTime"))
	if err != nil {
		return nil, fmt.Errorf("list role requests: %w", err)
	}
	out := make([]*domain.RoleRequest, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Approve writes the role grant and the approved status in one transaction.
// The status update only matches a pending request, so a concurrent decision
// aborts this one instead of double-applying it.
func (r *RoleRequestRepository) Approve(ctx context.Context, requestID, userEmail string, grant domain.RoleGrant) error {
	oid, err := objectID(requestID, domain.ErrRoleRequestNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		set := bson.M{"role": string(grant.Role)}
		if grant.ChefID != "" {
			set["chefId"] = grant.ChefID
		}
		userRes, err := r.users.UpdateOne(sc, bson.M{"email": userEmail}, bson.M{"$set": set})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateChef
			}
			return nil, fmt.Errorf("grant role: %w", err)
		}
		if userRes.MatchedCount == 0 {
			return nil, domain.ErrUserNotFound
		}

		reqRes, err := r.requests.UpdateOne(sc,
			bson.M{"_id": oid, "requestStatus": string(domain.RequestPending)},
			bson.M{"$set": bson.M{
				"requestStatus": string(domain.RequestApproved),
				"decidedAt":     time.Now().UTC(),
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("mark approved: %w", err)
		}
		if reqRes.MatchedCount == 0 {
			return nil, domain.ErrRequestNotPending
		}
		return nil, nil
	})
	return err
}

// Reject moves a pending request to rejected.
func (r *RoleRequestRepository) Reject(ctx context.Context, requestID string) error {
	oid, err := objectID(requestID, domain.ErrRoleRequestNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.requests.UpdateOne(ctx,
		bson.M{"_id": oid, "requestStatus": string(domain.RequestPending)},
		bson.M{"$set": bson.M{
			"requestStatus": string(domain.RequestRejected),
			"decidedAt":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("reject role request: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Distinguish a missing request from one decided concurrently.
	if _, err := r.FindByID(ctx, requestID); err != nil {
		if errors.Is(err, domain.ErrRoleRequestNotFound) {
			return err
		}
		return fmt.Errorf("reload role request: %w", err)
	}
	return domain.ErrRequestNotPending
}
