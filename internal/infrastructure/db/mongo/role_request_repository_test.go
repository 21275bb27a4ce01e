package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

var chefGrant = domain.RoleGrant{Role: domain.RoleChef, ChefID: "chef-1234"}

// updatedCollections lists the target collection of every update command sent.
func updatedCollections(mt *mtest.T) []string {
	var out []string
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == "update" {
			out = append(out, evt.Command.Lookup("update").StringValue())
		}
	}
	return out
}

func roleRequestDoc(id primitive.ObjectID, status domain.RequestStatus) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userEmail", Value: "a@x.com"},
		{Key: "requestType", Value: "chef"},
		{Key: "requestStatus", Value: string(status)},
		{Key: "requestTime", Value: time.Now().UTC()},
	}
}

func TestRoleRequestRepository_Approve(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("grants role and marks approved", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(1, 1), mtest.CreateSuccessResponse())

		if err := repo.Approve(context.Background(), primitive.NewObjectID().Hex(), "a@x.com", chefGrant); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		got := updatedCollections(mt)
		if len(got) != 2 || got[0] != collectionUsers || got[1] != collectionRoleRequests {
			mt.Fatalf("unexpected updates: %v", got)
		}
	})

	mt.Run("unknown user leaves request untouched", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(0, 0), mtest.CreateSuccessResponse())

		err := repo.Approve(context.Background(), primitive.NewObjectID().Hex(), "ghost@x.com", chefGrant)
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if got := updatedCollections(mt); len(got) != 1 || got[0] != collectionUsers {
			mt.Fatalf("request must not be updated, got updates %v", got)
		}
	})

	mt.Run("duplicate chef id", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			mtest.CreateSuccessResponse(),
		)

		err := repo.Approve(context.Background(), primitive.NewObjectID().Hex(), "a@x.com", chefGrant)
		if !errors.Is(err, domain.ErrDuplicateChef) {
			mt.Fatalf("expected ErrDuplicateChef, got %v", err)
		}
	})

	mt.Run("request no longer pending", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(0, 0), mtest.CreateSuccessResponse())

		err := repo.Approve(context.Background(), primitive.NewObjectID().Hex(), "a@x.com", chefGrant)
		if !errors.Is(err, domain.ErrRequestNotPending) {
			mt.Fatalf("expected ErrRequestNotPending, got %v", err)
		}
		var aborted bool
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "commitTransaction" {
				mt.Fatal("transaction must not commit")
			}
			aborted = aborted || evt.CommandName == "abortTransaction"
		}
		if !aborted {
			mt.Fatal("expected the transaction to abort")
		}
	})

	mt.Run("pending filter on request update", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1), updateResult(1, 1), mtest.CreateSuccessResponse())

		if err := repo.Approve(context.Background(), primitive.NewObjectID().Hex(), "a@x.com", chefGrant); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName != "update" || evt.Command.Lookup("update").StringValue() != collectionRoleRequests {
				continue
			}
			stmt := evt.Command.Lookup("updates").Array().Index(0).Value().Document()
			status, err := stmt.LookupErr("q", "requestStatus")
			if err != nil || status.StringValue() != string(domain.RequestPending) {
				mt.Fatalf("request update must filter on pending status, got %v", stmt)
			}
		}
	})
}

func TestRoleRequestRepository_Reject(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := mtest.TestDb + "." + collectionRoleRequests

	mt.Run("pending request", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(1, 1))

		if err := repo.Reject(context.Background(), primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("already decided", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			updateResult(0, 0),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, roleRequestDoc(id, domain.RequestApproved)),
		)

		if err := repo.Reject(context.Background(), id.Hex()); !errors.Is(err, domain.ErrRequestNotPending) {
			mt.Fatalf("expected ErrRequestNotPending, got %v", err)
		}
	})

	mt.Run("missing request", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(updateResult(0, 0), mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		err := repo.Reject(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, domain.ErrRoleRequestNotFound) {
			mt.Fatalf("expected ErrRoleRequestNotFound, got %v", err)
		}
	})

	mt.Run("reload failure is not reported as not pending", func(mt *mtest.T) {
		repo := NewRoleRequestRepository(mt.DB)
		mt.AddMockResponses(
			updateResult(0, 0),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}),
		)

		err := repo.Reject(context.Background(), primitive.NewObjectID().Hex())
		if err == nil || errors.Is(err, domain.ErrRequestNotPending) || errors.Is(err, domain.ErrRoleRequestNotFound) {
			mt.Fatalf("expected the reload error, got %v", err)
		}
	})
}
