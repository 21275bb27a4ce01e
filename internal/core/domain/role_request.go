package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RequestType is the role a user asks to be upgraded to.
type RequestType string

const (
	RequestChef  RequestType = "chef"
	RequestAdmin RequestType = "admin"
)

// Valid reports whether t is a role that can be requested.
func (t RequestType) Valid() bool {
	return t == RequestChef || t == RequestAdmin
}

// RequestStatus is the lifecycle state of a role request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// CanTransitionTo reports whether a request may move from s to next.
// Only pending requests can be decided; decided requests are terminal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestPending && (next == RequestApproved || next == RequestRejected)
}

// RoleRequest is a user's application for chef or admin privilege.
type RoleRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	UserEmail     string        `json:"userEmail"`
	RequestType   RequestType   `json:"requestType"`
	RequestStatus RequestStatus `json:"requestStatus"`
	RequestTime   time.Time     `json:"requestTime"`
	DecidedAt     *time.Time    `json:"decidedAt,omitempty"`
}

// RoleGrant is the change applied to a user record when a request is approved.
// ChefID is empty for admin grants.
type RoleGrant struct {
	Role   Role
	ChefID string
}

// GrantFor builds the role change for an approved request of type t.
// newChefID is only called for chef requests.
func GrantFor(t RequestType, newChefID func() string) (RoleGrant, error) {
	switch t {
	case RequestChef:
		return RoleGrant{Role: RoleChef, ChefID: newChefID()}, nil
	case RequestAdmin:
		return RoleGrant{Role: RoleAdmin}, nil
	default:
		return RoleGrant{}, fmt.Errorf("%w: unknown request type %q", ErrInvalidInput, t)
	}
}

// NewChefID returns an identifier of the form chef-NNNN with NNNN in [1000, 9999].
// Uniqueness is enforced by the store, not here.
func NewChefID() string {
	return fmt.Sprintf("chef-%d", 1000+rand.IntN(9000))
}
