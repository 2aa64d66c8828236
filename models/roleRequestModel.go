package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestTypeChef  = "chef"
	RequestTypeAdmin = "admin"

	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// RoleRequest moves pending -> decided exactly once; the decision also
// mutates the requester's user record when approved.
type RoleRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserName    *string            `bson:"userName" json:"userName" validate:"required"`
	UserEmail   *string            `bson:"userEmail" json:"userEmail" validate:"required,email"`
	RequestType *string            `bson:"requestType" json:"requestType" validate:"required,eq=chef|eq=admin"`
	Status      string             `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requestedAt" json:"requestedAt"`
	DecidedAt   *time.Time         `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}
