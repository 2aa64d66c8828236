package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"

	UserStatusActive = "active"
	UserStatusFraud  = "fraud"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     *string            `bson:"email" json:"email" validate:"required,email"`
	PhotoURL  string             `bson:"photoURL" json:"photoURL"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	ChefID    string             `bson:"chefId,omitempty" json:"chefId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
