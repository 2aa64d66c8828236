package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite records one (meal, user) pair. Uniqueness is checked before
// insert rather than enforced with an index.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MealID    *string            `bson:"mealId" json:"mealId" validate:"required"`
	UserEmail *string            `bson:"userEmail" json:"userEmail" validate:"required,email"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}
