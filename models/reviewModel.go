package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is append-only: no handler updates or deletes one.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodID       *string            `bson:"foodId" json:"foodId" validate:"required"`
	ReviewerName *string            `bson:"reviewerName" json:"reviewerName" validate:"required"`
	UserEmail    *string            `bson:"userEmail" json:"userEmail" validate:"required,email"`
	Rating       *float64           `bson:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
