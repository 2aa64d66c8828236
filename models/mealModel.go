package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Meal struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodName              *string            `bson:"foodName" json:"foodName" validate:"required,min=2,max=100"`
	ChefName              *string            `bson:"chefName" json:"chefName" validate:"required"`
	ChefID                string             `bson:"chefId,omitempty" json:"chefId,omitempty"`
	Price                 *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	Rating                float64            `bson:"rating" json:"rating"`
	Ingredients           []string           `bson:"ingredients" json:"ingredients"`
	EstimatedDeliveryTime string             `bson:"estimatedDeliveryTime" json:"estimatedDeliveryTime"`
	FoodImage             string             `bson:"foodImage" json:"foodImage"`
	UserEmail             *string            `bson:"userEmail" json:"userEmail" validate:"required,email"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
}
