package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "paid"

	OrderStatusPending = "pending"
)

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FoodID        *string            `bson:"foodId" json:"foodId" validate:"required"`
	FoodName      string             `bson:"foodName" json:"foodName"`
	Price         float64            `bson:"price" json:"price"`
	Quantity      *int               `bson:"quantity" json:"quantity" validate:"required,gt=0"`
	ChefID        string             `bson:"chefId" json:"chefId"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus   string             `bson:"orderStatus" json:"orderStatus"`
	UserEmail     *string            `bson:"userEmail" json:"userEmail" validate:"required,email"`
	Address       string             `bson:"address" json:"address"`
	OrderDate     time.Time          `bson:"orderDate" json:"orderDate"`
	TrackingCode  string             `bson:"trackingCode,omitempty" json:"trackingCode,omitempty"`
}
