package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is written exactly once per reconciled checkout session; the
// unique index on transactionId guarantees it.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	OrderID       string             `bson:"orderId" json:"orderId"`
	OrderName     string             `bson:"orderName" json:"orderName"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
	TrackingCode  string             `bson:"trackingCode" json:"trackingCode"`
}
