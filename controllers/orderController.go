package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type OrderController struct {
	orders *mongo.Collection
}

func NewOrderController(orders *mongo.Collection) *OrderController {
	return &OrderController{orders: orders}
}

var errInvalidOrder = errors.New("invalid order data")

// prepareOrder enforces the creation contract and stamps the defaults:
// foodId, userEmail and a positive quantity are required; paymentStatus
// starts as "Pending" and orderStatus as "pending" unless supplied.
func prepareOrder(order *models.Order) error {
	if order.FoodID == nil || *order.FoodID == "" {
		return errInvalidOrder
	}
	if order.UserEmail == nil || *order.UserEmail == "" {
		return errInvalidOrder
	}
	if order.Quantity == nil || *order.Quantity <= 0 {
		return errInvalidOrder
	}

	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	if order.OrderStatus == "" {
		order.OrderStatus = models.OrderStatusPending
	}
	order.ID = primitive.NewObjectID()
	order.OrderDate = time.Now()
	order.TrackingCode = ""
	return nil
}

func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if err := prepareOrder(&order); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid order data")
		return
	}

	result, err := oc.orders.InsertOne(ctx, order)
	if err != nil {
		log.Error().Err(err).Msg("order insert failed")
		respondError(w, http.StatusInternalServerError, "Order could not be placed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"insertedId": result.InsertedID,
		"message":    "Order placed successfully",
	})
}

// GetOrders lists orders newest-first. ?email= scopes to a customer,
// ?chefId= to a fulfilling chef; the filters combine, and neither being
// present returns the unfiltered listing.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := bson.M{}
	if email := r.URL.Query().Get("email"); email != "" {
		filter["userEmail"] = email
	}
	if chefID := r.URL.Query().Get("chefId"); chefID != "" {
		filter["chefId"] = chefID
	}

	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := oc.orders.Find(ctx, filter, opts)
	if err != nil {
		log.Error().Err(err).Msg("listing orders failed")
		respondError(w, http.StatusInternalServerError, "Error retrieving orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	err = oc.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus sets orderStatus to whatever string the fulfilling
// party supplies. Constraining transitions to a state machine is an open
// product decision; the current frontend sends free-form statuses.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var body struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderStatus == "" {
		respondError(w, http.StatusBadRequest, "orderStatus is required")
		return
	}

	result, err := oc.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"orderStatus": body.OrderStatus},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
	})
}
