package controller

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/helper"
	middleware "github.com/km-naimul/b12-a11-localchefbazaar-server-side/middlewares"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/services"
)

type PaymentController struct {
	payments *mongo.Collection
	orders   *mongo.Collection
	provider services.CheckoutProvider
}

func NewPaymentController(payments, orders *mongo.Collection, provider services.CheckoutProvider) *PaymentController {
	return &PaymentController{payments: payments, orders: orders, provider: provider}
}

type checkoutRequest struct {
	Price     float64 `json:"price"`
	OrderName string  `json:"orderName"`
	UserEmail string  `json:"userEmail"`
	OrderID   string  `json:"orderId"`
}

// CreateCheckoutSession opens a hosted checkout session for an order and
// hands the redirect URL back to the frontend.
func (pc *PaymentController) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Price <= 0 || req.OrderName == "" || req.UserEmail == "" || req.OrderID == "" {
		respondError(w, http.StatusBadRequest, "price, orderName, userEmail and orderId are required")
		return
	}

	sess, err := pc.provider.CreateSession(ctx, services.CheckoutParams{
		Amount:        int64(math.Round(req.Price * 100)),
		OrderName:     req.OrderName,
		CustomerEmail: req.UserEmail,
		OrderID:       req.OrderID,
	})
	if err != nil {
		log.Error().Err(err).Str("orderId", req.OrderID).Msg("checkout session creation failed")
		respondError(w, http.StatusInternalServerError, "Could not create checkout session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"url": sess.URL})
}

// PaymentSuccess reconciles a checkout session: mark the order paid, mint a
// tracking code and record the payment, exactly once per transaction. The
// frontend calls this from the success page, so duplicate calls (refresh,
// back button) are the normal case, not the exception. Two guards make the
// flow idempotent: the lookup by transaction id, and the unique index on
// payments.transactionId for callers racing past the lookup together.
func (pc *PaymentController) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess, err := pc.provider.GetSession(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("sessionId", sessionID).Msg("checkout session retrieval failed")
		respondError(w, http.StatusInternalServerError, "Error retrieving checkout session")
		return
	}

	if sess.TransactionID != "" {
		var existing models.Payment
		err := pc.payments.FindOne(ctx, bson.M{"transactionId": sess.TransactionID}).Decode(&existing)
		if err == nil {
			pc.respondReconciled(w, "Payment already processed", &existing)
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			respondError(w, http.StatusInternalServerError, "Error checking payment record")
			return
		}
	}

	if sess.PaymentStatus != services.PaymentStatusPaid {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "Payment not completed",
		})
		return
	}

	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		Amount:        float64(sess.AmountTotal) / 100,
		Currency:      sess.Currency,
		UserEmail:     sess.CustomerEmail,
		OrderID:       sess.Metadata["orderId"],
		OrderName:     sess.Metadata["orderName"],
		TransactionID: sess.TransactionID,
		Status:        sess.PaymentStatus,
		PaidAt:        time.Now(),
		TrackingCode:  helper.GenerateTrackingCode(),
	}

	// The payment insert is the uniqueness claim: the order is stamped only
	// after it succeeds, so the tracking code on the order always matches
	// the one payment record for the transaction.
	if _, err := pc.payments.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent reconciliation won the insert; answer with its
			// record and converge the order onto the winner's code.
			var winner models.Payment
			if ferr := pc.payments.FindOne(ctx, bson.M{"transactionId": payment.TransactionID}).Decode(&winner); ferr == nil {
				if serr := pc.stampOrder(ctx, winner.OrderID, winner.TrackingCode); serr != nil {
					log.Error().Err(serr).Str("orderId", winner.OrderID).Msg("order stamp retry failed")
				}
				pc.respondReconciled(w, "Payment already processed", &winner)
				return
			}
		}
		log.Error().Err(err).Str("transactionId", payment.TransactionID).Msg("payment insert failed")
		respondError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	if err := pc.stampOrder(ctx, payment.OrderID, payment.TrackingCode); err != nil {
		log.Error().Err(err).Str("orderId", payment.OrderID).Msg("order update failed after payment insert")
		respondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	log.Info().
		Str("transactionId", payment.TransactionID).
		Str("orderId", payment.OrderID).
		Str("trackingCode", payment.TrackingCode).
		Msg("payment reconciled")

	pc.respondReconciled(w, "Payment recorded successfully", &payment)
}

// stampOrder marks the referenced order paid and records the tracking code
// of the payment that won the insert. Safe to repeat: it always writes the
// winner's code.
func (pc *PaymentController) stampOrder(ctx context.Context, orderID, trackingCode string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		// Sessions minted by this server always carry a valid order id;
		// nothing to stamp otherwise.
		return nil
	}
	_, err = pc.orders.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"paymentStatus": models.PaymentStatusPaid,
			"orderStatus":   models.OrderStatusPending,
			"trackingCode":  trackingCode,
		},
	})
	return err
}

func (pc *PaymentController) respondReconciled(w http.ResponseWriter, message string, p *models.Payment) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       message,
		"transactionId": p.TransactionID,
		"trackingCode":  p.TrackingCode,
	})
}

// GetPayments returns the caller's own payment history, newest-first. The
// requested email must match the authenticated principal.
func (pc *PaymentController) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if email != middleware.EmailFromContext(r) {
		respondError(w, http.StatusForbidden, "Forbidden")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := pc.payments.Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error retrieving payments")
		return
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding payments")
		return
	}

	respondJSON(w, http.StatusOK, payments)
}
