package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	middleware "github.com/km-naimul/b12-a11-localchefbazaar-server-side/middlewares"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/services"
)

type fakeCheckout struct {
	session *services.CheckoutSession
	err     error
}

func (f *fakeCheckout) CreateSession(ctx context.Context, p services.CheckoutParams) (*services.CheckoutSession, error) {
	return f.session, f.err
}

func (f *fakeCheckout) GetSession(ctx context.Context, id string) (*services.CheckoutSession, error) {
	return f.session, f.err
}

var trackingPattern = regexp.MustCompile(`^LCB-\d{8}-[0-9A-F]{6}$`)

func paidSession(txID string) *services.CheckoutSession {
	return &services.CheckoutSession{
		ID:            "cs_test_123",
		PaymentStatus: services.PaymentStatusPaid,
		TransactionID: txID,
		AmountTotal:   2599,
		Currency:      "usd",
		CustomerEmail: "a@x.com",
		Metadata: map[string]string{
			"orderId":   primitive.NewObjectID().Hex(),
			"orderName": "Beef Tehari",
		},
	}
}

// stampedTrackingCode pulls the trackingCode the handler wrote to the order
// out of the captured command stream.
func stampedTrackingCode(mt *mtest.T) string {
	mt.Helper()
	for {
		evt := mt.GetStartedEvent()
		if evt == nil {
			mt.Fatal("no order update was issued")
			return ""
		}
		if evt.CommandName != "update" {
			continue
		}
		arr, ok := evt.Command.Lookup("updates").ArrayOK()
		if !ok {
			continue
		}
		vals, err := arr.Values()
		if err != nil || len(vals) == 0 {
			continue
		}
		if code, ok := vals[0].Document().Lookup("u", "$set", "trackingCode").StringValueOK(); ok {
			return code
		}
	}
}

func reconcile(pc *PaymentController, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, target, nil)
	rr := httptest.NewRecorder()
	pc.PaymentSuccess(rr, req)
	return rr
}

func TestPaymentSuccess(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing session_id", func(mt *mtest.T) {
		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{})
		rr := reconcile(pc, "/payment-success")
		assert.Equal(mt, http.StatusBadRequest, rr.Code)
	})

	mt.Run("provider failure surfaces as upstream error", func(mt *mtest.T) {
		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{err: errors.New("stripe unreachable")})
		rr := reconcile(pc, "/payment-success?session_id=cs_test_123")
		assert.Equal(mt, http.StatusInternalServerError, rr.Code)
	})

	mt.Run("already processed short-circuits with original code", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "db.payments", mtest.FirstBatch, bson.D{
			{Key: "transactionId", Value: "pi_123"},
			{Key: "trackingCode", Value: "LCB-20260829-ABCDEF"},
		}))

		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{session: paidSession("pi_123")})
		rr := reconcile(pc, "/payment-success?session_id=cs_test_123")

		require.Equal(mt, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(mt, true, resp["success"])
		assert.Equal(mt, "pi_123", resp["transactionId"])
		assert.Equal(mt, "LCB-20260829-ABCDEF", resp["trackingCode"])
	})

	mt.Run("unpaid session mutates nothing", func(mt *mtest.T) {
		sess := paidSession("")
		sess.PaymentStatus = "unpaid"

		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{session: sess})
		rr := reconcile(pc, "/payment-success?session_id=cs_test_123")

		require.Equal(mt, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(mt, false, resp["success"])
	})

	mt.Run("paid session records payment and mints tracking code", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.payments", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{session: paidSession("pi_456")})
		rr := reconcile(pc, "/payment-success?session_id=cs_test_123")

		require.Equal(mt, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(mt, true, resp["success"])
		assert.Equal(mt, "pi_456", resp["transactionId"])
		assert.Regexp(mt, trackingPattern, resp["trackingCode"])

		// The order must be stamped with the exact code the caller was told.
		assert.Equal(mt, resp["trackingCode"], stampedTrackingCode(mt))
	})

	mt.Run("losing a duplicate-insert race returns the winner's code", func(mt *mtest.T) {
		orderID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.payments", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: payments index: transactionId_1",
			}),
			mtest.CreateCursorResponse(1, "db.payments", mtest.FirstBatch, bson.D{
				{Key: "transactionId", Value: "pi_789"},
				{Key: "trackingCode", Value: "LCB-20260829-C0FFEE"},
				{Key: "orderId", Value: orderID.Hex()},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{session: paidSession("pi_789")})
		rr := reconcile(pc, "/payment-success?session_id=cs_test_123")

		require.Equal(mt, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(mt, true, resp["success"])
		assert.Equal(mt, "Payment already processed", resp["message"])
		assert.Equal(mt, "LCB-20260829-C0FFEE", resp["trackingCode"])

		// The loser never stamps its own minted code: the only order update
		// issued carries the winner's code, matching the response.
		assert.Equal(mt, "LCB-20260829-C0FFEE", stampedTrackingCode(mt))
	})
}

func TestGetPayments(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("email mismatch is forbidden", func(mt *mtest.T) {
		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{})

		req := httptest.NewRequest(http.MethodGet, "/payments?email=a@x.com", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.EmailKey, "b@y.com"))

		rr := httptest.NewRecorder()
		pc.GetPayments(rr, req)

		assert.Equal(mt, http.StatusForbidden, rr.Code)
	})

	mt.Run("matching principal gets own history", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, "db.payments", mtest.FirstBatch, bson.D{
			{Key: "userEmail", Value: "a@x.com"},
			{Key: "transactionId", Value: "pi_1"},
		})
		second := mtest.CreateCursorResponse(0, "db.payments", mtest.NextBatch)
		mt.AddMockResponses(first, second)

		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{})

		req := httptest.NewRequest(http.MethodGet, "/payments?email=a@x.com", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.EmailKey, "a@x.com"))

		rr := httptest.NewRecorder()
		pc.GetPayments(rr, req)

		require.Equal(mt, http.StatusOK, rr.Code)

		var payments []map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &payments))
		require.Len(mt, payments, 1)
		assert.Equal(mt, "pi_1", payments[0]["transactionId"])
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns redirect url", func(mt *mtest.T) {
		fake := &fakeCheckout{session: &services.CheckoutSession{URL: "https://checkout.example/cs_test"}}
		pc := NewPaymentController(mt.Coll, mt.Coll, fake)

		body := `{"price":25.99,"orderName":"Beef Tehari","userEmail":"a@x.com","orderId":"` + primitive.NewObjectID().Hex() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader([]byte(body)))

		rr := httptest.NewRecorder()
		pc.CreateCheckoutSession(rr, req)

		require.Equal(mt, http.StatusOK, rr.Code)

		var resp map[string]interface{}
		require.NoError(mt, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(mt, "https://checkout.example/cs_test", resp["url"])
	})

	mt.Run("missing fields rejected", func(mt *mtest.T) {
		pc := NewPaymentController(mt.Coll, mt.Coll, &fakeCheckout{})

		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader([]byte(`{"price":10}`)))

		rr := httptest.NewRecorder()
		pc.CreateCheckoutSession(rr, req)

		assert.Equal(mt, http.StatusBadRequest, rr.Code)
	})
}
