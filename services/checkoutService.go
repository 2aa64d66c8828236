package services

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CheckoutParams describes the single-line-item session the order flow needs.
type CheckoutParams struct {
	Amount        int64 // minor units
	OrderName     string
	CustomerEmail string
	OrderID       string
}

// CheckoutSession is the provider-neutral view of a checkout session. The
// reconciliation handler only ever reads these fields.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	TransactionID string
	AmountTotal   int64
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// PaymentStatusPaid is the provider's terminal "money received" status.
const PaymentStatusPaid = "paid"

// CheckoutProvider abstracts the hosted-checkout API so handlers and tests
// never call the network directly.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// StripeCheckout implements CheckoutProvider against the Stripe API.
type StripeCheckout struct {
	api        *client.API
	siteDomain string
}

func NewStripeCheckout(secretKey, siteDomain string) *StripeCheckout {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCheckout{api: api, siteDomain: siteDomain}
}

func (s *StripeCheckout) CreateSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(p.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.OrderName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
		SuccessURL:    stripe.String(s.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.siteDomain + "/payment-cancelled"),
	}
	params.Context = ctx
	params.AddMetadata("orderId", p.OrderID)
	params.AddMetadata("orderName", p.OrderName)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func (s *StripeCheckout) GetSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	sess, err := s.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	} else if sess.CustomerEmail != "" {
		out.CustomerEmail = sess.CustomerEmail
	}
	return out
}
