package checkout

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/google/uuid"
)

// GatewayOrder is a payment-intent order created with the gateway.
// Amount is in paise.
type GatewayOrder struct {
	ID      string
	Amount  int64
	Receipt string
}

// Payment is the gateway's record of a payment. Amount is the amount the
// customer actually paid, in paise; it is the only total we trust.
type Payment struct {
	ID      string
	OrderID string
	Amount  int64
	Status  string
}

// Gateway abstracts the payment provider so the checkout service can be
// tested without live Razorpay credentials.
type Gateway interface {
	CreateOrder(amount int64, currency string) (GatewayOrder, error)
	FetchPayment(paymentID string) (Payment, error)
}

// RazorpayGateway implements Gateway on the official Razorpay client.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(amount int64, currency string) (GatewayOrder, error) {
	receipt := "rcpt_" + uuid.NewString()
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return GatewayOrder{}, err
	}

	id, _ := body["id"].(string)
	if id == "" {
		return GatewayOrder{}, fmt.Errorf("razorpay order response missing id")
	}
	return GatewayOrder{ID: id, Amount: numberField(body, "amount"), Receipt: receipt}, nil
}

func (g *RazorpayGateway) FetchPayment(paymentID string) (Payment, error) {
	body, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return Payment{}, err
	}

	id, _ := body["id"].(string)
	orderID, _ := body["order_id"].(string)
	status, _ := body["status"].(string)
	return Payment{
		ID:      id,
		OrderID: orderID,
		Amount:  numberField(body, "amount"),
		Status:  status,
	}, nil
}

// numberField reads a numeric field from a decoded JSON map. Razorpay
// amounts come back as float64 after JSON decoding.
func numberField(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
