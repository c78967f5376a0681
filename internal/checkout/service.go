package checkout

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/order"
	"github.com/ayurbliss/wellness-backend/internal/queue"
)

var (
	ErrNoItems       = errors.New("items are required")
	ErrInvalidAmount = errors.New("total amount must be greater than 0")
	ErrMissingFields = errors.New("payment verification fields are required")
	ErrBadSignature  = errors.New("invalid payment signature")
	ErrNotCaptured   = errors.New("payment not captured")
)

// CartItem is an order line as sent by the storefront. Price is in paise
// and optional; missing prices are filled by equal-splitting the amount
// the gateway reports.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     *int64 `json:"price,omitempty"`
}

// VerifyRequest carries the gateway callback plus whatever order context
// the storefront sends along.
type VerifyRequest struct {
	OrderID         string     `json:"orderId"`
	PaymentID       string     `json:"paymentId"`
	Signature       string     `json:"signature"`
	Items           []CartItem `json:"items,omitempty"`
	ProductID       string     `json:"productId,omitempty"`
	Quantity        int        `json:"quantity,omitempty"`
	CustomerName    *string    `json:"customer_name,omitempty"`
	CustomerEmail   *string    `json:"customer_email,omitempty"`
	CustomerPhone   *string    `json:"customer_phone,omitempty"`
	ShippingAddress *string    `json:"shipping_address,omitempty"`
}

// Service implements the checkout pipeline: mint a payment intent with
// the gateway, then verify the callback and persist the sale.
type Service struct {
	gateway    Gateway
	orders     order.Repository
	dispatcher queue.Dispatcher
	secret     string
	log        *zap.Logger
}

func NewService(gateway Gateway, orders order.Repository, dispatcher queue.Dispatcher, secret string, log *zap.Logger) *Service {
	return &Service{
		gateway:    gateway,
		orders:     orders,
		dispatcher: dispatcher,
		secret:     secret,
		log:        log,
	}
}

// CreateIntent creates a gateway order for the given total. Amount is in
// paise; items are only validated, the gateway order carries the total.
func (s *Service) CreateIntent(items []CartItem, amount int64) (GatewayOrder, error) {
	if len(items) == 0 {
		return GatewayOrder{}, ErrNoItems
	}
	if amount <= 0 {
		return GatewayOrder{}, ErrInvalidAmount
	}
	return s.gateway.CreateOrder(amount, "INR")
}

// VerifyAndRecord authenticates a payment callback and records the order.
// The HMAC signature is the sole proof the callback is genuine; the
// amount stored is always the one the gateway reports, never the
// client's.
func (s *Service) VerifyAndRecord(ctx context.Context, req VerifyRequest) (order.Order, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return order.Order{}, ErrMissingFields
	}
	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.secret) {
		return order.Order{}, ErrBadSignature
	}

	payment, err := s.gateway.FetchPayment(req.PaymentID)
	if err != nil {
		return order.Order{}, err
	}
	if payment.Status != "captured" {
		return order.Order{}, ErrNotCaptured
	}

	created, err := s.orders.Create(order.Order{
		PaymentID:       req.PaymentID,
		RazorpayOrderID: req.OrderID,
		Amount:          payment.Amount,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          order.StatusProcessing,
	})
	if err != nil {
		return order.Order{}, err
	}

	items := s.buildItems(created.ID, req, payment.Amount)
	if err := s.orders.CreateItems(items); err != nil {
		// the payment is real and the order row exists; losing line
		// detail is recoverable from the gateway dashboard
		s.log.Error("save order items", zap.String("order_id", created.ID), zap.Error(err))
	} else {
		created.Items = items
	}

	s.dispatchShipment(created, items)
	return created, nil
}

// buildItems resolves line prices. Explicit prices win; lines without one
// share the gateway amount equally, with the division remainder spread
// over the first lines so the sum is exact.
func (s *Service) buildItems(orderID string, req VerifyRequest, amount int64) []order.Item {
	lines := req.Items
	if len(lines) == 0 && req.ProductID != "" {
		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = []CartItem{{ProductID: req.ProductID, Quantity: qty}}
	}
	if len(lines) == 0 {
		return nil
	}

	n := int64(len(lines))
	share := amount / n
	remainder := amount % n

	items := make([]order.Item, 0, len(lines))
	for i, line := range lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := share
		if int64(i) < remainder {
			price++
		}
		if line.Price != nil {
			price = *line.Price
		}
		items = append(items, order.Item{
			OrderID:         orderID,
			ProductID:       line.ProductID,
			Quantity:        qty,
			PriceAtPurchase: price,
		})
	}
	return items
}

func (s *Service) dispatchShipment(o order.Order, items []order.Item) {
	if s.dispatcher == nil {
		return
	}
	task := queue.ShipmentTask{
		OrderID: o.ID,
		Items:   make([]queue.TaskItem, 0, len(items)),
	}
	for _, it := range items {
		task.Items = append(task.Items, queue.TaskItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.PriceAtPurchase,
		})
	}
	if o.CustomerName != nil {
		task.CustomerName = *o.CustomerName
	}
	if o.CustomerEmail != nil {
		task.CustomerEmail = *o.CustomerEmail
	}
	if o.CustomerPhone != nil {
		task.CustomerPhone = *o.CustomerPhone
	}
	if o.ShippingAddress != nil {
		task.ShippingAddress = *o.ShippingAddress
	}

	// fire and forget; the customer's confirmation must not wait on Kafka
	if err := s.dispatcher.Dispatch(context.Background(), task); err != nil {
		s.log.Error("dispatch shipment task", zap.String("order_id", o.ID), zap.Error(err))
	}
}
