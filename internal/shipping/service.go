package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayurbliss/wellness-backend/internal/queue"
)

// Service registers paid orders with the shipping partner. Shipping is
// best-effort: a failed registration is recorded and logged, never
// surfaced to the customer as a checkout failure.
type Service struct {
	repo   Repository
	client *Client // nil when credentials are not configured
	log    *zap.Logger
}

func NewService(repo Repository, client *Client, log *zap.Logger) *Service {
	return &Service{repo: repo, client: client, log: log}
}

// Register creates the partner order for one shipment task and persists
// the result. Without credentials it stores a local placeholder so the
// admin dashboard still shows the shipment.
func (s *Service) Register(ctx context.Context, task queue.ShipmentTask) (ShiprocketOrder, error) {
	if s.client == nil {
		placeholder := "SR_" + uuid.NewString()
		return s.repo.Create(ShiprocketOrder{
			OrderID:           task.OrderID,
			ShiprocketOrderID: &placeholder,
			Status:            StatusPending,
		})
	}

	resp, err := s.client.CreateOrder(ctx, buildOrderRequest(task))
	if err != nil {
		if _, createErr := s.repo.Create(ShiprocketOrder{
			OrderID: task.OrderID,
			Status:  StatusFailed,
		}); createErr != nil {
			s.log.Error("record failed shipment", zap.String("order_id", task.OrderID), zap.Error(createErr))
		}
		return ShiprocketOrder{}, err
	}

	shipment := ShiprocketOrder{
		OrderID: task.OrderID,
		Status:  StatusRegistered,
	}
	if v := resp.OrderID.String(); v != "" {
		shipment.ShiprocketOrderID = &v
	}
	if v := resp.ShipmentID.String(); v != "" {
		shipment.ShiprocketShipmentID = &v
	}
	if resp.AWBCode != "" {
		awb := resp.AWBCode
		shipment.AWBCode = &awb
		tracking := "https://shiprocket.co/tracking/" + resp.AWBCode
		shipment.TrackingURL = &tracking
	}
	return s.repo.Create(shipment)
}

// Track returns the latest shipment recorded for an order.
func (s *Service) Track(orderID string) (ShiprocketOrder, error) {
	return s.repo.GetByOrderID(orderID)
}

// HandleTask adapts Register to the shipment-task queue. Errors are
// logged and swallowed so a flaky partner API never wedges the consumer.
func (s *Service) HandleTask(ctx context.Context, task queue.ShipmentTask) {
	if _, err := s.Register(ctx, task); err != nil {
		s.log.Error("register shipment", zap.String("order_id", task.OrderID), zap.Error(err))
	}
}

func buildOrderRequest(task queue.ShipmentTask) OrderRequest {
	items := make([]OrderItem, 0, len(task.Items))
	var subTotal float64
	for _, it := range task.Items {
		price := float64(it.Price) / 100
		items = append(items, OrderItem{
			Name:         "Product " + it.ProductID,
			SKU:          it.ProductID,
			Units:        it.Quantity,
			SellingPrice: price,
		})
		subTotal += price * float64(it.Quantity)
	}

	name := task.CustomerName
	if name == "" {
		name = "Customer"
	}
	return OrderRequest{
		OrderID:           task.OrderID,
		OrderDate:         time.Now().UTC().Format("2006-01-02 15:04"),
		PickupLocation:    "Primary",
		BillingName:       name,
		BillingLastName:   "",
		BillingAddress:    task.ShippingAddress,
		BillingCountry:    "India",
		BillingEmail:      task.CustomerEmail,
		BillingPhone:      task.CustomerPhone,
		ShippingIsBilling: true,
		OrderItems:        items,
		PaymentMethod:     "Prepaid",
		SubTotal:          subTotal,
		Length:            10,
		Breadth:           10,
		Height:            10,
		Weight:            0.5,
	}
}
