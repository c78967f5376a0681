package queue

import (
	"context"
	"fmt"
)

// ShipmentTask asks the shipping worker to register one order with the
// shipping partner. It carries everything the partner API needs so the
// worker never has to read the order back.
type ShipmentTask struct {
	OrderID         string     `json:"order_id"`
	Items           []TaskItem `json:"items"`
	CustomerName    string     `json:"customer_name,omitempty"`
	CustomerEmail   string     `json:"customer_email,omitempty"`
	CustomerPhone   string     `json:"customer_phone,omitempty"`
	ShippingAddress string     `json:"shipping_address,omitempty"`
}

// TaskItem is one order line. Price is in paise.
type TaskItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Validate guards the consumer against malformed messages.
func (t ShipmentTask) Validate() error {
	if t.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	return nil
}

// Dispatcher hands a shipment task to whatever transport is configured.
// Dispatch must never block the checkout path on the actual registration.
type Dispatcher interface {
	Dispatch(ctx context.Context, task ShipmentTask) error
}
