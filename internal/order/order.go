package order

// Order statuses. New orders from the checkout pipeline start as
// StatusProcessing; everything else is set by later admin action.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusFailed     = "failed"
	StatusCompleted  = "completed"
)

// Order maps to `orders`. Amount is the gateway-reported total in paise,
// never the client-supplied one.
type Order struct {
	ID              string  `json:"id"`
	PaymentID       string  `json:"payment_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          int64   `json:"amount"`
	CustomerName    *string `json:"customer_name,omitempty"`
	CustomerEmail   *string `json:"customer_email,omitempty"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	Status          string  `json:"status"`
	Items           []Item  `json:"items,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// Item maps to `order_items`. PriceAtPurchase is captured at sale time so
// later catalog price changes never rewrite history.
type Item struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	ProductID       string  `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase int64   `json:"price_at_purchase"`
	ProductName     *string `json:"product_name,omitempty"`
	ProductImage    *string `json:"product_image,omitempty"`
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusCancelled, StatusFailed, StatusCompleted:
		return true
	}
	return false
}
