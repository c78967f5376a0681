package shipping

// ShiprocketOrder maps to `shiprocket_orders`: one row per wellness order
// registered (or attempted) with the shipping partner.
type ShiprocketOrder struct {
	ID                   string  `json:"id"`
	OrderID              string  `json:"order_id"`
	ShiprocketOrderID    *string `json:"shiprocket_order_id,omitempty"`
	ShiprocketShipmentID *string `json:"shiprocket_shipment_id,omitempty"`
	TrackingURL          *string `json:"tracking_url,omitempty"`
	AWBCode              *string `json:"awb_code,omitempty"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"created_at,omitempty"`
	UpdatedAt            string  `json:"updated_at,omitempty"`
}

// Shipment statuses.
const (
	StatusPending    = "pending"
	StatusRegistered = "registered"
	StatusFailed     = "failed"
)
