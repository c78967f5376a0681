package shipping

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const shipmentColumns = `id, order_id, shiprocket_order_id, shiprocket_shipment_id, tracking_url, awb_code, status, created_at, updated_at`

const (
	insertShipmentQuery = `
		INSERT INTO shiprocket_orders (id, order_id, shiprocket_order_id, shiprocket_shipment_id, tracking_url, awb_code, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`
	getShipmentByOrderQuery = `
		SELECT ` + shipmentColumns + `
		FROM shiprocket_orders
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(s ShiprocketOrder) (ShiprocketOrder, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertShipmentQuery,
		s.ID, s.OrderID, s.ShiprocketOrderID, s.ShiprocketShipmentID,
		s.TrackingURL, s.AWBCode, s.Status,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return ShiprocketOrder{}, err
	}
	s.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	s.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return s, nil
}

func (r *PostgresRepository) GetByOrderID(orderID string) (ShiprocketOrder, error) {
	var (
		s                    ShiprocketOrder
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(getShipmentByOrderQuery, orderID).Scan(
		&s.ID, &s.OrderID, &s.ShiprocketOrderID, &s.ShiprocketShipmentID,
		&s.TrackingURL, &s.AWBCode, &s.Status, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return ShiprocketOrder{}, ErrNotFound
	}
	if err != nil {
		return ShiprocketOrder{}, err
	}
	s.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	s.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return s, nil
}
