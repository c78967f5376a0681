package order

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `id, payment_id, razorpay_order_id, amount, customer_name, customer_email, customer_phone, shipping_address, status, created_at, updated_at`

const (
	insertOrderQuery = `
		INSERT INTO orders (id, payment_id, razorpay_order_id, amount, customer_name, customer_email, customer_phone, shipping_address, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`
	getOrderByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	listOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
	`
	listItemsQuery = `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price_at_purchase, p.name, p.image_url
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])
		ORDER BY i.created_at
	`
	updateOrderStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + orderColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertOrderQuery,
		o.ID, o.PaymentID, o.RazorpayOrderID, o.Amount,
		o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.ShippingAddress, o.Status,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Order{}, ErrDuplicatePayment
		}
		return Order{}, err
	}
	o.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	o.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return o, nil
}

func (r *PostgresRepository) CreateItems(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	values := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*5)
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		base := i * 5
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, it.ID, it.OrderID, it.ProductID, it.Quantity, it.PriceAtPurchase)
	}
	q := `INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase) VALUES ` + strings.Join(values, ",")
	_, err := r.db.Exec(q, args...)
	return err
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	itemsByOrder, err := r.loadItems([]string{o.ID})
	if err != nil {
		return Order{}, err
	}
	o.Items = itemsByOrder[o.ID]
	return o, nil
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	itemsByOrder, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = itemsByOrder[out[i].ID]
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(id, status string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(updateOrderStatusQuery, status, time.Now().UTC(), id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) loadItems(orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(listItemsQuery, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity,
			&it.PriceAtPurchase, &it.ProductName, &it.ProductImage); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var createdAt, updatedAt time.Time
	err := row.Scan(&o.ID, &o.PaymentID, &o.RazorpayOrderID, &o.Amount,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.ShippingAddress,
		&o.Status, &createdAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}
	o.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	o.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return o, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "23505")
}
