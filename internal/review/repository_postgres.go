package review

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const reviewColumns = `id, product_id, user_name, user_email, rating, review_text, status, admin_notes, created_at, updated_at`

const (
	listReviewsByProductQuery = `
		SELECT ` + reviewColumns + `
		FROM product_reviews
		WHERE product_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`
	listReviewsQuery = `
		SELECT ` + reviewColumns + `
		FROM product_reviews
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC
	`
	insertReviewQuery = `
		INSERT INTO product_reviews (id, product_id, user_name, user_email, rating, review_text, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`
	moderateReviewQuery = `
		UPDATE product_reviews
		SET status = $1,
			admin_notes = COALESCE($2, admin_notes),
			updated_at = $3
		WHERE id = $4
		RETURNING ` + reviewColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(productID, status string) ([]Review, error) {
	rows, err := r.db.Query(listReviewsByProductQuery, productID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *PostgresRepository) List(status string) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *PostgresRepository) Create(rv Review) (Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertReviewQuery,
		rv.ID, rv.ProductID, rv.UserName, rv.UserEmail, rv.Rating, rv.ReviewText, rv.Status,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return Review{}, err
	}
	rv.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	rv.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return rv, nil
}

func (r *PostgresRepository) Moderate(id, status string, adminNotes *string) (Review, error) {
	row := r.db.QueryRow(moderateReviewQuery, status, adminNotes, time.Now().UTC(), id)
	rv, err := scanReview(row)
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	return rv, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (Review, error) {
	var rv Review
	var createdAt, updatedAt time.Time
	err := row.Scan(&rv.ID, &rv.ProductID, &rv.UserName, &rv.UserEmail,
		&rv.Rating, &rv.ReviewText, &rv.Status, &rv.AdminNotes, &createdAt, &updatedAt)
	if err != nil {
		return Review{}, err
	}
	rv.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	rv.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return rv, nil
}

func collectReviews(rows *sql.Rows) ([]Review, error) {
	out := make([]Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
