package gallery

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const galleryColumns = `id, image_url, title, description, category, display_order, created_at, updated_at`

const (
	getImageByIDQuery = `
		SELECT ` + galleryColumns + `
		FROM gallery_images
		WHERE id = $1
	`
	insertImageQuery = `
		INSERT INTO gallery_images (id, image_url, title, description, category, display_order)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`
	deleteImageQuery = `DELETE FROM gallery_images WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(category string) ([]Image, error) {
	q := `SELECT ` + galleryColumns + ` FROM gallery_images`
	args := []interface{}{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY display_order ASC, created_at DESC`

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Image, error) {
	img, err := scanImage(r.db.QueryRow(getImageByIDQuery, id))
	if err == sql.ErrNoRows {
		return Image{}, ErrNotFound
	}
	return img, err
}

func (r *PostgresRepository) Create(img Image) (Image, error) {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertImageQuery,
		img.ID, img.ImageURL, img.Title, img.Description, img.Category, img.DisplayOrder,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return Image{}, err
	}
	img.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	img.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return img, nil
}

func (r *PostgresRepository) Update(id string, patch Patch) (Image, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Title != nil {
		add("title", patch.Title)
	}
	if patch.Description != nil {
		add("description", patch.Description)
	}
	if patch.Category != nil {
		add("category", patch.Category)
	}
	if patch.DisplayOrder != nil {
		add("display_order", *patch.DisplayOrder)
	}
	add("updated_at", time.Now().UTC())
	args = append(args, id)

	q := fmt.Sprintf("UPDATE gallery_images SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), galleryColumns)
	img, err := scanImage(r.db.QueryRow(q, args...))
	if err == sql.ErrNoRows {
		return Image{}, ErrNotFound
	}
	return img, err
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteImageQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImage(row rowScanner) (Image, error) {
	var img Image
	var createdAt, updatedAt time.Time
	err := row.Scan(&img.ID, &img.ImageURL, &img.Title, &img.Description,
		&img.Category, &img.DisplayOrder, &createdAt, &updatedAt)
	if err != nil {
		return Image{}, err
	}
	img.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	img.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return img, nil
}
