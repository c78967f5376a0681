package product

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

const productColumns = `id, name, description, detailed_description, price, image_url, images, in_stock, stock_quantity, category, dosage, ingredients, benefits, usage_instructions, weight, sku, created_at, updated_at`

const (
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (id, name, description, detailed_description, price, image_url, images, in_stock, stock_quantity, category, dosage, ingredients, benefits, usage_instructions, weight, sku)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING created_at, updated_at
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	conds := []string{}
	args := []interface{}{}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.InStock != nil {
		args = append(args, *f.InStock)
		conds = append(conds, fmt.Sprintf("in_stock = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if img := p.PrimaryImage(); img != nil {
		p.ImageURL = img
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertProductQuery,
		p.ID, p.Name, p.Description, p.DetailedDescription, p.Price,
		p.ImageURL, pq.Array(p.Images), p.InStock, p.StockQuantity,
		p.Category, p.Dosage, p.Ingredients, p.Benefits,
		p.UsageInstructions, p.Weight, p.SKU,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return p, nil
}

// Update builds a partial SET clause from the non-nil patch fields, so a
// PUT with a sparse payload does not clobber unrelated columns.
func (r *PostgresRepository) Update(id string, patch Patch) (Product, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", patch.Description)
	}
	if patch.DetailedDescription != nil {
		add("detailed_description", patch.DetailedDescription)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Images != nil {
		add("images", pq.Array(*patch.Images))
		if len(*patch.Images) > 0 {
			add("image_url", (*patch.Images)[0])
		} else {
			add("image_url", nil)
		}
	} else if patch.ImageURL != nil {
		add("image_url", patch.ImageURL)
	}
	if patch.InStock != nil {
		add("in_stock", *patch.InStock)
	}
	if patch.StockQuantity != nil {
		add("stock_quantity", *patch.StockQuantity)
	}
	if patch.Category != nil {
		add("category", patch.Category)
	}
	if patch.Dosage != nil {
		add("dosage", patch.Dosage)
	}
	if patch.Ingredients != nil {
		add("ingredients", patch.Ingredients)
	}
	if patch.Benefits != nil {
		add("benefits", patch.Benefits)
	}
	if patch.UsageInstructions != nil {
		add("usage_instructions", patch.UsageInstructions)
	}
	if patch.Weight != nil {
		add("weight", patch.Weight)
	}
	if patch.SKU != nil {
		add("sku", patch.SKU)
	}

	add("updated_at", time.Now().UTC())
	args = append(args, id)

	q := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	res, err := r.db.Exec(q, args...)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteProductQuery, id)
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

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var images pq.StringArray
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.DetailedDescription, &p.Price,
		&p.ImageURL, &images, &p.InStock, &p.StockQuantity,
		&p.Category, &p.Dosage, &p.Ingredients, &p.Benefits,
		&p.UsageInstructions, &p.Weight, &p.SKU, &createdAt, &updatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	p.Images = []string(images)
	if p.Images == nil {
		p.Images = []string{}
	}
	if img := p.PrimaryImage(); img != nil {
		p.ImageURL = img
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return p, nil
}
