package contact

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const contactColumns = `id, name, email, phone, subject, message, read, created_at`

const (
	insertMessageQuery = `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, read)
		VALUES ($1,$2,$3,$4,$5,$6,FALSE)
		RETURNING created_at
	`
	listMessagesQuery = `
		SELECT ` + contactColumns + `
		FROM contact_messages
		ORDER BY created_at DESC
	`
	markReadQuery = `
		UPDATE contact_messages
		SET read = TRUE
		WHERE id = $1
		RETURNING ` + contactColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(m Message) (Message, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	var createdAt time.Time
	err := r.db.QueryRow(insertMessageQuery,
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message,
	).Scan(&createdAt)
	if err != nil {
		return Message{}, err
	}
	m.Read = false
	m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return m, nil
}

func (r *PostgresRepository) List() ([]Message, error) {
	rows, err := r.db.Query(listMessagesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(id string) (Message, error) {
	row := r.db.QueryRow(markReadQuery, id)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return Message{}, ErrNotFound
	}
	return m, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (Message, error) {
	var m Message
	var createdAt time.Time
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Read, &createdAt)
	if err != nil {
		return Message{}, err
	}
	m.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return m, nil
}
