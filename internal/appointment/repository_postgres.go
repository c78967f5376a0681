package appointment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const appointmentColumns = `id, name, email, phone, service, date, time, message, status, created_at, updated_at`

const (
	slotTakenQuery = `
		SELECT COUNT(*)
		FROM appointments
		WHERE date = $1 AND time = $2 AND status <> 'cancelled'
	`
	insertAppointmentQuery = `
		INSERT INTO appointments (id, name, email, phone, service, date, time, message, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`
	listAppointmentsQuery = `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY created_at DESC
	`
	updateAppointmentStatusQuery = `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + appointmentColumns + `
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SlotTaken runs the pre-insert availability query. Two concurrent bookers
// can still race past it; the original accepts that window.
func (r *PostgresRepository) SlotTaken(date, timeOfDay string) (bool, error) {
	var count int
	if err := r.db.QueryRow(slotTakenQuery, date, timeOfDay).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(a Appointment) (Appointment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	var createdAt, updatedAt time.Time
	err := r.db.QueryRow(insertAppointmentQuery,
		a.ID, a.Name, a.Email, a.Phone, a.Service, a.Date, a.Time, a.Message, a.Status,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return Appointment{}, err
	}
	a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	a.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return a, nil
}

func (r *PostgresRepository) List() ([]Appointment, error) {
	rows, err := r.db.Query(listAppointmentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id, status string) (Appointment, error) {
	row := r.db.QueryRow(updateAppointmentStatusQuery, status, time.Now().UTC(), id)
	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return Appointment{}, ErrNotFound
	}
	return a, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (Appointment, error) {
	var a Appointment
	var createdAt, updatedAt time.Time
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Service,
		&a.Date, &a.Time, &a.Message, &a.Status, &createdAt, &updatedAt)
	if err != nil {
		return Appointment{}, err
	}
	a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	a.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return a, nil
}
