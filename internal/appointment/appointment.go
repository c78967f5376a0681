package appointment

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment is a clinic booking, maps to `appointments`. Date and Time
// are the client-facing slot strings (YYYY-MM-DD, HH:MM); the slot
// uniqueness check treats the pair as opaque.
type Appointment struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Service   string  `json:"service"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Message   *string `json:"message,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}
