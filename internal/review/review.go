package review

// Review statuses. Every client submission starts as StatusPending and
// only moderation moves it to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Review is a customer product review, maps to `product_reviews`.
type Review struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	UserName   string  `json:"user_name"`
	UserEmail  string  `json:"user_email"`
	Rating     int     `json:"rating"`
	ReviewText string  `json:"review_text"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
