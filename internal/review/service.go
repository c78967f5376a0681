package review

import "errors"

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus = errors.New("invalid status")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListApproved returns the reviews visible on a product page.
func (s *Service) ListApproved(productID string) ([]Review, error) {
	return s.repo.ListByProduct(productID, StatusApproved)
}

func (s *Service) List(status string) ([]Review, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(status)
}

// Submit stores a new review. The status is always forced to pending no
// matter what the client sent.
func (s *Service) Submit(rv Review) (Review, error) {
	if rv.UserName == "" || rv.UserEmail == "" || rv.ReviewText == "" {
		return Review{}, ErrMissingFields
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	rv.Status = StatusPending
	rv.AdminNotes = nil
	return s.repo.Create(rv)
}

func (s *Service) Moderate(id, status string, adminNotes *string) (Review, error) {
	if !validStatus(status) {
		return Review{}, ErrInvalidStatus
	}
	return s.repo.Moderate(id, status, adminNotes)
}
