package appointment

import "errors"

var (
	ErrMissingFields = errors.New("all required fields must be provided")
	ErrSlotTaken     = errors.New("time slot already booked")
	ErrInvalidStatus = errors.New("invalid status")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Book validates the request, checks slot availability and stores the
// appointment with status pending.
func (s *Service) Book(a Appointment) (Appointment, error) {
	if a.Name == "" || a.Email == "" || a.Phone == "" || a.Service == "" || a.Date == "" || a.Time == "" {
		return Appointment{}, ErrMissingFields
	}

	taken, err := s.repo.SlotTaken(a.Date, a.Time)
	if err != nil {
		return Appointment{}, err
	}
	if taken {
		return Appointment{}, ErrSlotTaken
	}

	a.Status = StatusPending
	return s.repo.Create(a)
}

func (s *Service) List() ([]Appointment, error) {
	return s.repo.List()
}

func (s *Service) UpdateStatus(id, status string) (Appointment, error) {
	if !validStatus(status) {
		return Appointment{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(id, status)
}
