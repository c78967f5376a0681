package contact

import "errors"

var (
	ErrMissingFields = errors.New("all fields are required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(m Message) (Message, error) {
	if m.Name == "" || m.Email == "" || m.Phone == "" || m.Subject == "" || m.Message == "" {
		return Message{}, ErrMissingFields
	}
	m.Read = false
	return s.repo.Create(m)
}

func (s *Service) List() ([]Message, error) {
	return s.repo.List()
}

func (s *Service) MarkRead(id string) (Message, error) {
	return s.repo.MarkRead(id)
}
