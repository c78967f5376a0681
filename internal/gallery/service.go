package gallery

import "errors"

var (
	ErrMissingImageURL = errors.New("image_url is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(category string) ([]Image, error) {
	return s.repo.List(category)
}

func (s *Service) GetByID(id string) (Image, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(img Image) (Image, error) {
	if img.ImageURL == "" {
		return Image{}, ErrMissingImageURL
	}
	return s.repo.Create(img)
}

func (s *Service) Update(id string, patch Patch) (Image, error) {
	return s.repo.Update(id, patch)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
