package services

import (
	"log"

	"photohub/internal/geocode"
	"photohub/internal/models"
	"photohub/internal/repositories"
)

// Geocoder — обратное геокодирование координат (см. internal/geocode).
type Geocoder interface {
	Resolve(latitude, longitude float64) (geocode.Address, error)
}

type StudioService interface {
	CreateStudio(studio *models.Studio) error
	GetStudioByID(id int) (*models.Studio, error)
	UpdateStudio(studio *models.Studio) error
	DeleteStudio(id int) error
	ListStudios(city string, limit, offset int) ([]*models.Studio, error)
	ListNewest(limit int) ([]*models.Studio, error)
}

type studioService struct {
	repo     repositories.StudioRepository
	geocoder Geocoder
}

func NewStudioService(repo repositories.StudioRepository, geocoder Geocoder) StudioService {
	return &studioService{repo: repo, geocoder: geocoder}
}

// resolveLocation — город/район по координатам. Сбой геокодера не мешает
// сохранению студии: поля просто остаются пустыми.
func (s *studioService) resolveLocation(studio *models.Studio) {
	if s.geocoder == nil || (studio.Latitude == 0 && studio.Longitude == 0) {
		return
	}
	addr, err := s.geocoder.Resolve(studio.Latitude, studio.Longitude)
	if err != nil {
		log.Printf("[studio][geocode] failed: lat=%f lon=%f err=%v", studio.Latitude, studio.Longitude, err)
		return
	}
	studio.City = addr.City
	studio.District = addr.District
}

func (s *studioService) CreateStudio(studio *models.Studio) error {
	s.resolveLocation(studio)
	return s.repo.Create(studio)
}

func (s *studioService) GetStudioByID(id int) (*models.Studio, error) {
	return s.repo.GetByID(id)
}

func (s *studioService) UpdateStudio(studio *models.Studio) error {
	s.resolveLocation(studio)
	return s.repo.Update(studio)
}

func (s *studioService) DeleteStudio(id int) error {
	return s.repo.Delete(id)
}

func (s *studioService) ListStudios(city string, limit, offset int) ([]*models.Studio, error) {
	if city != "" {
		return s.repo.ListByCity(city, limit, offset)
	}
	return s.repo.List(limit, offset)
}

func (s *studioService) ListNewest(limit int) ([]*models.Studio, error) {
	return s.repo.ListNewest(limit)
}
