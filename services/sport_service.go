package services

import (
	"context"
	"fmt"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
	"github.com/khelmitra/scoreboard/storage"
)

type SportService interface {
	GetAllSports(ctx context.Context) ([]models.Sport, error)
}

type sportService struct {
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
}

func NewSportService(sportRepo repositories.SportRepository, uploader storage.FileUploader) SportService {
	return &sportService{
		sportRepo: sportRepo,
		uploader:  uploader,
	}
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	for i := range sports {
		resolveSportIcon(&sports[i], s.uploader)
	}
	return sports, nil
}

func resolveSportIcon(sport *models.Sport, uploader storage.FileUploader) {
	if sport.IconKey != nil {
		url := uploader.GetPublicURL(*sport.IconKey)
		sport.IconURL = &url
	}
}
