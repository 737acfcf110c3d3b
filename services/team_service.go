package services

import (
	"context"
	"fmt"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
	"github.com/khelmitra/scoreboard/storage"
)

type TeamService interface {
	// ListTeams returns every team, or only one sport's teams when sportID
	// is set.
	ListTeams(ctx context.Context, sportID *int) ([]models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) ListTeams(ctx context.Context, sportID *int) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		resolveTeamLogo(&teams[i], s.uploader)
	}
	return teams, nil
}

func resolveTeamLogo(team *models.Team, uploader storage.FileUploader) {
	if team.LogoKey != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}
