package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
	"github.com/khelmitra/scoreboard/storage"
	"golang.org/x/sync/errgroup"
)

type MatchService interface {
	// ListMatches returns matches with the given status, optionally narrowed
	// to one sport, each with denormalized sport/team names and the latest
	// score (nil when no score has been posted yet).
	ListMatches(ctx context.Context, status models.MatchStatus, sportID *int) ([]MatchListItem, error)
	// GetMatchDetail returns the match with nested sport and team objects and
	// the full score history in insertion order.
	GetMatchDetail(ctx context.Context, id int) (*MatchDetail, error)
	// UpdateScore appends a score entry on behalf of a referee and flips the
	// match to live if it is not live already. Check order is part of the
	// contract: referee first (403), then match existence (404), then input
	// validation (400).
	UpdateScore(ctx context.Context, userID, matchID int, input UpdateScoreInput) (*models.Score, error)
}

// CurrentScore is the latest score entry of a match, flattened for list views.
type CurrentScore struct {
	TeamA  int     `json:"team_a"`
	TeamB  int     `json:"team_b"`
	Period *string `json:"period"`
}

type MatchListItem struct {
	ID           int                `json:"id"`
	Title        string             `json:"title"`
	SportID      int                `json:"sport"`
	SportName    string             `json:"sport_name"`
	TeamAID      int                `json:"team_a"`
	TeamAName    string             `json:"team_a_name"`
	TeamALogo    *string            `json:"team_a_logo"`
	TeamBID      int                `json:"team_b"`
	TeamBName    string             `json:"team_b_name"`
	TeamBLogo    *string            `json:"team_b_logo"`
	StartTime    time.Time          `json:"start_time"`
	Status       models.MatchStatus `json:"status"`
	Venue        *string            `json:"venue"`
	CurrentScore *CurrentScore      `json:"current_score"`
}

type MatchDetail struct {
	models.Match
	Scores []models.Score `json:"scores"`
}

// UpdateScoreInput is the body of a score submission. Match is accepted but
// ignored: the path parameter always wins.
type UpdateScoreInput struct {
	TeamAScore int     `json:"team_a_score" validate:"gte=0"`
	TeamBScore int     `json:"team_b_score" validate:"gte=0"`
	Period     *string `json:"period" validate:"omitempty,max=50"`
	Match      int     `json:"match"`
}

type matchService struct {
	txRunner    repositories.TxRunner
	matchRepo   repositories.MatchRepository
	scoreRepo   repositories.ScoreRepository
	sportRepo   repositories.SportRepository
	teamRepo    repositories.TeamRepository
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewMatchService(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.ScoreRepository,
	sportRepo repositories.SportRepository,
	teamRepo repositories.TeamRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
) MatchService {
	return &matchService{
		txRunner:    txRunner,
		matchRepo:   matchRepo,
		scoreRepo:   scoreRepo,
		sportRepo:   sportRepo,
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

func (s *matchService) ListMatches(ctx context.Context, status models.MatchStatus, sportID *int) ([]MatchListItem, error) {
	matches, err := s.matchRepo.ListByStatus(ctx, status, sportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s matches: %w", status, err)
	}

	matchIDs := make([]int, 0, len(matches))
	for _, match := range matches {
		matchIDs = append(matchIDs, match.ID)
	}
	latest, err := s.scoreRepo.LatestByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load current scores: %w", err)
	}

	items := make([]MatchListItem, 0, len(matches))
	for _, match := range matches {
		item := MatchListItem{
			ID:        match.ID,
			Title:     match.Title,
			SportID:   match.SportID,
			SportName: match.Sport.Name,
			TeamAID:   match.TeamAID,
			TeamAName: match.TeamA.Name,
			TeamBID:   match.TeamBID,
			TeamBName: match.TeamB.Name,
			StartTime: match.StartTime,
			Status:    match.Status,
			Venue:     match.Venue,
		}
		if match.TeamA.LogoKey != nil {
			url := s.uploader.GetPublicURL(*match.TeamA.LogoKey)
			item.TeamALogo = &url
		}
		if match.TeamB.LogoKey != nil {
			url := s.uploader.GetPublicURL(*match.TeamB.LogoKey)
			item.TeamBLogo = &url
		}
		if score, ok := latest[match.ID]; ok {
			item.CurrentScore = &CurrentScore{
				TeamA:  score.TeamAScore,
				TeamB:  score.TeamBScore,
				Period: score.Period,
			}
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *matchService) GetMatchDetail(ctx context.Context, id int) (*MatchDetail, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	detail := &MatchDetail{Match: *match}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sport, err := s.sportRepo.GetByID(gCtx, match.SportID)
		if err != nil {
			return fmt.Errorf("failed to load sport %d: %w", match.SportID, err)
		}
		resolveSportIcon(sport, s.uploader)
		detail.Sport = sport
		return nil
	})
	g.Go(func() error {
		team, err := s.teamRepo.GetByID(gCtx, match.TeamAID)
		if err != nil {
			return fmt.Errorf("failed to load team %d: %w", match.TeamAID, err)
		}
		resolveTeamLogo(team, s.uploader)
		detail.TeamA = team
		return nil
	})
	g.Go(func() error {
		team, err := s.teamRepo.GetByID(gCtx, match.TeamBID)
		if err != nil {
			return fmt.Errorf("failed to load team %d: %w", match.TeamBID, err)
		}
		resolveTeamLogo(team, s.uploader)
		detail.TeamB = team
		return nil
	})
	g.Go(func() error {
		scores, err := s.scoreRepo.ListByMatch(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load score history: %w", err)
		}
		detail.Scores = scores
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *matchService) UpdateScore(ctx context.Context, userID, matchID int, input UpdateScoreInput) (*models.Score, error) {
	// Permission check comes first: a non-referee gets a 403 even for a
	// nonexistent match.
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrScoreUpdateForbidden
		}
		return nil, fmt.Errorf("failed to load profile of user %d: %w", userID, err)
	}
	if !profile.IsReferee {
		return nil, ErrScoreUpdateForbidden
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	if err := checkStruct(input); err != nil {
		return nil, err
	}

	score := &models.Score{
		MatchID:    match.ID, // path parameter wins over any body value
		TeamAScore: input.TeamAScore,
		TeamBScore: input.TeamBScore,
		Period:     input.Period,
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.scoreRepo.Create(ctx, exec, score); err != nil {
			return fmt.Errorf("failed to create score: %w", err)
		}
		// Posting a score always makes the match live, even from completed
		// or cancelled. Matches the upstream product behavior.
		if match.Status != models.MatchStatusLive {
			if err := s.matchRepo.UpdateStatus(ctx, exec, match.ID, models.MatchStatusLive); err != nil {
				return fmt.Errorf("failed to update match status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return score, nil
}
