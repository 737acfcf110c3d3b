package services

import (
	"context"
	"time"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, exec repositories.SQLExecutor, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, exec repositories.SQLExecutor, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	return nil
}

type fakeProfileRepo struct {
	nextID   int
	profiles map[int]*models.UserProfile // keyed by user id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{nextID: 1, profiles: map[int]*models.UserProfile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, exec repositories.SQLExecutor, profile *models.UserProfile) error {
	profile.ID = r.nextID
	r.nextID++
	copied := *profile
	r.profiles[profile.UserID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, exec repositories.SQLExecutor, profile *models.UserProfile) error {
	stored, ok := r.profiles[profile.UserID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	stored.Bio = profile.Bio
	stored.PictureKey = profile.PictureKey
	return nil
}

func (r *fakeProfileRepo) ReplaceFavoriteTeams(ctx context.Context, exec repositories.SQLExecutor, profileID int, teamIDs []int) error {
	for _, profile := range r.profiles {
		if profile.ID == profileID {
			profile.FavoriteTeamIDs = teamIDs
			return nil
		}
	}
	return repositories.ErrProfileNotFound
}

func (r *fakeProfileRepo) ReplaceFavoriteSports(ctx context.Context, exec repositories.SQLExecutor, profileID int, sportIDs []int) error {
	for _, profile := range r.profiles {
		if profile.ID == profileID {
			profile.FavoriteSportIDs = sportIDs
			return nil
		}
	}
	return repositories.ErrProfileNotFound
}

type fakeTokenRepo struct {
	byUser map[int]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byUser: map[int]string{}}
}

func (r *fakeTokenRepo) GetOrCreate(ctx context.Context, userID int, candidateKey string) (string, error) {
	if key, ok := r.byUser[userID]; ok {
		return key, nil
	}
	r.byUser[userID] = candidateKey
	return candidateKey, nil
}

func (r *fakeTokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	for userID, stored := range r.byUser {
		if stored == key {
			return &models.AuthToken{Key: key, UserID: userID}, nil
		}
	}
	return nil, repositories.ErrTokenNotFound
}

type fakeSportRepo struct {
	sports map[int]*models.Sport
}

func newFakeSportRepo() *fakeSportRepo {
	return &fakeSportRepo{sports: map[int]*models.Sport{}}
}

func (r *fakeSportRepo) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, ok := r.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (r *fakeSportRepo) GetAll(ctx context.Context) ([]models.Sport, error) {
	all := make([]models.Sport, 0, len(r.sports))
	for _, sport := range r.sports {
		all = append(all, *sport)
	}
	return all, nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[int]*models.Team{}}
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(ctx context.Context, sportID *int) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		if sportID != nil && team.SportID != *sportID {
			continue
		}
		teams = append(teams, *team)
	}
	return teams, nil
}

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[int]*models.Match{}}
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) ListByStatus(ctx context.Context, status models.MatchStatus, sportID *int) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, match := range r.matches {
		if match.Status != status {
			continue
		}
		if sportID != nil && match.SportID != *sportID {
			continue
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.MatchStatus) error {
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Status = status
	return nil
}

type fakeScoreRepo struct {
	nextID int
	clock  time.Time
	scores []models.Score
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{nextID: 1, clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakeScoreRepo) Create(ctx context.Context, exec repositories.SQLExecutor, score *models.Score) error {
	score.ID = r.nextID
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	score.Timestamp = r.clock
	r.scores = append(r.scores, *score)
	return nil
}

func (r *fakeScoreRepo) ListByMatch(ctx context.Context, matchID int) ([]models.Score, error) {
	scores := make([]models.Score, 0)
	for _, score := range r.scores {
		if score.MatchID == matchID {
			scores = append(scores, score)
		}
	}
	return scores, nil
}

func (r *fakeScoreRepo) LatestByMatchIDs(ctx context.Context, matchIDs []int) (map[int]models.Score, error) {
	wanted := make(map[int]bool, len(matchIDs))
	for _, id := range matchIDs {
		wanted[id] = true
	}
	latest := make(map[int]models.Score)
	for _, score := range r.scores {
		if !wanted[score.MatchID] {
			continue
		}
		if current, ok := latest[score.MatchID]; !ok || score.Timestamp.After(current.Timestamp) {
			latest[score.MatchID] = score
		}
	}
	return latest, nil
}
