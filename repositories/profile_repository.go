package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/khelmitra/scoreboard/models"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound        = errors.New("user profile not found")
	ErrProfileFavoriteInvalid = errors.New("favorite references an unknown entity")
)

type ProfileRepository interface {
	Create(ctx context.Context, exec SQLExecutor, profile *models.UserProfile) error
	// GetByUserID loads the profile together with its favorite team/sport ids.
	GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error)
	Update(ctx context.Context, exec SQLExecutor, profile *models.UserProfile) error
	ReplaceFavoriteTeams(ctx context.Context, exec SQLExecutor, profileID int, teamIDs []int) error
	ReplaceFavoriteSports(ctx context.Context, exec SQLExecutor, profileID int, sportIDs []int) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

func (r *postgresProfileRepository) Create(ctx context.Context, exec SQLExecutor, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, picture_key, bio, is_referee)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return exec.QueryRowContext(ctx, query,
		profile.UserID,
		profile.PictureKey,
		profile.Bio,
		profile.IsReferee,
	).Scan(&profile.ID)
}

func (r *postgresProfileRepository) GetByUserID(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, picture_key, bio, is_referee
		FROM user_profiles
		WHERE user_id = $1`

	profile := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.PictureKey,
		&profile.Bio,
		&profile.IsReferee,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if profile.FavoriteTeamIDs, err = r.listFavoriteIDs(ctx,
		`SELECT team_id FROM profile_favorite_teams WHERE profile_id = $1 ORDER BY team_id`, profile.ID); err != nil {
		return nil, err
	}
	if profile.FavoriteSportIDs, err = r.listFavoriteIDs(ctx,
		`SELECT sport_id FROM profile_favorite_sports WHERE profile_id = $1 ORDER BY sport_id`, profile.ID); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *postgresProfileRepository) Update(ctx context.Context, exec SQLExecutor, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET picture_key = $1, bio = $2
		WHERE id = $3`

	result, err := exec.ExecContext(ctx, query, profile.PictureKey, profile.Bio, profile.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) ReplaceFavoriteTeams(ctx context.Context, exec SQLExecutor, profileID int, teamIDs []int) error {
	return r.replaceFavorites(ctx, exec, profileID, teamIDs,
		`DELETE FROM profile_favorite_teams WHERE profile_id = $1`,
		`INSERT INTO profile_favorite_teams (profile_id, team_id) SELECT $1, unnest($2::int[])`)
}

func (r *postgresProfileRepository) ReplaceFavoriteSports(ctx context.Context, exec SQLExecutor, profileID int, sportIDs []int) error {
	return r.replaceFavorites(ctx, exec, profileID, sportIDs,
		`DELETE FROM profile_favorite_sports WHERE profile_id = $1`,
		`INSERT INTO profile_favorite_sports (profile_id, sport_id) SELECT $1, unnest($2::int[])`)
}

func (r *postgresProfileRepository) replaceFavorites(ctx context.Context, exec SQLExecutor, profileID int, ids []int, deleteQuery, insertQuery string) error {
	if _, err := exec.ExecContext(ctx, deleteQuery, profileID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if _, err := exec.ExecContext(ctx, insertQuery, profileID, pq.Array(ids)); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrProfileFavoriteInvalid
		}
		return err
	}
	return nil
}

func (r *postgresProfileRepository) listFavoriteIDs(ctx context.Context, query string, profileID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
