package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/khelmitra/scoreboard/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// ListByStatus returns matches with the given status, optionally narrowed
	// to one sport. Sport and team names/logos are joined in for list views.
	ListByStatus(ctx context.Context, status models.MatchStatus, sportID *int) ([]models.Match, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, title, sport_id, team_a_id, team_b_id, start_time, end_time,
		       venue, status, created_at, updated_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.Title,
		&match.SportID,
		&match.TeamAID,
		&match.TeamBID,
		&match.StartTime,
		&match.EndTime,
		&match.Venue,
		&match.Status,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByStatus(ctx context.Context, status models.MatchStatus, sportID *int) ([]models.Match, error) {
	query := `
		SELECT m.id, m.title, m.sport_id, m.team_a_id, m.team_b_id, m.start_time, m.end_time,
		       m.venue, m.status, m.created_at, m.updated_at,
		       s.name, ta.name, ta.logo_key, tb.name, tb.logo_key
		FROM matches m
		JOIN sports s ON s.id = m.sport_id
		JOIN teams ta ON ta.id = m.team_a_id
		JOIN teams tb ON tb.id = m.team_b_id
		WHERE m.status = $1`

	args := []interface{}{status}
	if sportID != nil {
		query += ` AND m.sport_id = $2`
		args = append(args, *sportID)
	}
	query += ` ORDER BY m.start_time ASC, m.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		var sportName, teamAName, teamBName string
		var teamALogo, teamBLogo *string
		if scanErr := rows.Scan(
			&match.ID,
			&match.Title,
			&match.SportID,
			&match.TeamAID,
			&match.TeamBID,
			&match.StartTime,
			&match.EndTime,
			&match.Venue,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
			&sportName,
			&teamAName,
			&teamALogo,
			&teamBName,
			&teamBLogo,
		); scanErr != nil {
			return nil, scanErr
		}
		match.Sport = &models.Sport{ID: match.SportID, Name: sportName}
		match.TeamA = &models.Team{ID: match.TeamAID, Name: teamAName, SportID: match.SportID, LogoKey: teamALogo}
		match.TeamB = &models.Team{ID: match.TeamBID, Name: teamBName, SportID: match.SportID, LogoKey: teamBLogo}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	query := `UPDATE matches SET status = $1, updated_at = now() WHERE id = $2`

	result, err := exec.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
