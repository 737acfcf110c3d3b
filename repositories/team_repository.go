package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/khelmitra/scoreboard/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// List returns all teams, or only those of one sport when sportID is set.
	// Each team carries its sport's id and name.
	List(ctx context.Context, sportID *int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, logo_key, sport_id, description, created_at, updated_at
		FROM teams
		WHERE id = $1`

	var team models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.LogoKey,
		&team.SportID,
		&team.Description,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, sportID *int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.name, t.logo_key, t.sport_id, t.description, t.created_at, t.updated_at,
		       s.name
		FROM teams t
		JOIN sports s ON s.id = t.sport_id`

	args := []interface{}{}
	if sportID != nil {
		query += ` WHERE t.sport_id = $1`
		args = append(args, *sportID)
	}
	query += ` ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		var sportName string
		if scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&team.LogoKey,
			&team.SportID,
			&team.Description,
			&team.CreatedAt,
			&team.UpdatedAt,
			&sportName,
		); scanErr != nil {
			return nil, scanErr
		}
		team.Sport = &models.Sport{ID: team.SportID, Name: sportName}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}
