package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/khelmitra/scoreboard/models"
	"github.com/lib/pq"
)

var ErrScoreMatchInvalid = errors.New("score references an invalid match")

type ScoreRepository interface {
	Create(ctx context.Context, exec SQLExecutor, score *models.Score) error
	// ListByMatch returns the full score history in insertion order.
	ListByMatch(ctx context.Context, matchID int) ([]models.Score, error)
	// LatestByMatchIDs returns the most recent score per match; matches with
	// no scores are simply absent from the result.
	LatestByMatchIDs(ctx context.Context, matchIDs []int) (map[int]models.Score, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Create(ctx context.Context, exec SQLExecutor, score *models.Score) error {
	query := `
		INSERT INTO scores (match_id, team_a_score, team_b_score, period)
		VALUES ($1, $2, $3, $4)
		RETURNING id, "timestamp"`

	err := exec.QueryRowContext(ctx, query,
		score.MatchID,
		score.TeamAScore,
		score.TeamBScore,
		score.Period,
	).Scan(&score.ID, &score.Timestamp)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrScoreMatchInvalid
		}
		return err
	}
	return nil
}

func (r *postgresScoreRepository) ListByMatch(ctx context.Context, matchID int) ([]models.Score, error) {
	query := `
		SELECT id, match_id, team_a_score, team_b_score, period, "timestamp"
		FROM scores
		WHERE match_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.Score, 0)
	for rows.Next() {
		var score models.Score
		if scanErr := rows.Scan(
			&score.ID,
			&score.MatchID,
			&score.TeamAScore,
			&score.TeamBScore,
			&score.Period,
			&score.Timestamp,
		); scanErr != nil {
			return nil, scanErr
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}

func (r *postgresScoreRepository) LatestByMatchIDs(ctx context.Context, matchIDs []int) (map[int]models.Score, error) {
	if len(matchIDs) == 0 {
		return map[int]models.Score{}, nil
	}

	// DISTINCT ON keeps only the newest row per match; id breaks timestamp ties.
	query := `
		SELECT DISTINCT ON (match_id)
		       id, match_id, team_a_score, team_b_score, period, "timestamp"
		FROM scores
		WHERE match_id = ANY($1)
		ORDER BY match_id, "timestamp" DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[int]models.Score, len(matchIDs))
	for rows.Next() {
		var score models.Score
		if scanErr := rows.Scan(
			&score.ID,
			&score.MatchID,
			&score.TeamAScore,
			&score.TeamBScore,
			&score.Period,
			&score.Timestamp,
		); scanErr != nil {
			return nil, scanErr
		}
		latest[score.MatchID] = score
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return latest, nil
}
