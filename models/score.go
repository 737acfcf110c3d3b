package models

import "time"

// Score is one entry in a match's append-only score timeline. The current
// score of a match is the row with the latest timestamp.
type Score struct {
	ID         int       `json:"id" db:"id"`
	MatchID    int       `json:"match_id" db:"match_id"`
	TeamAScore int       `json:"team_a_score" db:"team_a_score"`
	TeamBScore int       `json:"team_b_score" db:"team_b_score"`
	Period     *string   `json:"period,omitempty" db:"period"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
}
