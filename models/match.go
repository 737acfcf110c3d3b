package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Valid reports whether s is one of the known match statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

type Match struct {
	ID        int         `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	SportID   int         `json:"sport_id" db:"sport_id"`
	TeamAID   int         `json:"team_a_id" db:"team_a_id"`
	TeamBID   int         `json:"team_b_id" db:"team_b_id"`
	StartTime time.Time   `json:"start_time" db:"start_time"`
	EndTime   *time.Time  `json:"end_time,omitempty" db:"end_time"`
	Venue     *string     `json:"venue,omitempty" db:"venue"`
	Status    MatchStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`

	Sport *Sport `json:"sport,omitempty" db:"-"`
	TeamA *Team  `json:"team_a,omitempty" db:"-"`
	TeamB *Team  `json:"team_b,omitempty" db:"-"`
}
