package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile extends a User one-to-one. It is created together with the user
// at registration and removed with it.
type UserProfile struct {
	ID        int     `json:"id"`
	UserID    int     `json:"user_id"`
	Bio       *string `json:"bio,omitempty"`
	IsReferee bool    `json:"is_referee"`

	PictureKey *string `json:"-"`
	PictureURL *string `json:"profile_picture,omitempty"`

	FavoriteTeamIDs  []int `json:"favorite_teams,omitempty"`
	FavoriteSportIDs []int `json:"favorite_sports,omitempty"`
}

// AuthToken is the single persistent opaque credential of a user. The key is
// reused across logins, never rotated.
type AuthToken struct {
	Key       string    `json:"key"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
