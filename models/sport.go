package models

// Sport is a root catalog entity; teams and matches reference it.
type Sport struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`

	IconKey *string `json:"-" db:"icon_key"`
	IconURL *string `json:"icon_url,omitempty" db:"-"`
}
