package models

import "time"

// Profile is the one-to-one companion record of a User. It currently carries
// no fields of its own; it exists so extended attributes have a home without
// touching the users table.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileResponse struct{}

func (p *Profile) ToResponse() *ProfileResponse {
	return &ProfileResponse{}
}
