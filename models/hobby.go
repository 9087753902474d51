package models

import "time"

type Hobby struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	// CreatedBy is the creator's username, nil when the account was removed.
	CreatedBy *string `json:"created_by"`
}

type HobbyResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	CreatedBy *string `json:"created_by"`
}

func (h *Hobby) ToResponse() *HobbyResponse {
	return &HobbyResponse{
		ID:        h.ID,
		Name:      h.Name,
		CreatedAt: h.CreatedAt.Format("2006-01-02 15:04"),
		CreatedBy: h.CreatedBy,
	}
}
