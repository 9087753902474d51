package models

import "time"

// Friend request statuses. A record starts as sent; accepted and rejected are
// terminal.
const (
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// FriendRequest is one directed request/decision edge between two users.
// Storage is directional, but queries treat accepted records symmetrically:
// either endpoint counts the other as a friend.
type FriendRequest struct {
	ID           string    `json:"id"`
	FromUserID   string    `json:"from_user_id"`
	ToUserID     string    `json:"to_user_id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type FriendRequestResponse struct {
	ID             string `json:"id"`
	FriendUsername string `json:"friend_username"`
	FromUser       string `json:"from_user"`
	ToUser         string `json:"to_user"`
	Timestamp      string `json:"timestamp"`
	Status         string `json:"status"`
}

// ToResponse serializes the record from the viewer's perspective:
// friend_username is always the endpoint that is not the viewer.
func (f *FriendRequest) ToResponse(viewerID string) *FriendRequestResponse {
	friend := f.ToUsername
	if f.ToUserID == viewerID {
		friend = f.FromUsername
	}
	return &FriendRequestResponse{
		ID:             f.ID,
		FriendUsername: friend,
		FromUser:       f.FromUsername,
		ToUser:         f.ToUsername,
		Timestamp:      f.CreatedAt.Format("2006-01-02 15:04"),
		Status:         f.Status,
	}
}
