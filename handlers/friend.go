package handlers

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"hobbyhub/database"
	"hobbyhub/middleware"
	"hobbyhub/models"
	"hobbyhub/utils"
)

type FriendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

// scanRequests reads friend-request rows joined with both endpoint usernames.
func scanRequests(rows *sql.Rows) []models.FriendRequest {
	var requests []models.FriendRequest
	for rows.Next() {
		var f models.FriendRequest
		if err := rows.Scan(&f.ID, &f.FromUserID, &f.ToUserID, &f.Status, &f.CreatedAt, &f.FromUsername, &f.ToUsername); err != nil {
			continue
		}
		requests = append(requests, f)
	}
	return requests
}

// GetFriends lists accepted records touching the viewer, normalized to the
// viewer's perspective, along with the symmetric friend count.
func GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := database.DB.Query(`
		SELECT f.id, f.from_user_id, f.to_user_id, f.status, f.created_at,
		       fu.username, tu.username
		FROM friend_requests f
		JOIN users fu ON fu.id = f.from_user_id
		JOIN users tu ON tu.id = f.to_user_id
		WHERE (f.from_user_id = ? OR f.to_user_id = ?) AND f.status = 'accepted'
		ORDER BY f.created_at DESC
	`, userID, userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	defer rows.Close()

	friends := []models.FriendRequestResponse{}
	for _, f := range scanRequests(rows) {
		friends = append(friends, *f.ToResponse(userID))
	}

	utils.Success(c, gin.H{"friends": friends, "friend_count": len(friends)})
}

// GetFriendRequests lists pending requests addressed to the viewer.
func GetFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := database.DB.Query(`
		SELECT f.id, f.from_user_id, f.to_user_id, f.status, f.created_at,
		       fu.username, tu.username
		FROM friend_requests f
		JOIN users fu ON fu.id = f.from_user_id
		JOIN users tu ON tu.id = f.to_user_id
		WHERE f.to_user_id = ? AND f.status = 'sent'
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	defer rows.Close()

	requests := []models.FriendRequestResponse{}
	for _, f := range scanRequests(rows) {
		requests = append(requests, *f.ToResponse(userID))
	}

	utils.Success(c, gin.H{"requests": requests})
}

func SendFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.UserID == userID {
		utils.BadRequest(c, "cannot send a friend request to yourself")
		return
	}

	var exists bool
	err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", req.UserID).Scan(&exists)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if !exists {
		utils.NotFound(c, "user not found")
		return
	}

	// Already friends in either direction.
	err = database.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM friend_requests
		WHERE ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))
		  AND status = 'accepted')
	`, userID, req.UserID, req.UserID, userID).Scan(&exists)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.BadRequest(c, "already friends")
		return
	}

	// An undecided request in the same direction.
	err = database.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM friend_requests WHERE from_user_id = ? AND to_user_id = ? AND status = 'sent')",
		userID, req.UserID,
	).Scan(&exists)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.BadRequest(c, "friend request already sent")
		return
	}

	// A pending request already coming the other way counts as mutual
	// consent: accept that record instead of inserting a mirrored edge.
	result, err := database.DB.Exec(
		"UPDATE friend_requests SET status = 'accepted' WHERE from_user_id = ? AND to_user_id = ? AND status = 'sent'",
		req.UserID, userID,
	)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if affected, err := result.RowsAffected(); err == nil && affected > 0 {
		utils.Success(c, gin.H{"message": "friend request accepted"})
		return
	}

	_, err = database.DB.Exec(
		"INSERT INTO friend_requests (id, from_user_id, to_user_id, status, created_at) VALUES (?, ?, ?, ?, ?)",
		utils.GenerateUUID(), userID, req.UserID, models.StatusSent, time.Now(),
	)
	if err != nil {
		utils.InternalError(c, "failed to send friend request")
		return
	}

	utils.Success(c, gin.H{"message": "friend request sent"})
}

func AcceptFriendRequest(c *gin.Context) {
	respondToRequest(c, models.StatusAccepted)
}

func RejectFriendRequest(c *gin.Context) {
	respondToRequest(c, models.StatusRejected)
}

// respondToRequest moves a record out of its sent state. The conditional
// UPDATE serializes concurrent decisions on the row: whoever loses the race
// matches zero rows and gets a not-found. Accepted and rejected are terminal.
func respondToRequest(c *gin.Context, decision string) {
	userID := middleware.GetUserID(c)
	requestID := c.Param("id")

	result, err := database.DB.Exec(
		"UPDATE friend_requests SET status = ? WHERE id = ? AND to_user_id = ? AND status = 'sent'",
		decision, requestID, userID,
	)
	if err != nil {
		utils.InternalError(c, "failed to update friend request")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if affected == 0 {
		utils.NotFound(c, "friend request not found")
		return
	}

	utils.Success(c, gin.H{"message": "friend request " + decision})
}

// DeleteFriend removes accepted records between the pair in both directions.
func DeleteFriend(c *gin.Context) {
	userID := middleware.GetUserID(c)
	friendID := c.Param("user_id")

	_, err := database.DB.Exec(`
		DELETE FROM friend_requests
		WHERE ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))
		  AND status = 'accepted'
	`, userID, friendID, friendID, userID)
	if err != nil {
		utils.InternalError(c, "failed to delete friend")
		return
	}

	utils.Success(c, nil)
}
