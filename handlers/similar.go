package handlers

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"hobbyhub/cache"
	"hobbyhub/database"
	"hobbyhub/middleware"
	"hobbyhub/models"
	"hobbyhub/utils"
)

const (
	similarUsersPerPage  = 10
	similarUsersCacheTTL = 60 * time.Second
)

type SimilarUsersResponse struct {
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"total_pages"`
	TotalUsers   int                 `json:"total_users"`
	UsersPerPage int                 `json:"users_per_page"`
	SimilarUsers []models.RankedUser `json:"similar_users"`
}

// GetSimilarUsers ranks every other user by shared-hobby count with the
// requester, ten per page. Pages are cached briefly per user when Redis is
// available.
func GetSimilarUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("similar:%s:%d", userID, page)
	var cached SimilarUsersResponse
	if hit, err := cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil && hit {
		utils.Success(c, cached)
		return
	}

	mine := map[string]bool{}
	rows, err := database.DB.Query("SELECT hobby_id FROM user_hobbies WHERE user_id = ?", userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	for rows.Next() {
		var hobbyID string
		if err := rows.Scan(&hobbyID); err == nil {
			mine[hobbyID] = true
		}
	}
	rows.Close()

	candidates, err := loadCandidates(userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	ranked := models.RankBySharedHobbies(candidates, mine)
	pg := utils.Paginate(len(ranked), similarUsersPerPage, page)

	resp := SimilarUsersResponse{
		Page:         pg.Number,
		TotalPages:   pg.TotalPages,
		TotalUsers:   pg.TotalCount,
		UsersPerPage: pg.PerPage,
		SimilarUsers: ranked[pg.Start:pg.End],
	}

	if err := cache.SetJSON(c.Request.Context(), cacheKey, resp, similarUsersCacheTTL); err != nil {
		log.Printf("failed to cache similar users page: %v", err)
	}

	utils.Success(c, resp)
}

// loadCandidates fetches all users except the requester with their hobbies
// in one query. Users without hobbies still appear, with an empty list.
func loadCandidates(excludeUserID string) ([]models.Candidate, error) {
	rows, err := database.DB.Query(`
		SELECT u.id, u.username, h.id, h.name
		FROM users u
		LEFT JOIN user_hobbies uh ON uh.user_id = u.id
		LEFT JOIN hobbies h ON h.id = uh.hobby_id
		WHERE u.id != ?
		ORDER BY u.id, h.name
	`, excludeUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []models.Candidate
	index := map[string]int{}
	for rows.Next() {
		var userID, username string
		var hobbyID, hobbyName sql.NullString
		if err := rows.Scan(&userID, &username, &hobbyID, &hobbyName); err != nil {
			continue
		}

		pos, ok := index[userID]
		if !ok {
			pos = len(candidates)
			index[userID] = pos
			candidates = append(candidates, models.Candidate{ID: userID, Username: username, Hobbies: []models.Hobby{}})
		}
		if hobbyID.Valid {
			candidates[pos].Hobbies = append(candidates[pos].Hobbies, models.Hobby{ID: hobbyID.String, Name: hobbyName.String})
		}
	}

	return candidates, rows.Err()
}
