package handlers

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"hobbyhub/database"
	"hobbyhub/middleware"
	"hobbyhub/models"
	"hobbyhub/utils"
)

func GetHobbies(c *gin.Context) {
	rows, err := database.DB.Query(`
		SELECT h.id, h.name, h.created_at, u.username
		FROM hobbies h
		LEFT JOIN users u ON u.id = h.created_by
		ORDER BY h.id
	`)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	defer rows.Close()

	hobbies := []models.HobbyResponse{}
	for rows.Next() {
		var hobby models.Hobby
		var creator sql.NullString
		if err := rows.Scan(&hobby.ID, &hobby.Name, &hobby.CreatedAt, &creator); err != nil {
			continue
		}
		if creator.Valid {
			name := creator.String
			hobby.CreatedBy = &name
		}
		hobbies = append(hobbies, *hobby.ToResponse())
	}

	utils.Success(c, gin.H{"hobbies": hobbies})
}

// CreateHobby adds a hobby to the shared catalog. The SPA posts the name
// form-encoded rather than as JSON.
func CreateHobby(c *gin.Context) {
	userID := middleware.GetUserID(c)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		utils.ValidationFailed(c, map[string][]string{"name": {"This field is required."}})
		return
	}
	if len(name) > 100 {
		utils.ValidationFailed(c, map[string][]string{"name": {"Ensure this value has at most 100 characters."}})
		return
	}

	var exists bool
	if err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM hobbies WHERE name = ?)", name).Scan(&exists); err != nil {
		utils.InternalError(c, "database error")
		return
	}
	if exists {
		utils.ValidationFailed(c, map[string][]string{"name": {"Hobby with this name already exists."}})
		return
	}

	var username string
	if err := database.DB.QueryRow("SELECT username FROM users WHERE id = ?", userID).Scan(&username); err != nil {
		utils.InternalError(c, "database error")
		return
	}

	hobby := models.Hobby{
		ID:        utils.GenerateUUID(),
		Name:      name,
		CreatedAt: time.Now(),
		CreatedBy: &username,
	}

	// The unique key on name still backstops a concurrent duplicate insert.
	_, err := database.DB.Exec(
		"INSERT INTO hobbies (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		hobby.ID, hobby.Name, userID, hobby.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			utils.ValidationFailed(c, map[string][]string{"name": {"Hobby with this name already exists."}})
			return
		}
		utils.InternalError(c, "failed to create hobby")
		return
	}

	utils.Success(c, gin.H{"status": "success", "hobby": hobby.ToResponse()})
}
