package handlers

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"hobbyhub/database"
	"hobbyhub/middleware"
	"hobbyhub/models"
	"hobbyhub/utils"
)

type UpdateProfileRequest struct {
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Email       *string   `json:"email"`
	DateOfBirth *string   `json:"date_of_birth"`
	Hobbies     *[]string `json:"hobbies"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

// fetchUser loads a user with their profile and hobby list.
func fetchUser(id string) (*models.User, error) {
	var user models.User
	var dob sql.NullTime
	err := database.DB.QueryRow(
		"SELECT id, username, email, first_name, last_name, password, date_of_birth, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.Password, &dob, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dob.Valid {
		birth := dob.Time
		user.DateOfBirth = &birth
	}

	var profile models.Profile
	err = database.DB.QueryRow(
		"SELECT id, user_id, created_at, updated_at FROM profiles WHERE user_id = ?",
		id,
	).Scan(&profile.ID, &profile.UserID, &profile.CreatedAt, &profile.UpdatedAt)
	if err == nil {
		user.Profile = &profile
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT h.id, h.name, h.created_at, u.username
		FROM user_hobbies uh
		JOIN hobbies h ON h.id = uh.hobby_id
		LEFT JOIN users u ON u.id = h.created_by
		WHERE uh.user_id = ?
		ORDER BY h.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
		user.Hobbies = append(user.Hobbies, hobby)
	}

	return &user, nil
}

func GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := fetchUser(userID)
	if err == sql.ErrNoRows {
		utils.NotFound(c, "user not found")
		return
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	utils.Success(c, user.ToResponse(time.Now()))
}

func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid JSON format")
		return
	}

	errs := map[string][]string{}
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		addErr("first_name", "This field is required.")
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		addErr("last_name", "This field is required.")
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			addErr("email", "This field is required.")
		} else if !strings.Contains(email, "@") {
			addErr("email", "Enter a valid email address.")
		} else {
			var exists bool
			if err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id != ?)", email, userID).Scan(&exists); err != nil {
				utils.InternalError(c, "database error")
				return
			}
			if exists {
				addErr("email", "A user with that email already exists.")
			}
		}
	}

	var dateOfBirth *time.Time
	clearDateOfBirth := false
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			clearDateOfBirth = true
		} else {
			parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				addErr("date_of_birth", "Enter a valid date in YYYY-MM-DD format.")
			} else {
				dateOfBirth = &parsed
			}
		}
	}

	if req.Hobbies != nil && len(*req.Hobbies) > 0 {
		placeholders := strings.Repeat("?,", len(*req.Hobbies))
		placeholders = placeholders[:len(placeholders)-1]
		args := make([]any, 0, len(*req.Hobbies))
		for _, hobbyID := range *req.Hobbies {
			args = append(args, hobbyID)
		}
		var count int
		if err := database.DB.QueryRow("SELECT COUNT(*) FROM hobbies WHERE id IN ("+placeholders+")", args...).Scan(&count); err != nil {
			utils.InternalError(c, "database error")
			return
		}
		if count != len(*req.Hobbies) {
			addErr("hobbies", "One or more hobbies do not exist.")
		}
	}

	if len(errs) > 0 {
		utils.ValidationFailed(c, errs)
		return
	}

	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}
	if req.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, strings.TrimSpace(*req.FirstName))
	}
	if req.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, strings.TrimSpace(*req.LastName))
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.TrimSpace(*req.Email))
	}
	if clearDateOfBirth {
		sets = append(sets, "date_of_birth = NULL")
	} else if dateOfBirth != nil {
		sets = append(sets, "date_of_birth = ?")
		args = append(args, *dateOfBirth)
	}

	tx, err := database.DB.Begin()
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	args = append(args, userID)
	if _, err := tx.Exec("UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		tx.Rollback()
		utils.InternalError(c, "failed to update profile")
		return
	}

	if req.Hobbies != nil {
		if _, err := tx.Exec("DELETE FROM user_hobbies WHERE user_id = ?", userID); err != nil {
			tx.Rollback()
			utils.InternalError(c, "failed to update hobbies")
			return
		}
		now := time.Now()
		for _, hobbyID := range *req.Hobbies {
			if _, err := tx.Exec("INSERT INTO user_hobbies (user_id, hobby_id, created_at) VALUES (?, ?, ?)", userID, hobbyID, now); err != nil {
				tx.Rollback()
				utils.InternalError(c, "failed to update hobbies")
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		utils.InternalError(c, "failed to commit transaction")
		return
	}

	utils.Success(c, nil)
}

func ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid JSON format")
		return
	}

	errs := map[string][]string{}
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	if req.OldPassword == "" {
		addErr("old_password", "This field is required.")
	}
	if req.NewPassword1 == "" {
		addErr("new_password1", "This field is required.")
	} else if len(req.NewPassword1) < 8 {
		addErr("new_password1", "Password must be at least 8 characters.")
	}
	if req.NewPassword1 != req.NewPassword2 {
		addErr("new_password2", "The two password fields didn't match.")
	}

	if req.OldPassword != "" {
		var password string
		if err := database.DB.QueryRow("SELECT password FROM users WHERE id = ?", userID).Scan(&password); err != nil {
			utils.InternalError(c, "database error")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.OldPassword)); err != nil {
			addErr("old_password", "Your old password was entered incorrectly.")
		}
	}

	if len(errs) > 0 {
		utils.ValidationFailed(c, errs)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	if _, err := database.DB.Exec("UPDATE users SET password = ?, updated_at = ? WHERE id = ?", string(hashedPassword), time.Now(), userID); err != nil {
		utils.InternalError(c, "failed to change password")
		return
	}

	utils.Success(c, nil)
}

func GetAllUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rows, err := database.DB.Query(`
		SELECT id, username, first_name, last_name FROM users
		WHERE id != ?
		ORDER BY username
	`, userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName); err != nil {
			continue
		}
		users = append(users, *user.ToSummary())
	}

	utils.Success(c, gin.H{"users": users})
}
