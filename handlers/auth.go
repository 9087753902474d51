package handlers

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"hobbyhub/database"
	"hobbyhub/models"
	"hobbyhub/utils"
)

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid JSON format")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	errs := map[string][]string{}
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	required := map[string]string{
		"username":   req.Username,
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"password":   req.Password,
	}
	for field, value := range required {
		if value == "" {
			addErr(field, "This field is required.")
		}
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		addErr("email", "Enter a valid email address.")
	}
	if req.Password != "" && len(req.Password) < 8 {
		addErr("password", "Password must be at least 8 characters.")
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			addErr("date_of_birth", "Enter a valid date in YYYY-MM-DD format.")
		} else {
			dateOfBirth = &parsed
		}
	}

	if req.Username != "" {
		var exists bool
		if err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", req.Username).Scan(&exists); err != nil {
			utils.InternalError(c, "database error")
			return
		}
		if exists {
			addErr("username", "A user with that username already exists.")
		}
	}
	if req.Email != "" {
		var exists bool
		if err := database.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", req.Email).Scan(&exists); err != nil {
			utils.InternalError(c, "database error")
			return
		}
		if exists {
			addErr("email", "A user with that email already exists.")
		}
	}

	if len(errs) > 0 {
		utils.ValidationFailed(c, errs)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalError(c, "failed to hash password")
		return
	}

	userID := utils.GenerateUUID()
	profileID := utils.GenerateUUID()
	now := time.Now()

	// The empty profile is created inside the registration transaction so
	// every user row has exactly one profile row from the start.
	tx, err := database.DB.Begin()
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	_, err = tx.Exec(
		"INSERT INTO users (id, username, email, first_name, last_name, password, date_of_birth, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		userID, req.Username, req.Email, req.FirstName, req.LastName, string(hashedPassword), dateOfBirth, now, now,
	)
	if err != nil {
		tx.Rollback()
		utils.InternalError(c, "failed to create user")
		return
	}

	_, err = tx.Exec(
		"INSERT INTO profiles (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		profileID, userID, now, now,
	)
	if err != nil {
		tx.Rollback()
		utils.InternalError(c, "failed to create profile")
		return
	}

	if err := tx.Commit(); err != nil {
		utils.InternalError(c, "failed to commit transaction")
		return
	}

	token, err := utils.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	user := models.User{
		ID:          userID,
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dateOfBirth,
		Profile:     &models.Profile{ID: profileID, UserID: userID, CreatedAt: now, UpdatedAt: now},
	}
	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse(now)})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var userID, password string
	err := database.DB.QueryRow(
		"SELECT id, password FROM users WHERE username = ?",
		req.Username,
	).Scan(&userID, &password)

	if err == sql.ErrNoRows {
		// Unknown usernames and bad passwords produce the same message.
		utils.Unauthorized(c, "invalid username or password")
		return
	}
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		utils.InternalError(c, "database error")
		return
	}

	token, err := utils.GenerateToken(userID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}

	utils.Success(c, AuthResponse{Token: token, User: *user.ToResponse(time.Now())})
}

func Logout(c *gin.Context) {
	// Tokens are stateless; the client discards its copy.
	utils.Success(c, nil)
}

// CSRFToken hands the SPA a token it can echo back in X-CSRFToken. Mirrored
// into a cookie so the frontend's double-submit check works.
func CSRFToken(c *gin.Context) {
	token := utils.GenerateCSRFToken()
	c.SetCookie("csrftoken", token, 12*3600, "/", "", false, false)
	utils.Success(c, gin.H{"csrfToken": token})
}
