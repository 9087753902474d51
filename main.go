package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"hobbyhub/cache"
	"hobbyhub/config"
	"hobbyhub/database"
	"hobbyhub/handlers"
	"hobbyhub/middleware"
)

func setupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/api/csrf", handlers.CSRFToken)

	auth := r.Group("/api/auth")
	auth.Use(middleware.AuthRateLimiter())
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/profile", handlers.GetProfile)
		api.PUT("/profile", handlers.UpdateProfile)
		api.POST("/profile/password", handlers.ChangePassword)

		api.GET("/hobbies", handlers.GetHobbies)
		api.POST("/hobbies", handlers.CreateHobby)

		api.GET("/users", handlers.GetAllUsers)
		api.GET("/similar-users", handlers.GetSimilarUsers)

		api.GET("/friends", handlers.GetFriends)
		api.GET("/friends/requests", handlers.GetFriendRequests)
		api.POST("/friends/request", handlers.SendFriendRequest)
		api.POST("/friends/requests/:id/accept", handlers.AcceptFriendRequest)
		api.POST("/friends/requests/:id/reject", handlers.RejectFriendRequest)
		api.DELETE("/friends/:user_id", handlers.DeleteFriend)
	}

	return r
}

func main() {
	config.Load()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	cache.Connect()
	defer cache.Close()

	r := setupRouter()

	log.Printf("Server starting on %s", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
