package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"hobbyhub/config"
)

func CORSMiddleware() gin.HandlerFunc {
	allowedOrigins := config.Cfg.CORSOrigins
	originMap := make(map[string]bool)
	for _, origin := range strings.Split(allowedOrigins, ",") {
		originMap[strings.TrimSpace(origin)] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if originMap[origin] || allowedOrigins == "*" {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-CSRFToken")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
