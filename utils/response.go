package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes data as-is with a 200. A nil data means the caller has
// nothing beyond the status envelope to report.
func Success(c *gin.Context, data any) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

// ValidationFailed reports field-keyed validation errors, mirroring the
// {field: [messages]} shape the frontend consumes.
func ValidationFailed(c *gin.Context, errs map[string][]string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "errors": errs})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": message})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": message})
}
