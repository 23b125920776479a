package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"freelancer_directory/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// Messages for errors that are not input validation
const (
	msgConflict        = "Username or email already exists."
	msgNotFound        = "Freelancer not found."
	msgTooManyAttempts = "Too many failed login attempts. Please try again later."
	msgForbiddenUpdate = "You can only update your own profile."
	msgUnexpected      = "An unexpected error occurred."
)

// badRequest aborts with 400 and a message
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
}

// respondError maps a repository or service error to a status code.
// Unknown errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgConflict})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	case errors.Is(err, domain.ErrTooManyAttempts):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": msgTooManyAttempts})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidLogin})
	default:
		logrus.WithFields(fields).WithError(err).Error("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
	}
}
