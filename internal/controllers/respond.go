package controllers

import (
	"net/http"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/logger"

	"github.com/gin-gonic/gin"
)

// requireUserID pulls the authenticated user id set by the auth middleware.
// Writes the 401 response itself when missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "fail",
			"message": "Unauthorized",
		})
		return "", false
	}
	return userID.(string), true
}

// respondError maps the error taxonomy onto the response envelope: "fail" for
// client errors, "error" for server faults. Upstream ML failures keep their
// subtype so the client can tell a down service from a slow one.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": err.Error(),
		})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": err.Error(),
		})
	case apperrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "fail",
			"message": err.Error(),
		})
	default:
		if upstream, ok := apperrors.AsUpstream(err); ok {
			status := http.StatusServiceUnavailable
			message := "ML service is currently unavailable"
			if upstream.Kind == apperrors.UpstreamTimeout {
				status = http.StatusGatewayTimeout
				message = "Request timeout - ML service took too long to respond"
			}
			c.JSON(status, gin.H{
				"status":  "error",
				"message": message,
			})
			return
		}

		logger.Log.Errorw("Unhandled request error",
			"path", c.FullPath(),
			"error", err.Error(),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
	}
}
