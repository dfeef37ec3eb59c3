// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetTokenFromContext retrieves the bearer token string from the Authorization
// header. Returns an empty string if not found.
func GetTokenFromContext(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// GetFirebaseUIDFromContext retrieves the Firebase UID from the Gin context.
func GetFirebaseUIDFromContext(c *gin.Context) string {
	val, exists := c.Get(FirebaseUIDKey)
	if !exists {
		return ""
	}
	uid, ok := val.(string)
	if !ok {
		return ""
	}
	return uid
}

// GetProfileIDFromContext retrieves the profile row ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetProfileIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(ProfileIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetProfileTypeFromContext retrieves the profile discriminator from the Gin context.
func GetProfileTypeFromContext(c *gin.Context) string {
	val, exists := c.Get(ProfileTypeKey)
	if !exists {
		return ""
	}
	t, ok := val.(string)
	if !ok {
		return ""
	}
	return t
}
