// File: internal/middleware/profile_type.go
package middleware

import (
	"mynunny_backend/internal/common"
	"mynunny_backend/internal/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireProfileType creates a Gin middleware that loads the authenticated
// subject's profile and only lets the request through when the discriminator
// matches. Nunnies browse offers, clients browse nunnies; the other side gets
// a 403. The profile ID and type are cached in the request context for
// downstream handlers.
func RequireProfileType(profiles profile.Service, required profile.Type, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := common.GetFirebaseUIDFromContext(c)
		if uid == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No user logged in"))
			return
		}

		p, err := profiles.GetByFirebaseUID(c.Request.Context(), uid)
		if err != nil {
			if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == common.ErrNotFound.StatusCode {
				common.RespondWithError(c, common.ErrForbidden.WithDetails("Complete your registration before using this feature."))
				return
			}
			logger.Error("Failed to load profile for discriminator check", zap.String("uid", uid), zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}

		if p.Type != required {
			logger.Debug("Profile type mismatch",
				zap.String("uid", uid),
				zap.String("have", string(p.Type)),
				zap.String("want", string(required)),
			)
			common.RespondWithError(c, common.ErrForbidden.WithDetails("This feature is not available for your account type."))
			return
		}

		c.Set(common.ProfileIDKey, p.ID)
		c.Set(common.ProfileTypeKey, string(p.Type))
		c.Next()
	}
}
