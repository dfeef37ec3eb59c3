// File: internal/middleware/auth.go
package middleware

import (
	"mynunny_backend/internal/common"
	"mynunny_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware that verifies the bearer ID token
// with the identity provider and rejects unverified subjects. On success the
// subject's UID and email land in the request context.
func AuthMiddleware(verifier shared.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := common.GetTokenFromContext(c)
		if token == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
			return
		}

		if !claims.EmailVerified {
			logger.Debug("Rejected unverified subject", zap.String("uid", claims.UID))
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Please verify your email address before logging in."))
			return
		}

		c.Set(common.FirebaseUIDKey, claims.UID)
		c.Set(common.UserEmailKey, claims.Email)
		c.Next()
	}
}
