// File: internal/profile/handler.go
package profile

import (
	"context"
	"errors"

	"mynunny_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UpdateFunc applies a partial profile update for an authenticated subject.
// The auth workflow provides it so session state refreshes alongside the
// stored row.
type UpdateFunc func(ctx context.Context, firebaseUID string, req UpdateRequest) (*Profile, error)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	update  UpdateFunc
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, update UpdateFunc, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		update:  update,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations. All of them
// require an authenticated subject.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profiles")
	profileGroup.Use(authMW)
	{
		profileGroup.GET("/me", h.getMe)
		profileGroup.PATCH("/me", h.updateMe)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	firebaseUID := common.GetFirebaseUIDFromContext(c)
	if firebaseUID == "" {
		h.logger.Error("Firebase UID not found in context for /profiles/me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Subject identifier missing."))
		return
	}
	p, err := h.service.GetByFirebaseUID(c.Request.Context(), firebaseUID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToResponse(p))
}

func (h *Handler) updateMe(c *gin.Context) {
	firebaseUID := common.GetFirebaseUIDFromContext(c)
	if firebaseUID == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No user logged in"))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.update(c.Request.Context(), firebaseUID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToResponse(p))
}
