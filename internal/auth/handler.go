// File: internal/auth/handler.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"mynunny_backend/internal/common"
	"mynunny_backend/internal/profile"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	workflow *Workflow
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(workflow *Workflow, logger *zap.Logger) *Handler {
	return &Handler{
		workflow: workflow,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routes for authentication operations. Logout and
// the session snapshot need a verified subject and take the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/resend-verification", h.resendVerification)
		authGroup.POST("/reset-password", h.resetPassword)

		authenticated := authGroup.Group("")
		authenticated.Use(authMW)
		{
			authenticated.POST("/logout", h.logout)
			authenticated.GET("/session", h.session)
		}
	}
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Register: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result := h.workflow.Register(c.Request.Context(), req.Draft, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Login: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result := h.workflow.Login(c.Request.Context(), req.Email, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) logout(c *gin.Context) {
	firebaseUID := common.GetFirebaseUIDFromContext(c)
	if firebaseUID == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No user logged in"))
		return
	}
	result := h.workflow.Logout(c.Request.Context(), firebaseUID)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) resendVerification(c *gin.Context) {
	h.emailAction(c, "Resend verification", h.workflow.SendVerificationEmail)
}

func (h *Handler) resetPassword(c *gin.Context) {
	h.emailAction(c, "Reset password", h.workflow.ResetPassword)
}

func (h *Handler) emailAction(c *gin.Context, name string, action func(ctx context.Context, email string) ActionResult) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(name+": Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	result := action(c.Request.Context(), req.Email)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// session returns the live identity/profile snapshot for the authenticated
// subject, fetched fresh so it reflects the stored state.
func (h *Handler) session(c *gin.Context) {
	firebaseUID := common.GetFirebaseUIDFromContext(c)
	if firebaseUID == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("No user logged in"))
		return
	}

	snapshot := Snapshot{Phase: PhaseAuthenticated}
	p, err := h.workflow.GetProfile(c.Request.Context(), firebaseUID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
			common.RespondWithError(c, err)
			return
		}
	} else {
		resp := profile.ToResponse(p)
		snapshot.Profile = &resp
	}
	common.RespondOK(c, "Session retrieved successfully.", snapshot)
}
