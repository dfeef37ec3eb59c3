// File: internal/filestorage/handler.go
package filestorage

import (
	"mime/multipart"

	"mynunny_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the image upload endpoints. Uploads happen during
// registration, before a session exists, so the routes are public; the
// returned URL paths ride in the registration draft.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new upload handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the upload routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	uploads := router.Group("/uploads")
	{
		uploads.POST("/avatar", h.uploadWith(h.service.SaveAvatar))
		uploads.POST("/id-document", h.uploadWith(h.service.SaveIDDocument))
	}
}

func (h *Handler) uploadWith(save func(*multipart.FileHeader) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("A 'file' form field is required."))
			return
		}

		urlPath, err := save(fileHeader)
		if err != nil {
			h.logger.Warn("Image upload rejected", zap.Error(err), zap.String("filename", fileHeader.Filename))
			common.RespondWithError(c, common.ErrUnprocessableEntity.WithDetails(err.Error()))
			return
		}
		common.RespondCreated(c, "Image uploaded successfully.", gin.H{"url": urlPath})
	}
}
