// File: internal/listing/handler.go
package listing

import (
	"mynunny_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for the dashboard browse handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new listing handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the dashboard browse routes. Both need an
// authenticated subject; each is additionally gated on the discriminator of
// the opposite side: clients browse nunnies, nunnies browse offers.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, clientOnly, nunnyOnly gin.HandlerFunc) {
	router.GET("/nunnies", authMW, clientOnly, h.browseNunnies)
	router.GET("/offers", authMW, nunnyOnly, h.browseOffers)
}

func (h *Handler) browseNunnies(c *gin.Context) {
	var q NunnyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("Browse nunnies: invalid query", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	common.RespondOK(c, "Nunnies retrieved successfully.", h.service.BrowseNunnies(q))
}

func (h *Handler) browseOffers(c *gin.Context) {
	var q OfferQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("Browse offers: invalid query", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}
	common.RespondOK(c, "Service offers retrieved successfully.", h.service.BrowseOffers(q))
}
