// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mynunny_backend/internal/auth"
	"mynunny_backend/internal/config"
	"mynunny_backend/internal/filestorage"
	"mynunny_backend/internal/firebase"
	"mynunny_backend/internal/jobs"
	"mynunny_backend/internal/listing"
	"mynunny_backend/internal/middleware"
	"mynunny_backend/internal/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler        *auth.Handler
	profileHandler     *profile.Handler
	listingHandler     *listing.Handler
	filestorageHandler *filestorage.Handler

	// Jobs
	offerExpiryJob *jobs.OfferExpiryJob

	// Session state
	stateTracker *auth.StateTracker

	// Middleware instances
	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	listingHandler *listing.Handler,
	filestorageHandler *filestorage.Handler,
	offerExpiryJob *jobs.OfferExpiryJob,
	stateTracker *auth.StateTracker,
	db *gorm.DB,
	firebaseService *firebase.Service,
	profileService profile.Service,
) (*Server, error) {
	// The profile tables migrate on startup so a fresh database is usable
	// without a separate migration step.
	if err := db.AutoMigrate(&profile.Profile{}, &profile.NunnyDetails{}, &profile.ClientDetails{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profile tables: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))
	clientOnlyMW := middleware.RequireProfileType(profileService, profile.TypeClient, logger.Named("ProfileTypeMiddleware"))
	nunnyOnlyMW := middleware.RequireProfileType(profileService, profile.TypeNunny, logger.Named("ProfileTypeMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "My Nunny API is healthy!"})
	})

	// Profile pictures and ID documents are served straight from disk.
	router.Static(cfg.ImagePublicPath, cfg.ImageStoragePath)

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)
	listingHandler.RegisterRoutes(v1, authMW, clientOnlyMW, nunnyOnlyMW)
	filestorageHandler.RegisterRoutes(v1)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:         httpServer,
		router:             router,
		cfg:                cfg,
		logger:             logger,
		authHandler:        authHandler,
		profileHandler:     profileHandler,
		listingHandler:     listingHandler,
		filestorageHandler: filestorageHandler,
		offerExpiryJob:     offerExpiryJob,
		stateTracker:       stateTracker,
		authMW:             authMW,
	}, nil
}

func (s *Server) Start() error {
	// Resolve the session state machine out of Initializing before any
	// request can observe it.
	s.stateTracker.Bootstrap(context.Background())

	if s.offerExpiryJob != nil {
		err := s.offerExpiryJob.SetupAndStart()
		if err != nil {
			s.logger.Error("Failed to setup and start offer expiry job", zap.Error(err))
		}
	} else {
		s.logger.Info("Offer expiry job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.offerExpiryJob != nil {
		s.offerExpiryJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
