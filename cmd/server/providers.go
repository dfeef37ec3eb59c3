// File: cmd/server/providers.go
package main

import (
	"mynunny_backend/internal/auth"
	"mynunny_backend/internal/config"
	"mynunny_backend/internal/filestorage"
	"mynunny_backend/internal/platform/database"
	"mynunny_backend/internal/profile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideProfileFetcher hands the state tracker its profile lookup without
// giving it the whole profile service.
func provideProfileFetcher(profiles profile.Service) auth.ProfileFetcher {
	return profiles.GetByFirebaseUID
}

// provideProfileUpdateFunc routes profile updates through the auth workflow
// so the session snapshot refreshes alongside the stored row.
func provideProfileUpdateFunc(workflow *auth.Workflow) profile.UpdateFunc {
	return workflow.UpdateProfile
}

func provideFileStorageService(cfg *config.Config, appLogger *zap.Logger) (*filestorage.Service, error) {
	return filestorage.NewService(cfg.ImageStoragePath, cfg.ImagePublicPath, appLogger)
}

func provideCleanup(appLogger *zap.Logger, db *gorm.DB) func() {
	return func() {
		appLogger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		_ = appLogger.Sync()
	}
}
