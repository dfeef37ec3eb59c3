// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"mynunny_backend/internal/app"
	"mynunny_backend/internal/auth"
	"mynunny_backend/internal/config"
	"mynunny_backend/internal/filestorage"
	"mynunny_backend/internal/firebase"
	"mynunny_backend/internal/jobs"
	"mynunny_backend/internal/listing"
	"mynunny_backend/internal/platform/database"
	"mynunny_backend/internal/platform/logger"
	"mynunny_backend/internal/profile"
	"mynunny_backend/internal/shared"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,

		// Identity provider
		firebase.NewService,
		wire.Bind(new(shared.IdentityProvider), new(*firebase.Service)),

		// Profiles
		profile.NewGORMRepository,
		profile.NewService,
		wire.Bind(new(profile.Service), new(*profile.ServiceImplementation)),
		provideProfileUpdateFunc,
		profile.NewHandler,

		// Auth workflow and session state
		provideProfileFetcher,
		auth.NewStateTracker,
		auth.NewWorkflow,
		auth.NewHandler,

		// Listings
		listing.NewService,
		listing.NewHandler,

		// File storage
		provideFileStorageService,
		filestorage.NewHandler,

		// Jobs
		jobs.NewOfferExpiryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
