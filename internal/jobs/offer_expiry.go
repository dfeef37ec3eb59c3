// File: internal/jobs/offer_expiry.go
package jobs

import (
	"fmt"
	"time"

	"mynunny_backend/internal/config"
	"mynunny_backend/internal/listing"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OfferExpiryJob deactivates service offers whose lifespan has elapsed.
type OfferExpiryJob struct {
	listingService *listing.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewOfferExpiryJob creates a new OfferExpiryJob.
func NewOfferExpiryJob(
	listingService *listing.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *OfferExpiryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &OfferExpiryJob{
		listingService: listingService,
		logger:         logger.Named("OfferExpiryJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *OfferExpiryJob) SetupAndStart() error {
	jobSpec := j.cfg.OfferExpiryJobSchedule // e.g., "@daily", "0 1 * * *"
	if jobSpec == "" {
		j.logger.Warn("Offer expiry job schedule not defined (OFFER_EXPIRY_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule offer expiry job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Offer expiry job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *OfferExpiryJob) runJob() {
	lifespan := time.Duration(j.cfg.OfferLifespanDays) * 24 * time.Hour
	if lifespan <= 0 {
		j.logger.Warn("Offer lifespan not configured; skipping run")
		return
	}

	j.logger.Info("Starting offer expiry job run...")
	expiredCount := j.listingService.ExpireOffers(lifespan)
	j.logger.Info("Offer expiry job run completed", zap.Int("offers_expired", expiredCount))
}

// Stop gracefully stops the cron scheduler.
func (j *OfferExpiryJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping offer expiry job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Offer expiry job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Offer expiry job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
