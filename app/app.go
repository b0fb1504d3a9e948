package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/app/controller"
	"github.com/canken881226/amazon-Listing-Tool/app/router"
	"github.com/canken881226/amazon-Listing-Tool/config"
	"github.com/canken881226/amazon-Listing-Tool/db"
	"github.com/canken881226/amazon-Listing-Tool/profile"
	"github.com/canken881226/amazon-Listing-Tool/repository"
	"github.com/canken881226/amazon-Listing-Tool/service"
)

// Initialize wires services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	prof, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}

	annotator, err := newAnnotator(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize annotator: %w", err)
	}

	// Job history is optional
	var jobRepo repository.ListingJobRepositoryInterface
	if cfg.HasDatabase() {
		if err := db.InitDB(ctx, cfg.DatabaseURL, cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		jobRepo = repository.NewListingJobRepository()
	} else {
		zap.S().Warnf("⚠️ No database configured, job history disabled")
	}

	// Drive is optional as well
	var driveService service.DriveServiceInterface
	if cfg.GoogleCredentialsPath != "" {
		ds, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			return nil, err
		}
		driveService = ds
	} else {
		zap.S().Warnf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, Drive fill disabled")
	}

	listingService := service.NewListingService(annotator, driveService, jobRepo, prof, cfg.AnnotationWorkers, cfg.AnnotationTimeout)
	migrationService := service.NewMigrationService(jobRepo, prof)
	previewService := service.NewPreviewService(cfg.ChromePath)

	controllers := &router.Controllers{
		Listing:   controller.NewListingController(listingService, previewService, cfg.MaxUploadMB, cfg.DriveFolderID),
		Migration: controller.NewMigrationController(migrationService, cfg.MaxUploadMB),
		Job:       controller.NewJobController(jobRepo),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux, nil
}

func newAnnotator(cfg *config.Config) (service.AnnotatorInterface, error) {
	opts := service.AnnotatorOptions{Timeout: cfg.AnnotationTimeout}
	switch cfg.AnnotationProvider {
	case "gemini":
		opts.APIKey = cfg.GeminiAPIKey
		opts.Model = cfg.GeminiModel
		return service.NewGeminiAnnotator(opts)
	default:
		opts.APIKey = cfg.OpenAIAPIKey
		opts.Model = cfg.OpenAIModel
		opts.BaseURL = cfg.OpenAIBaseURL
		return service.NewOpenAIAnnotator(opts)
	}
}
