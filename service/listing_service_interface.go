package service

import (
	"context"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// ListingServiceInterface defines the contract for filling listing templates
type ListingServiceInterface interface {
	FillTemplate(ctx context.Context, req models.FillRequest) (*models.FillResult, error)
	FillFromDrive(ctx context.Context, folderID string, req models.FillRequest) (*models.FillResult, error)
	DriveEnabled() bool
}
