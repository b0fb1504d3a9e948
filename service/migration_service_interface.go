package service

import (
	"context"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// MigrationServiceInterface defines the contract for copying listings between marketplace templates
type MigrationServiceInterface interface {
	Migrate(ctx context.Context, source, target []byte) (*models.MigrationResult, error)
}
