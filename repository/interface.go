package repository

import (
	"context"
	"errors"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// ErrJobNotFound is returned when a listing job id does not exist
var ErrJobNotFound = errors.New("listing job not found")

// ListingJobRepositoryInterface defines the contract for listing job history operations
type ListingJobRepositoryInterface interface {
	Insert(ctx context.Context, job *models.ListingJob) error
	GetByID(ctx context.Context, id string) (*models.ListingJob, error)
	List(ctx context.Context, limit int) ([]models.ListingJob, error)
}
