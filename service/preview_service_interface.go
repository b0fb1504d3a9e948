package service

import (
	"context"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// PreviewServiceInterface defines the contract for human readable proofs of a fill
type PreviewServiceInterface interface {
	RenderHTML(result *models.FillResult) (string, error)
	GeneratePDF(ctx context.Context, result *models.FillResult) ([]byte, error)
}
