package service

import (
	"context"

	"github.com/canken881226/amazon-Listing-Tool/models"
)

// AnnotatorInterface defines the contract for turning a product photo into listing copy
type AnnotatorInterface interface {
	Annotate(ctx context.Context, image []byte, hint string) (*models.BaseItemAnnotation, error)
}
