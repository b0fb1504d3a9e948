package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/profile"
	"github.com/canken881226/amazon-Listing-Tool/repository"
	"github.com/canken881226/amazon-Listing-Tool/sheet"
)

// ListingService fills bulk-listing templates from product photos
// Implements ListingServiceInterface
type ListingService struct {
	annotator AnnotatorInterface
	drive     DriveServiceInterface
	jobRepo   repository.ListingJobRepositoryInterface
	profile   *profile.Profile
	builder   *listing.Builder
	workers   int
	timeout   time.Duration
	now       func() time.Time
}

// Ensure ListingService implements ListingServiceInterface
var _ ListingServiceInterface = (*ListingService)(nil)

// NewListingService creates a new ListingService. drive and jobRepo may be nil.
func NewListingService(
	annotator AnnotatorInterface,
	drive DriveServiceInterface,
	jobRepo repository.ListingJobRepositoryInterface,
	prof *profile.Profile,
	workers int,
	timeout time.Duration,
) *ListingService {
	if workers < 1 {
		workers = 1
	}
	if prof == nil {
		prof = profile.Get()
	}
	s := &ListingService{
		annotator: annotator,
		drive:     drive,
		jobRepo:   jobRepo,
		profile:   prof,
		workers:   workers,
		timeout:   timeout,
		now:       time.Now,
	}
	s.builder = listing.NewBuilder(prof.BuilderOptions(func() time.Time { return s.now() }))
	return s
}

// DriveEnabled reports whether FillFromDrive can be used
func (s *ListingService) DriveEnabled() bool {
	return s.drive != nil
}

type annotated struct {
	annotation *models.BaseItemAnnotation
	err        error
}

// FillTemplate annotates every item, writes a parent row and one child row per variant for
// each of them, and returns the serialized workbook. Items whose annotation fails are skipped
// with a warning; the fill fails only when no item could be annotated.
func (s *ListingService) FillTemplate(ctx context.Context, req models.FillRequest) (*models.FillResult, error) {
	return s.fill(ctx, req, nil, nil)
}

// FillFromDrive downloads the product photos of a Drive folder and fills the template with
// them. Each photo's SKU prefix comes from its file name.
func (s *ListingService) FillFromDrive(ctx context.Context, folderID string, req models.FillRequest) (*models.FillResult, error) {
	if s.drive == nil {
		return nil, fmt.Errorf("google drive is not configured")
	}
	if strings.TrimSpace(folderID) == "" {
		return nil, fmt.Errorf("%w: folderId is required", listing.ErrMissingInput)
	}
	images, err := s.drive.ListProductImages(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no product images found in folder %s", listing.ErrMissingInput, folderID)
	}

	data := make([][]byte, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			b, err := s.drive.DownloadImage(gctx, img.DriveFileID)
			if err != nil {
				zap.S().Warnf("⚠️ Download failed for %s: %v", img.FileName, err)
				return nil
			}
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var warnings []string
	var skipped []models.ItemOutcome
	req.Items = nil
	for i, img := range images {
		if data[i] == nil {
			warnings = append(warnings, fmt.Sprintf("%s: download failed", img.FileName))
			skipped = append(skipped, models.ItemOutcome{Prefix: img.SKUPrefix, FileName: img.FileName, Skipped: true, Error: "download failed"})
			continue
		}
		req.Items = append(req.Items, models.ItemInput{
			Prefix:   img.SKUPrefix,
			FileName: img.FileName,
			Image:    data[i],
			MimeType: img.MimeType,
		})
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: every download from folder %s failed", listing.ErrMissingInput, folderID)
	}
	return s.fill(ctx, req, warnings, skipped)
}

func (s *ListingService) fill(ctx context.Context, req models.FillRequest, warnings []string, skipped []models.ItemOutcome) (*models.FillResult, error) {
	s.applyDefaults(&req)
	if err := validateFillRequest(req); err != nil {
		return nil, err
	}
	zap.S().Infof("📦 FillTemplate: %d items, %d variants", len(req.Items), len(req.Variants))

	grid, err := sheet.OpenExcelGrid(req.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", listing.ErrInvalidTemplate, err)
	}
	defer grid.Close()

	catalog, err := sheet.BuildCatalog(grid, s.profile.HeaderScanRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", listing.ErrInvalidTemplate, err)
	}
	if catalog.Len() == 0 {
		return nil, listing.ErrEmptyCatalog
	}
	if missing := s.builder.Unresolved(catalog); len(missing) > 0 {
		zap.S().Infof("⚠️ FillTemplate: template has no column for %s", strings.Join(missing, ", "))
	}

	results, err := s.annotateAll(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	result := &models.FillResult{
		JobID:    uuid.NewString(),
		Items:    skipped,
		Warnings: warnings,
	}
	next := s.profile.DataStartRow
	for i, item := range req.Items {
		res := results[i]
		if res.err != nil {
			zap.S().Errorf("❌ FillTemplate: %s skipped: %v", item.Prefix, res.err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", item.Prefix, res.err))
			result.Items = append(result.Items, models.ItemOutcome{Prefix: item.Prefix, FileName: item.FileName, Skipped: true, Error: res.err.Error()})
			continue
		}

		rows, err := s.builder.Fill(grid, catalog, next, item.Prefix, *res.annotation, req.Variants, req.Brand, req.KeywordPool)
		if err != nil {
			return nil, fmt.Errorf("failed to write rows for %s: %w", item.Prefix, err)
		}
		result.Items = append(result.Items, models.ItemOutcome{Prefix: item.Prefix, FileName: item.FileName, StartRow: next, RowsWritten: len(rows)})
		result.Rows = append(result.Rows, rows...)
		result.RowsWritten += len(rows)
		next += len(rows)
	}

	if result.RowsWritten == 0 {
		s.recordJob(ctx, result.JobID, req.Items, result, models.JobStatusFailed)
		return nil, fmt.Errorf("%w: no item could be annotated", listing.ErrAnnotationFailed)
	}

	result.Workbook, err = grid.Save()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", listing.ErrSaveFailed, err)
	}

	status := models.JobStatusCompleted
	if len(result.Warnings) > 0 {
		status = models.JobStatusPartial
	}
	s.recordJob(ctx, result.JobID, req.Items, result, status)
	zap.S().Infof("🎉 FillTemplate: %d rows written, %d items skipped", result.RowsWritten, countSkipped(result.Items))
	return result, nil
}

// annotateAll runs the annotator for every item with at most s.workers calls in flight.
// Results keep the order of items.
func (s *ListingService) annotateAll(ctx context.Context, items []models.ItemInput) ([]annotated, error) {
	results := make([]annotated, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			ann, err := s.annotate(gctx, item)
			results[i] = annotated{annotation: ann, err: err}
			if err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *ListingService) annotate(ctx context.Context, item models.ItemInput) (*models.BaseItemAnnotation, error) {
	image, err := OptimizeImage(item.Image, MaxAnnotationDimension)
	if err != nil {
		zap.S().Warnf("⚠️ %s: sending original image: %v", item.Prefix, err)
		image = item.Image
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ann, err := s.annotator.Annotate(ctx, image, item.Hint)
	if err != nil {
		if !errors.Is(err, listing.ErrAnnotationFailed) {
			err = fmt.Errorf("%w: %w", listing.ErrAnnotationFailed, err)
		}
		return nil, err
	}
	zap.S().Debugf("✅ %s annotated: %q", item.Prefix, ann.Title)
	return ann, nil
}

func (s *ListingService) applyDefaults(req *models.FillRequest) {
	if strings.TrimSpace(req.Brand) == "" {
		req.Brand = s.profile.Brand
	}
	if len(req.Variants) == 0 {
		req.Variants = s.profile.Variants
	}
	if strings.TrimSpace(req.KeywordPool) == "" {
		req.KeywordPool = s.profile.KeywordPool
	}
	for i := range req.Items {
		req.Items[i].Prefix = strings.TrimSpace(req.Items[i].Prefix)
	}
}

func validateFillRequest(req models.FillRequest) error {
	if len(req.Template) == 0 {
		return fmt.Errorf("%w: template file is required", listing.ErrMissingInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one product image is required", listing.ErrMissingInput)
	}
	if len(req.Variants) == 0 {
		return fmt.Errorf("%w: at least one size variant is required", listing.ErrMissingInput)
	}
	for i, item := range req.Items {
		if item.Prefix == "" {
			return fmt.Errorf("%w: sku prefix is required for image %d", listing.ErrMissingInput, i+1)
		}
		if len(item.Image) == 0 {
			return fmt.Errorf("%w: image for %s is empty", listing.ErrMissingInput, item.Prefix)
		}
	}
	return nil
}

func (s *ListingService) recordJob(ctx context.Context, id string, items []models.ItemInput, result *models.FillResult, status string) {
	if s.jobRepo == nil {
		return
	}
	prefixes := make([]string, 0, len(items))
	for _, item := range items {
		prefixes = append(prefixes, item.Prefix)
	}
	job := &models.ListingJob{
		ID:           id,
		Kind:         models.JobKindFill,
		Prefixes:     strings.Join(prefixes, ","),
		RowsWritten:  result.RowsWritten,
		ItemsTotal:   len(result.Items),
		ItemsSkipped: countSkipped(result.Items),
		Status:       status,
		Warnings:     result.Warnings,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.jobRepo.Insert(ctx, job); err != nil {
		zap.S().Warnf("⚠️ Could not record listing job %s: %v", id, err)
	}
}

func countSkipped(items []models.ItemOutcome) int {
	n := 0
	for _, it := range items {
		if it.Skipped {
			n++
		}
	}
	return n
}
