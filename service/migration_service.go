package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/profile"
	"github.com/canken881226/amazon-Listing-Tool/repository"
	"github.com/canken881226/amazon-Listing-Tool/sheet"
)

// MigrationService copies filled listing rows from one marketplace template into another
// whose headers are named differently (US to UK).
type MigrationService struct {
	jobRepo repository.ListingJobRepositoryInterface
	profile *profile.Profile
	now     func() time.Time
}

// Ensure MigrationService implements MigrationServiceInterface
var _ MigrationServiceInterface = (*MigrationService)(nil)

// NewMigrationService creates a new MigrationService. jobRepo may be nil.
func NewMigrationService(jobRepo repository.ListingJobRepositoryInterface, prof *profile.Profile) *MigrationService {
	if prof == nil {
		prof = profile.Get()
	}
	return &MigrationService{jobRepo: jobRepo, profile: prof, now: time.Now}
}

// Migrate copies every non-empty data cell of source into the matching column of target.
// A source header matches a target header when they are equal after normalization, or when
// the profile aliases one to the other. Values are copied unchanged and land on the same row.
func (s *MigrationService) Migrate(ctx context.Context, source, target []byte) (*models.MigrationResult, error) {
	if len(source) == 0 || len(target) == 0 {
		return nil, fmt.Errorf("%w: source and target templates are required", listing.ErrMissingInput)
	}

	src, err := sheet.OpenExcelGrid(source)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %v", listing.ErrInvalidTemplate, err)
	}
	defer src.Close()
	dst, err := sheet.OpenExcelGrid(target)
	if err != nil {
		return nil, fmt.Errorf("%w: target: %v", listing.ErrInvalidTemplate, err)
	}
	defer dst.Close()

	scan := s.profile.HeaderScanRows
	srcCatalog, err := sheet.BuildCatalog(src, scan)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %v", listing.ErrInvalidTemplate, err)
	}
	dstCatalog, err := sheet.BuildCatalog(dst, scan)
	if err != nil {
		return nil, fmt.Errorf("%w: target: %v", listing.ErrInvalidTemplate, err)
	}
	if srcCatalog.Len() == 0 || dstCatalog.Len() == 0 {
		return nil, listing.ErrEmptyCatalog
	}

	result := &models.MigrationResult{
		JobID:         uuid.NewString(),
		ColumnsMapped: map[string]string{},
		Unmapped:      []string{},
	}
	columns := s.mapColumns(srcCatalog, dstCatalog, result)
	zap.S().Infof("🔄 Migrate: %d columns mapped, %d unmapped", len(columns), len(result.Unmapped))

	if last := src.MaxRow(); last >= s.profile.DataStartRow {
		cells, err := src.IterateCells(s.profile.DataStartRow, last)
		if err != nil {
			return nil, fmt.Errorf("failed to read source rows: %w", err)
		}
		rows := map[int]bool{}
		for _, cell := range cells {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			col, ok := columns[cell.Column]
			if !ok {
				continue
			}
			if err := dst.SetCell(cell.Row, col, cell.Value); err != nil {
				return nil, fmt.Errorf("failed to copy row %d: %w", cell.Row, err)
			}
			result.CellsCopied++
			rows[cell.Row] = true
		}
		result.RowsCopied = len(rows)
	}

	result.Workbook, err = dst.Save()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", listing.ErrSaveFailed, err)
	}
	s.recordJob(ctx, result)
	zap.S().Infof("🎉 Migrate: %d cells in %d rows copied", result.CellsCopied, result.RowsCopied)
	return result, nil
}

// mapColumns returns source column -> target column. When a source column has headers in
// several rows, the mapping found last in scan order wins.
func (s *MigrationService) mapColumns(src, dst *sheet.Catalog, result *models.MigrationResult) map[int]int {
	columns := map[int]int{}
	for _, key := range src.Keys() {
		srcMatch := src.Lookup(key)
		target := key
		m := dst.Lookup(key)
		if !m.Found {
			if alias, ok := s.profile.Migration.Aliases[key]; ok {
				target = alias
				m = dst.Lookup(alias)
			}
		}
		if !m.Found {
			result.Unmapped = append(result.Unmapped, key)
			continue
		}
		result.ColumnsMapped[key] = target
		columns[srcMatch.Column] = m.Column
	}
	return columns
}

func (s *MigrationService) recordJob(ctx context.Context, result *models.MigrationResult) {
	if s.jobRepo == nil {
		return
	}
	warnings := make([]string, 0, len(result.Unmapped))
	for _, key := range result.Unmapped {
		warnings = append(warnings, "no target column for "+key)
	}
	job := &models.ListingJob{
		ID:          result.JobID,
		Kind:        models.JobKindMigrate,
		RowsWritten: result.RowsCopied,
		Status:      models.JobStatusCompleted,
		Warnings:    warnings,
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}
	if err := s.jobRepo.Insert(ctx, job); err != nil {
		zap.S().Warnf("⚠️ Could not record migration job %s: %v", job.ID, err)
	}
}
