package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/db"
	"github.com/canken881226/amazon-Listing-Tool/models"
)

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 500
)

// ListingJobRepository handles database operations for listing job history
type ListingJobRepository struct{}

// NewListingJobRepository creates a new ListingJobRepository
func NewListingJobRepository() *ListingJobRepository {
	return &ListingJobRepository{}
}

// Ensure ListingJobRepository implements ListingJobRepositoryInterface
var _ ListingJobRepositoryInterface = (*ListingJobRepository)(nil)

// Insert stores a finished job
func (r *ListingJobRepository) Insert(ctx context.Context, job *models.ListingJob) error {
	warnings := job.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}

	query := db.Rebind(`
		INSERT INTO listing_jobs (id, kind, prefixes, rows_written, items_total, items_skipped, status, warnings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	_, err = db.DB.ExecContext(ctx, query,
		job.ID,
		job.Kind,
		job.Prefixes,
		job.RowsWritten,
		job.ItemsTotal,
		job.ItemsSkipped,
		job.Status,
		string(warningsJSON),
		job.CreatedAt,
	)
	if err != nil {
		zap.S().Errorf("❌ InsertListingJob: id=%s: %v", job.ID, err)
		return fmt.Errorf("error inserting listing job: %w", err)
	}
	zap.S().Infof("✅ InsertListingJob: id=%s kind=%s status=%s", job.ID, job.Kind, job.Status)
	return nil
}

// GetByID retrieves a job by id
func (r *ListingJobRepository) GetByID(ctx context.Context, id string) (*models.ListingJob, error) {
	query := db.Rebind(`
		SELECT id, kind, prefixes, rows_written, items_total, items_skipped, status, warnings, created_at
		FROM listing_jobs
		WHERE id = $1
	`)
	job, err := scanJob(db.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting listing job %s: %w", id, err)
	}
	return job, nil
}

// List returns the most recent jobs first. limit <= 0 uses the default page size.
func (r *ListingJobRepository) List(ctx context.Context, limit int) ([]models.ListingJob, error) {
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	if limit > maxJobListLimit {
		limit = maxJobListLimit
	}

	query := db.Rebind(`
		SELECT id, kind, prefixes, rows_written, items_total, items_skipped, status, warnings, created_at
		FROM listing_jobs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`)
	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.ListingJob{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning listing job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listing jobs: %w", err)
	}
	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (*models.ListingJob, error) {
	var job models.ListingJob
	var warnings string
	if err := s.Scan(
		&job.ID,
		&job.Kind,
		&job.Prefixes,
		&job.RowsWritten,
		&job.ItemsTotal,
		&job.ItemsSkipped,
		&job.Status,
		&warnings,
		&job.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(warnings), &job.Warnings); err != nil {
		return nil, fmt.Errorf("invalid warnings for job %s: %w", job.ID, err)
	}
	return &job, nil
}
