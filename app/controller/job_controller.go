package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/repository"
)

// JobController handles HTTP requests for listing job history
type JobController struct {
	repository repository.ListingJobRepositoryInterface
}

// NewJobController creates a new JobController. A nil repository answers 503.
func NewJobController(repo repository.ListingJobRepositoryInterface) *JobController {
	return &JobController{repository: repo}
}

// ListJobs handles GET /admin/listings/jobs?limit=N
func (c *JobController) ListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.repository == nil {
		writeError(w, http.StatusServiceUnavailable, "job history is not configured")
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := c.repository.List(r.Context(), limit)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.ListingJobListResponse{Jobs: jobs})
}

// GetJob handles GET /admin/listings/jobs/{id}
func (c *JobController) GetJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.repository == nil {
		writeError(w, http.StatusServiceUnavailable, "job history is not configured")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/listings/jobs/"), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "job id is required")
		return
	}
	job, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, job)
}
