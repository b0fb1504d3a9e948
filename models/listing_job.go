package models

// Job kinds
const (
	JobKindFill    = "fill"
	JobKindMigrate = "migrate"
)

// Job statuses
const (
	JobStatusCompleted = "completed"
	JobStatusPartial   = "partial"
	JobStatusFailed    = "failed"
)

// ListingJob is one recorded fill or migration run.
type ListingJob struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Prefixes     string   `json:"prefixes"`
	RowsWritten  int      `json:"rowsWritten"`
	ItemsTotal   int      `json:"itemsTotal"`
	ItemsSkipped int      `json:"itemsSkipped"`
	Status       string   `json:"status"`
	Warnings     []string `json:"warnings"`
	CreatedAt    string   `json:"createdAt"`
}

// ListingJobListResponse represents the response for listing jobs
type ListingJobListResponse struct {
	Jobs []ListingJob `json:"jobs"`
}
