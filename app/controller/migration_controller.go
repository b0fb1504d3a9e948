package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/service"
)

// MigrationController handles HTTP requests for site migration
type MigrationController struct {
	migrationService service.MigrationServiceInterface
	maxUploadBytes   int64
}

// NewMigrationController creates a new MigrationController
func NewMigrationController(migrationService service.MigrationServiceInterface, maxUploadMB int64) *MigrationController {
	return &MigrationController{
		migrationService: migrationService,
		maxUploadBytes:   maxUploadMB << 20,
	}
}

// Migrate handles POST /admin/listings/migrate
// multipart: source (filled US template), target (empty UK template)
func (c *MigrationController) Migrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	if err := r.ParseMultipartForm(c.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	var files [2][]byte
	var targetName string
	for i, field := range []string{"source", "target"} {
		parts := r.MultipartForm.File[field]
		if len(parts) == 0 {
			writeError(w, http.StatusBadRequest, field+" file is required")
			return
		}
		data, err := readPart(parts[0])
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s: %v", field, err))
			return
		}
		files[i] = data
		targetName = parts[0].Filename
	}

	result, err := c.migrationService.Migrate(r.Context(), files[0], files[1])
	if err != nil {
		zap.S().Errorf("❌ Migrate failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	w.Header().Set("X-Job-Id", result.JobID)
	w.Header().Set("X-Rows-Copied", strconv.Itoa(result.RowsCopied))
	w.Header().Set("X-Cells-Copied", strconv.Itoa(result.CellsCopied))
	w.Header().Set("X-Unmapped-Columns", strconv.Itoa(len(result.Unmapped)))
	writeWorkbook(w, result.Workbook, targetName, "migrated-"+result.JobID)
}
