package router

import (
	"net/http"

	"github.com/canken881226/amazon-Listing-Tool/app/controller"
)

type Controllers struct {
	Listing   *controller.ListingController
	Migration *controller.MigrationController
	Job       *controller.JobController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	mux.HandleFunc("/ping", pingHandler)

	// Listing templates
	mux.HandleFunc("/admin/listings/fill", controllers.Listing.Fill)
	mux.HandleFunc("/admin/listings/fill-from-drive", controllers.Listing.FillFromDrive)
	mux.HandleFunc("/admin/listings/migrate", controllers.Migration.Migrate)

	// Job history
	mux.HandleFunc("/admin/listings/jobs", controllers.Job.ListJobs)
	mux.HandleFunc("/admin/listings/jobs/", controllers.Job.GetJob)
}
