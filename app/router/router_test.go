package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canken881226/amazon-Listing-Tool/app/controller"
)

func TestSetupRoutes(t *testing.T) {
	mux := http.NewServeMux()
	SetupRoutes(mux, &Controllers{
		Listing:   controller.NewListingController(nil, nil, 1, ""),
		Migration: controller.NewMigrationController(nil, 1),
		Job:       controller.NewJobController(nil),
	})

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/ping", http.StatusOK},
		{http.MethodPost, "/ping", http.StatusMethodNotAllowed},
		{http.MethodGet, "/admin/listings/fill", http.StatusMethodNotAllowed},
		{http.MethodGet, "/admin/listings/migrate", http.StatusMethodNotAllowed},
		{http.MethodGet, "/admin/listings/jobs", http.StatusServiceUnavailable},
		{http.MethodGet, "/admin/listings/jobs/abc", http.StatusServiceUnavailable},
		{http.MethodGet, "/admin/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, rec.Code, tc.method+" "+tc.path)
	}
}
