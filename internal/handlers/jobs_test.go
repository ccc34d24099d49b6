package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldscope/inspection-worker/internal/handlers"
	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SyncState{},
		&models.Job{},
		&models.ReportItem{},
		&models.DeletedItem{},
		&models.LibraryItem{},
		&models.Category{},
		&models.Note{},
		&models.Recommendation{},
		&models.PreviousReport{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupJobsApp wires the job routes the way the worker does
func setupJobsApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.JobsHandler{DB: db}
	app.Get("/client/jobs", handler.GetJobs)
	app.Put("/client/jobs", handler.UpdateJob)
	app.Post("/client/jobs/notes", handler.AddNote)
	app.Put("/client/jobs/notes", handler.DeleteNote)
	app.Post("/client/recommendations", handler.SetRecommendation)
	app.Delete("/client/recommendations", handler.ClearRecommendation)
	return app
}

func TestGetJobsList(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{JobNumber: "J-1", Status: models.JobStatusNotStarted, StartsAt: time.Now()})
	db.Create(&models.Job{JobNumber: "J-2", Status: models.JobStatusInProgress, StartsAt: time.Now().Add(time.Hour)})

	req := httptest.NewRequest("GET", "/client/jobs", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var jobs []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("Expected 2 jobs, got %d", len(jobs))
	}
}

func TestGetJobDetailWithCounts(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{JobNumber: "J-3", Status: models.JobStatusInProgress, ReportID: "rep-3", StartsAt: time.Now()})
	db.Create(&models.ReportItem{ID: "i-1", ReportID: "rep-3", SyncStatus: models.SyncPending, CreatedAt: time.Now()})
	db.Create(&models.ReportItem{ID: "i-2", ReportID: "rep-3", PreviousItem: 1, SyncStatus: models.SyncConfirmed, CreatedAt: time.Now()})

	req := httptest.NewRequest("GET", "/client/jobs?job_number=J-3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var detail map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if detail["newReportItems"] != float64(1) {
		t.Errorf("Expected 1 new report item, got %v", detail["newReportItems"])
	}
	if detail["previousReportItems"] != float64(1) {
		t.Errorf("Expected 1 previous report item, got %v", detail["previousReportItems"])
	}
}

func TestGetJobNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	req := httptest.NewRequest("GET", "/client/jobs?job_number=missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "No Job found" {
		t.Errorf("Expected 'No Job found', got %v", result["message"])
	}
}

func TestUpdateJobRoute(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{JobNumber: "J-4", Status: models.JobStatusNotStarted})

	body := bytes.NewBufferString(`{"status":"In Progress","report_id":"rep-4"}`)
	req := httptest.NewRequest("PUT", "/client/jobs?job_number=J-4", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var job models.Job
	db.First(&job, "job_number = ?", "J-4")
	if job.Status != models.JobStatusInProgress || job.ReportID != "rep-4" {
		t.Errorf("Expected merged update, got status=%q report_id=%q", job.Status, job.ReportID)
	}
}

func TestAddNoteDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{JobNumber: "J-5", Status: models.JobStatusInProgress})

	for i, wantStatus := range []int{200, 400} {
		body := bytes.NewBufferString(`{"note":"check attic"}`)
		req := httptest.NewRequest("POST", "/client/jobs/notes?job_number=J-5", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request %d: %v", i, err)
		}
		if resp.StatusCode != wantStatus {
			t.Errorf("Request %d: expected status %d, got %d", i, wantStatus, resp.StatusCode)
		}
		if wantStatus == 400 {
			var result map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if result["message"] != "Note already exists." {
				t.Errorf("Expected duplicate message, got %v", result["message"])
			}
		}
	}
}

func TestDeleteNoteRoute(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{
		JobNumber: "J-6",
		Status:    models.JobStatusInProgress,
		Notes:     models.StringList{"keep", "drop"},
	})

	body := bytes.NewBufferString(`{"note":"drop"}`)
	req := httptest.NewRequest("PUT", "/client/jobs/notes?job_number=J-6", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var job models.Job
	db.First(&job, "job_number = ?", "J-6")
	if len(job.Notes) != 1 || job.Notes[0] != "keep" {
		t.Errorf("Expected notes [keep], got %v", job.Notes)
	}
}

func TestRecommendationLifecycle(t *testing.T) {
	db := setupTestDB(t)
	app := setupJobsApp(db)

	db.Create(&models.Job{JobNumber: "J-7", Status: models.JobStatusInProgress})

	body := bytes.NewBufferString(`{"recommendation":"repoint chimney"}`)
	req := httptest.NewRequest("POST", "/client/recommendations?job_number=J-7", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var job models.Job
	db.First(&job, "job_number = ?", "J-7")
	if job.Recommendation != "repoint chimney" {
		t.Errorf("Expected recommendation set, got %q", job.Recommendation)
	}

	req = httptest.NewRequest("DELETE", "/client/recommendations?job_number=J-7", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	db.First(&job, "job_number = ?", "J-7")
	if job.Recommendation != "" {
		t.Errorf("Expected recommendation cleared, got %q", job.Recommendation)
	}
}
