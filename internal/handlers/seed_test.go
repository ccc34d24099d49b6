package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/fieldscope/inspection-worker/internal/handlers"
	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func setupSeedApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.SeedHandler{DB: db}
	app.Post("/client/init-user", handler.InitUser)
	app.Post("/client/init-notes", handler.InitNotes)
	app.Post("/client/init-jobs", handler.InitJobs)
	return app
}

func TestInitUserRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	app := setupSeedApp(db)

	body := bytes.NewBufferString(`{"name":"Sam"}`)
	req := httptest.NewRequest("POST", "/client/init-user", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 without access token, got %d", resp.StatusCode)
	}
}

func TestInitUserSeedsSessionAndWatermarks(t *testing.T) {
	db := setupTestDB(t)
	app := setupSeedApp(db)

	body := bytes.NewBufferString(`{"access_token":"tok-1","name":"Sam","email":"sam@example.com"}`)
	req := httptest.NewRequest("POST", "/client/init-user", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "User added successfully" {
		t.Errorf("Unexpected message %v", result["message"])
	}

	var user models.User
	if err := db.First(&user, "type = ?", models.UserRecordKey).Error; err != nil {
		t.Fatalf("Expected a stored session: %v", err)
	}
	if user.AccessToken != "tok-1" {
		t.Errorf("Expected stored token, got %q", user.AccessToken)
	}

	var state models.SyncState
	if err := db.First(&state, "type = ?", models.SyncStateRecordKey).Error; err != nil {
		t.Fatalf("Expected a sync state row: %v", err)
	}
	if state.LastSync.IsZero() || state.LastSyncLibrary.IsZero() || state.ClearSync.IsZero() {
		t.Error("Expected all watermarks initialized")
	}
}

func TestInitNotesAcceptsObjectOrArray(t *testing.T) {
	db := setupTestDB(t)
	app := setupSeedApp(db)

	// Single object shape
	body := bytes.NewBufferString(`{"id":"n-1","note":"solo"}`)
	req := httptest.NewRequest("POST", "/client/init-notes", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200 for object payload, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 note from object payload, got %d", count)
	}

	// Array shape replaces the collection
	body = bytes.NewBufferString(`[{"id":"n-2","note":"a"},{"id":"n-3","note":"b"}]`)
	req = httptest.NewRequest("POST", "/client/init-notes", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200 for array payload, got %d", resp.StatusCode)
	}

	db.Model(&models.Note{}).Count(&count)
	if count != 2 {
		t.Errorf("Expected collection replaced with 2 notes, got %d", count)
	}
	var stale int64
	db.Model(&models.Note{}).Where("id = ?", "n-1").Count(&stale)
	if stale != 0 {
		t.Error("Expected previous seed wiped by replacement")
	}
}

func TestInitJobsReplacesCollection(t *testing.T) {
	db := setupTestDB(t)
	app := setupSeedApp(db)

	db.Create(&models.Job{JobNumber: "old", Status: models.JobStatusNotStarted})

	body := bytes.NewBufferString(`[{"job_number":"new-1","status":"Not Started"}]`)
	req := httptest.NewRequest("POST", "/client/init-jobs", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var jobs []models.Job
	db.Find(&jobs)
	if len(jobs) != 1 || jobs[0].JobNumber != "new-1" {
		t.Errorf("Expected only the seeded job, got %+v", jobs)
	}
}
