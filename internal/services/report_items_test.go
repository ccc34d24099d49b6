package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fieldscope/inspection-worker/internal/models"
)

func TestAddReportItemPromotesJob(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Job{
		JobNumber: "J-200",
		Status:    models.JobStatusNotStarted,
		ReportID:  "rep-200",
	})

	item := models.ReportItem{Name: "Cracked tile", ReportID: "rep-200"}
	if err := AddReportItem(db, "J-200", &item); err != nil {
		t.Fatalf("AddReportItem failed: %v", err)
	}

	if item.ID == "" {
		t.Error("Expected a generated item id")
	}
	if item.SyncStatus != models.SyncPending {
		t.Errorf("Expected new item pending, got %q", item.SyncStatus)
	}

	var job models.Job
	db.First(&job, "job_number = ?", "J-200")
	if job.Status != models.JobStatusInProgress {
		t.Errorf("Expected job promoted to In Progress, got %q", job.Status)
	}
}

func TestAddReportItemUpsertKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)

	item := models.ReportItem{ID: "fixed-id", Name: "Original", ReportID: "rep-201"}
	if err := AddReportItem(db, "", &item); err != nil {
		t.Fatalf("AddReportItem failed: %v", err)
	}

	edited := models.ReportItem{ID: "fixed-id", Name: "Edited", ReportID: "rep-201"}
	if err := AddReportItem(db, "", &edited); err != nil {
		t.Fatalf("AddReportItem upsert failed: %v", err)
	}

	var count int64
	db.Model(&models.ReportItem{}).Where("id = ?", "fixed-id").Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 row after upsert, got %d", count)
	}

	var got models.ReportItem
	db.First(&got, "id = ?", "fixed-id")
	if got.Name != "Edited" {
		t.Errorf("Expected upserted name Edited, got %q", got.Name)
	}
}

func TestAddReportItemUpsertPreservesSyncStatus(t *testing.T) {
	db := setupTestDB(t)

	created := time.Now().Add(-time.Hour)
	db.Create(&models.ReportItem{
		ID: "synced-id", Name: "Original", ReportID: "rep-210",
		SyncStatus: models.SyncConfirmed, CreatedAt: created,
	})

	// A re-submitted edit carries no sync status and defaults to pending
	edited := models.ReportItem{ID: "synced-id", Name: "Edited", ReportID: "rep-210"}
	if err := AddReportItem(db, "", &edited); err != nil {
		t.Fatalf("AddReportItem upsert failed: %v", err)
	}

	var got models.ReportItem
	db.First(&got, "id = ?", "synced-id")
	if got.Name != "Edited" {
		t.Errorf("Expected content updated, got %q", got.Name)
	}
	if got.SyncStatus != models.SyncConfirmed {
		t.Errorf("Expected confirmed item to stay confirmed, got %q", got.SyncStatus)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("Expected created_at preserved, got %v", got.CreatedAt)
	}
}

func TestGetReportItemBackfillsLibraryFields(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.LibraryItem{
		ID:      "lib-1",
		Name:    "Damp wall",
		Summary: "Moisture reading above threshold",
	})
	db.Create(&models.ReportItem{
		ID:         "item-1",
		ItemID:     "lib-1",
		ReportID:   "rep-202",
		SyncStatus: models.SyncPending,
		CreatedAt:  time.Now(),
	})

	item, err := GetReportItem(db, "item-1")
	if err != nil {
		t.Fatalf("GetReportItem failed: %v", err)
	}
	if item.Summary != "Moisture reading above threshold" {
		t.Errorf("Expected backfilled summary, got %q", item.Summary)
	}
}

func TestGetReportItemMissingLibraryTolerated(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.ReportItem{
		ID:         "item-2",
		ItemID:     "gone",
		ReportID:   "rep-203",
		SyncStatus: models.SyncPending,
		CreatedAt:  time.Now(),
	})

	item, err := GetReportItem(db, "item-2")
	if err != nil {
		t.Fatalf("GetReportItem failed: %v", err)
	}
	if item.Summary != "" {
		t.Errorf("Expected empty summary when library item is gone, got %q", item.Summary)
	}
}

func TestListReportItemsPagination(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Job{JobNumber: "J-204", Status: models.JobStatusInProgress, ReportID: "rep-204"})

	base := time.Now()
	for i := 0; i < 20; i++ {
		db.Create(&models.ReportItem{
			ID:         fmt.Sprintf("item-%02d", i),
			ReportID:   "rep-204",
			Name:       fmt.Sprintf("Finding %02d", i),
			SyncStatus: models.SyncPending,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result, err := ListReportItems(db, "J-204", 1, "", "")
	if err != nil {
		t.Fatalf("ListReportItems failed: %v", err)
	}
	items := result.Data.([]models.ReportItem)
	if len(items) != PageSize {
		t.Errorf("Expected %d items on page 1, got %d", PageSize, len(items))
	}
	if items[0].ID != "item-00" {
		t.Errorf("Expected oldest item first, got %s", items[0].ID)
	}
	if result.Pages.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", result.Pages.TotalPages)
	}

	second, err := ListReportItems(db, "J-204", 2, "", "")
	if err != nil {
		t.Fatalf("ListReportItems page 2 failed: %v", err)
	}
	items = second.Data.([]models.ReportItem)
	if len(items) != 5 {
		t.Errorf("Expected 5 items on page 2, got %d", len(items))
	}
	if second.Pages.Next != nil {
		t.Error("Expected nil next on last page")
	}

	// Page 0 aliases page 1
	zero, err := ListReportItems(db, "J-204", 0, "", "")
	if err != nil {
		t.Fatalf("ListReportItems page 0 failed: %v", err)
	}
	if zero.Pages.CurrentPage != 1 {
		t.Errorf("Expected page 0 normalized to 1, got %d", zero.Pages.CurrentPage)
	}
}

func TestListReportItemsNameFilterBypassesPagination(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Job{JobNumber: "J-205", Status: models.JobStatusInProgress, ReportID: "rep-205"})

	base := time.Now()
	for i := 0; i < 18; i++ {
		db.Create(&models.ReportItem{
			ID:         fmt.Sprintf("n-%02d", i),
			ReportID:   "rep-205",
			Name:       fmt.Sprintf("Roof Crack %02d", i),
			SyncStatus: models.SyncPending,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
	}

	result, err := ListReportItems(db, "J-205", 1, "", "crack")
	if err != nil {
		t.Fatalf("ListReportItems with name failed: %v", err)
	}
	items := result.Data.([]models.ReportItem)
	if len(items) != 18 {
		t.Errorf("Expected all 18 matches in one page, got %d", len(items))
	}
	if result.Pages.TotalPages != 1 {
		t.Errorf("Expected single page, got %d", result.Pages.TotalPages)
	}
}

func TestListReportItemsJobMissing(t *testing.T) {
	db := setupTestDB(t)

	_, err := ListReportItems(db, "missing", 1, "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReportItemWritesTombstone(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.ReportItem{ID: "doomed", ReportID: "rep-206", SyncStatus: models.SyncPending, CreatedAt: time.Now()})

	if err := DeleteReportItem(db, "doomed"); err != nil {
		t.Fatalf("DeleteReportItem failed: %v", err)
	}

	var itemCount int64
	db.Model(&models.ReportItem{}).Where("id = ?", "doomed").Count(&itemCount)
	if itemCount != 0 {
		t.Error("Expected item to be deleted")
	}

	var tombstoneCount int64
	db.Model(&models.DeletedItem{}).Where("id = ?", "doomed").Count(&tombstoneCount)
	if tombstoneCount != 1 {
		t.Error("Expected a tombstone for the deleted item")
	}

	// Deleting again is idempotent, one tombstone
	if err := DeleteReportItem(db, "doomed"); err != nil {
		t.Fatalf("Second DeleteReportItem failed: %v", err)
	}
	db.Model(&models.DeletedItem{}).Where("id = ?", "doomed").Count(&tombstoneCount)
	if tombstoneCount != 1 {
		t.Errorf("Expected 1 tombstone after repeat delete, got %d", tombstoneCount)
	}
}

func TestNonSyncedRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.Job{JobNumber: "J-207", Status: models.JobStatusInProgress, ReportID: "rep-207"})
	db.Create(&models.ReportItem{ID: "p-1", ReportID: "rep-207", SyncStatus: models.SyncPending, CreatedAt: time.Now()})
	db.Create(&models.ReportItem{ID: "p-2", ReportID: "rep-207", SyncStatus: models.SyncPending, CreatedAt: time.Now()})
	db.Create(&models.ReportItem{ID: "done", ReportID: "rep-207", SyncStatus: models.SyncConfirmed, CreatedAt: time.Now()})
	db.Create(&models.DeletedItem{ID: "gone-1"})

	batch, err := GetNonSyncedItems(db, "J-207")
	if err != nil {
		t.Fatalf("GetNonSyncedItems failed: %v", err)
	}
	if len(batch.ReportItems) != 2 {
		t.Errorf("Expected 2 pending items, got %d", len(batch.ReportItems))
	}
	if len(batch.DeletedReportItems) != 1 {
		t.Errorf("Expected 1 tombstone, got %d", len(batch.DeletedReportItems))
	}

	if err := ConfirmSyncedItems(db, []string{"p-1", "p-2"}); err != nil {
		t.Fatalf("ConfirmSyncedItems failed: %v", err)
	}

	var pending int64
	db.Model(&models.ReportItem{}).Where("sync_status = ?", models.SyncPending).Count(&pending)
	if pending != 0 {
		t.Errorf("Expected no pending items after confirm, got %d", pending)
	}

	var tombstones int64
	db.Model(&models.DeletedItem{}).Count(&tombstones)
	if tombstones != 0 {
		t.Errorf("Expected tombstones cleared, got %d", tombstones)
	}
}

func TestConfirmSyncedItemsNeverReverts(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.ReportItem{ID: "c-1", ReportID: "rep-208", SyncStatus: models.SyncConfirmed, CreatedAt: time.Now()})

	if err := ConfirmSyncedItems(db, []string{"c-1"}); err != nil {
		t.Fatalf("ConfirmSyncedItems failed: %v", err)
	}

	var item models.ReportItem
	db.First(&item, "id = ?", "c-1")
	if item.SyncStatus != models.SyncConfirmed {
		t.Errorf("Expected item to stay confirmed, got %q", item.SyncStatus)
	}
}

func TestListPreviousItemRefs(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.ReportItem{
		ID: "prev-1", ReportID: "rep-209", PreviousItem: 1,
		PreviousReportItemID: "orig-9", SyncStatus: models.SyncConfirmed, CreatedAt: time.Now(),
	})
	db.Create(&models.ReportItem{
		ID: "new-1", ReportID: "rep-209", SyncStatus: models.SyncPending, CreatedAt: time.Now(),
	})

	refs, err := ListPreviousItemRefs(db, "rep-209")
	if err != nil {
		t.Fatalf("ListPreviousItemRefs failed: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("Expected 1 ref, got %d", len(refs))
	}
	if refs[0].ID != "prev-1" || refs[0].PreviousReportItemID != "orig-9" {
		t.Errorf("Unexpected ref %+v", refs[0])
	}
}
