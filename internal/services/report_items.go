// report_items.go
//
// Offline-first local data and sync worker for the FieldScope inspection app
// Copyright (c) 2026 FieldScope Software
//
// This file is part of inspection-worker.
// inspection-worker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// inspection-worker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with inspection-worker.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NonSyncedBatch is the pending work a push sync uploads in one request.
type NonSyncedBatch struct {
	ReportItems        []models.ReportItem  `json:"report_items"`
	DeletedReportItems []models.DeletedItem `json:"deleted_report_items"`
}

// reportItemContentColumns are the columns an upsert may replace on an
// existing row. sync_status and created_at stay put so a re-submitted
// edit can never revert a confirmed item to pending.
var reportItemContentColumns = []string{
	"item_id", "report_id", "category", "name", "images", "note",
	"previous_item", "previous_report_item_id",
}

// AddReportItem upserts a report item. When jobNumber is non-empty the
// parent job is promoted to In Progress, so adding the first item starts
// the inspection locally even before the remote start call round-trips.
func AddReportItem(db *gorm.DB, jobNumber string, item *models.ReportItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.SyncStatus == "" {
		item.SyncStatus = models.SyncPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if jobNumber != "" {
			if err := tx.Model(&models.Job{}).Where("job_number = ?", jobNumber).
				Update("status", models.JobStatusInProgress).Error; err != nil {
				return err
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(reportItemContentColumns),
		}).Create(item).Error
	})
}

// GetReportItem returns a single item by id. Items that originated from
// the library are backfilled with the library item's summary and
// embedded images.
func GetReportItem(db *gorm.DB, id string) (*models.ReportItem, error) {
	var item models.ReportItem

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if item.ItemID == "" {
			return nil
		}

		var libItem models.LibraryItem
		if err := tx.First(&libItem, "id = ?", item.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		item.Summary = libItem.Summary
		item.EmbeddedImages = libItem.EmbeddedImages
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// ListReportItems lists the new (not carried-over) items of a job's
// current report, paginated and filtered. A name filter is a
// case-insensitive substring match and deliberately bypasses pagination,
// returning all matches as one page.
func ListReportItems(db *gorm.DB, jobNumber string, page int, category, name string) (*PagedResult, error) {
	var result PagedResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "job_number = ?", jobNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		scope := func() *gorm.DB {
			q := tx.Model(&models.ReportItem{}).
				Where("report_id = ? AND previous_item = 0", job.ReportID)
			if category != "" {
				q = q.Where("category = ?", category)
			}
			return q
		}

		if name != "" {
			var all []models.ReportItem
			if err := scope().Find(&all).Error; err != nil {
				return err
			}
			matched := make([]models.ReportItem, 0, len(all))
			needle := strings.ToLower(name)
			for _, it := range all {
				if strings.Contains(strings.ToLower(it.Name), needle) {
					matched = append(matched, it)
				}
			}
			result = PagedResult{Data: matched, Pages: singlePage()}
			return nil
		}

		var total int64
		if err := scope().Count(&total).Error; err != nil {
			return err
		}

		offset, pages := paginate(page, total)
		items := make([]models.ReportItem, 0, PageSize)
		if err := scope().Order("created_at ASC").
			Offset(offset).Limit(PageSize).Find(&items).Error; err != nil {
			return err
		}

		result = PagedResult{Data: items, Pages: pages}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListPreviousItems returns a report's carried-over items.
func ListPreviousItems(db *gorm.DB, reportID string) ([]models.ReportItem, error) {
	items := make([]models.ReportItem, 0)
	if err := db.Where("report_id = ? AND previous_item = 1", reportID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PreviousItemRef is the id-only projection of a carried-over item.
type PreviousItemRef struct {
	ID                   string `json:"id"`
	PreviousReportItemID string `json:"previous_report_item_id"`
}

// ListPreviousItemRefs returns id back-references for a report's
// carried-over items.
func ListPreviousItemRefs(db *gorm.DB, reportID string) ([]PreviousItemRef, error) {
	items, err := ListPreviousItems(db, reportID)
	if err != nil {
		return nil, err
	}
	refs := make([]PreviousItemRef, 0, len(items))
	for _, it := range items {
		refs = append(refs, PreviousItemRef{
			ID:                   it.ID,
			PreviousReportItemID: it.PreviousReportItemID,
		})
	}
	return refs, nil
}

// DeleteReportItem hard-deletes an item and records a tombstone so the
// next push sync can propagate the deletion.
func DeleteReportItem(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ReportItem{}, "id = ?", id).Error; err != nil {
			return err
		}
		tombstone := models.DeletedItem{ID: id}
		return tx.Where(tombstone).FirstOrCreate(&tombstone).Error
	})
}

// GetNonSyncedItems collects, in one consistent snapshot, the job's
// pending report items and all deletion tombstones so the caller can
// push them as a single batch.
func GetNonSyncedItems(db *gorm.DB, jobNumber string) (*NonSyncedBatch, error) {
	batch := NonSyncedBatch{
		ReportItems:        make([]models.ReportItem, 0),
		DeletedReportItems: make([]models.DeletedItem, 0),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "job_number = ?", jobNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("report_id = ? AND sync_status = ?", job.ReportID, models.SyncPending).
			Find(&batch.ReportItems).Error; err != nil {
			return err
		}
		return tx.Find(&batch.DeletedReportItems).Error
	})
	if err != nil {
		return nil, err
	}

	return &batch, nil
}

// ConfirmSyncedItems flips the given items to confirmed and clears all
// tombstones. The push batch is treated as atomic: if the server
// accepted it, every tombstone in it was processed. The status update is
// guarded so a confirmed item can never revert.
func ConfirmSyncedItems(db *gorm.DB, ids []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Model(&models.ReportItem{}).
				Where("id IN ? AND sync_status = ?", ids, models.SyncPending).
				Update("sync_status", models.SyncConfirmed).Error; err != nil {
				return err
			}
		}
		return tx.Where("1 = 1").Delete(&models.DeletedItem{}).Error
	})
}
