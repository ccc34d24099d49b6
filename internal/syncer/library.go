package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// deltaCursorLayout is the timestamp format the origin's delta feed
// expects (12-hour clock, no seconds).
const deltaCursorLayout = "2006-01-02 03:04 PM"

// libraryDelta is the origin's "changed since" payload. Each record
// carries an active flag: inactive records are deleted locally,
// everything else is upserted.
type libraryDelta struct {
	Items []struct {
		models.LibraryItem
		Active bool `json:"active"`
	} `json:"items"`
	Categories []struct {
		models.Category
		Active bool `json:"active"`
	} `json:"categories"`
	Notes []struct {
		models.Note
		Active bool `json:"active"`
	} `json:"notes"`
	Recommendations []struct {
		models.Recommendation
		Active bool `json:"active"`
	} `json:"recommendations"`
}

// syncLibrary pulls everything changed since the lastSyncLibrary
// watermark and applies it. Upserts are idempotent by id, so replaying
// the same delta is harmless. The watermark advances only when the
// whole delta applied.
func (s *Syncer) syncLibrary(ctx context.Context) error {
	if !s.online() {
		return ErrOffline
	}

	state, err := s.syncState()
	if err != nil || state == nil {
		return err
	}

	cursor := state.LastSyncLibrary.Format(deltaCursorLayout)
	now := s.now()

	raw, err := s.client.Get(ctx, "/sync-library?lastSync="+url.QueryEscape(cursor))
	if err != nil {
		return err
	}

	var delta libraryDelta
	if err := json.Unmarshal(raw, &delta); err != nil {
		return fmt.Errorf("unexpected delta payload: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range delta.Items {
			if !rec.Active {
				if err := tx.Delete(&models.LibraryItem{}, "id = ?", rec.ID).Error; err != nil {
					return err
				}
				continue
			}
			item := rec.LibraryItem
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error; err != nil {
				return err
			}
		}

		for _, rec := range delta.Categories {
			if !rec.Active {
				if err := tx.Delete(&models.Category{}, "id = ?", rec.ID).Error; err != nil {
					return err
				}
				continue
			}
			category := rec.Category
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&category).Error; err != nil {
				return err
			}
			// Refresh the denormalized category fields on every library
			// item that references it.
			if err := tx.Model(&models.LibraryItem{}).
				Where("category_id = ?", category.ID).
				Updates(map[string]interface{}{
					"category":    category.Name,
					"category_id": category.ID,
				}).Error; err != nil {
				return err
			}
		}

		for _, rec := range delta.Notes {
			if !rec.Active {
				if err := tx.Delete(&models.Note{}, "id = ?", rec.ID).Error; err != nil {
					return err
				}
				continue
			}
			note := rec.Note
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&note).Error; err != nil {
				return err
			}
		}

		for _, rec := range delta.Recommendations {
			if !rec.Active {
				if err := tx.Delete(&models.Recommendation{}, "id = ?", rec.ID).Error; err != nil {
					return err
				}
				continue
			}
			recommendation := rec.Recommendation
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&recommendation).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Model(&models.SyncState{}).
		Where("type = ?", models.SyncStateRecordKey).
		Update("last_sync_library", now).Error
}
