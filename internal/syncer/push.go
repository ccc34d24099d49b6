package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/fieldscope/inspection-worker/internal/services"
	"gorm.io/gorm"
)

// SyncItems pushes the in-progress report and its pending items to the
// origin. It is a no-op when there is no in-progress job or nothing
// pending. Any failure leaves the lastSync watermark unchanged so the
// next trigger retries the same batch.
func (s *Syncer) SyncItems(ctx context.Context) error {
	if !s.online() {
		return ErrOffline
	}

	state, err := s.syncState()
	if err != nil || state == nil {
		return err
	}

	now := s.now()

	var job models.Job
	if err := s.db.First(&job, "status = ?", models.JobStatusInProgress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	// The report must exist remotely before its items can land.
	if job.SyncStatus != models.SyncConfirmed {
		_, err := s.client.Post(ctx, "/reports", map[string]interface{}{
			"id":          job.ReportID,
			"job_id":      job.ID,
			"customer_id": job.Customer.ID,
		})
		if err != nil {
			return err
		}
		if err := s.db.Model(&models.Job{}).
			Where("job_number = ?", job.JobNumber).
			Update("sync_status", models.SyncConfirmed).Error; err != nil {
			return err
		}
	}

	batch, err := services.GetNonSyncedItems(s.db, job.JobNumber)
	if err != nil {
		return err
	}
	if len(batch.ReportItems) == 0 && len(batch.DeletedReportItems) == 0 {
		return nil
	}

	raw, err := s.client.Post(ctx, "/report-items?bulk=true", batch)
	if err != nil {
		return err
	}

	var confirmedIDs []string
	if err := json.Unmarshal(raw, &confirmedIDs); err != nil {
		log.Printf("Unexpected push response, keeping items pending: %v", err)
		return nil
	}

	if err := services.ConfirmSyncedItems(s.db, confirmedIDs); err != nil {
		return err
	}

	return s.db.Model(&models.SyncState{}).
		Where("type = ?", models.SyncStateRecordKey).
		Update("last_sync", now).Error
}
