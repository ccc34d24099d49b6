package syncer

import (
	"time"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
)

// retentionCooldown limits the sweep to once per day.
const retentionCooldown = 24 * time.Hour

// clearSync prunes completed work to reclaim storage: every Completed
// job loses its report items first, then the job row itself, and the
// previous-report cache is cleared since its entries may reference the
// deleted jobs. Rate-limited by the clearSync watermark.
func (s *Syncer) clearSync() error {
	state, err := s.syncState()
	if err != nil || state == nil {
		return err
	}

	now := s.now()
	if now.Sub(state.ClearSync) < retentionCooldown {
		return nil
	}

	var completed []models.Job
	if err := s.db.Where("status = ?", models.JobStatusCompleted).
		Find(&completed).Error; err != nil {
		return err
	}
	if len(completed) == 0 {
		return nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, job := range completed {
			if err := tx.Where("report_id = ?", job.ReportID).
				Delete(&models.ReportItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Job{}, "job_number = ?", job.JobNumber).Error; err != nil {
				return err
			}
		}
		return tx.Where("1 = 1").Delete(&models.PreviousReport{}).Error
	})
	if err != nil {
		return err
	}

	return s.db.Model(&models.SyncState{}).
		Where("type = ?", models.SyncStateRecordKey).
		Update("clear_sync", now).Error
}
